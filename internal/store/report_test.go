package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/model"
)

func TestFileReportDefaultsAndOverride(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	projector := seedAsset(t, db, domain.CategoryFacility, "Projector", 5)

	t.Run("requester priority is overridden to medium", func(t *testing.T) {
		report, err := s.FileReport(ctx, student, FileReportRequest{
			AssetID:     projector.ID,
			Description: "lens cracked",
			Priority:    domain.PriorityHigh,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, report.Priority)
		assert.Equal(t, domain.ReportWaiting, report.Status)
		assert.Equal(t, student.UserID, report.ReportedBy)
		assert.Equal(t, "Projector", report.AssetName)
	})

	t.Run("approver priority is honored", func(t *testing.T) {
		report, err := s.FileReport(ctx, approver, FileReportRequest{
			AssetID:     projector.ID,
			Description: "power supply dead",
			Priority:    domain.PriorityHigh,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityHigh, report.Priority)
	})

	t.Run("empty description rejected", func(t *testing.T) {
		_, err := s.FileReport(ctx, student, FileReportRequest{
			AssetID:     projector.ID,
			Description: "   ",
		})
		requireDomainError(t, err, domain.ErrCodeValidation)
	})

	t.Run("unknown asset rejected", func(t *testing.T) {
		_, err := s.FileReport(ctx, student, FileReportRequest{
			AssetID:     "nope",
			Description: "broken",
		})
		requireDomainError(t, err, domain.ErrCodeValidation)
	})
}

func TestFileReportDoesNotTouchAsset(t *testing.T) {
	s, db := newTestStore(t)
	projector := seedAsset(t, db, domain.CategoryFacility, "Projector", 5)

	_, err := s.FileReport(context.Background(), approver, FileReportRequest{
		AssetID:     projector.ID,
		Description: "badly damaged",
		Priority:    domain.PriorityHigh,
	})
	require.NoError(t, err)

	// Filing never downgrades condition or stock; that stays a manual
	// staff action.
	var asset model.Asset
	require.NoError(t, db.First(&asset, "id = ?", projector.ID).Error)
	assert.Equal(t, domain.ConditionGood, asset.Condition)
	assert.Equal(t, 5, asset.AvailableStock)
}

func TestReportPriorityAndStatusTransitions(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	projector := seedAsset(t, db, domain.CategoryFacility, "Projector", 5)

	report, err := s.FileReport(ctx, student, FileReportRequest{
		AssetID:     projector.ID,
		Description: "remote missing",
	})
	require.NoError(t, err)

	_, err = s.SetReportPriority(ctx, report.ID, student, domain.PriorityHigh)
	requireDomainError(t, err, domain.ErrCodeUnauthorized)

	updated, err := s.SetReportPriority(ctx, report.ID, approver, domain.PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, updated.Priority)

	_, err = s.AdvanceReportStatus(ctx, report.ID, student, domain.ReportInRepair, "")
	requireDomainError(t, err, domain.ErrCodeUnauthorized)

	updated, err = s.AdvanceReportStatus(ctx, report.ID, approver, domain.ReportInRepair, "Pak Joko")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportInRepair, updated.Status)
	assert.Equal(t, "Pak Joko", updated.AssignedTo)

	// Progression is free-form: done can go back to waiting.
	updated, err = s.AdvanceReportStatus(ctx, report.ID, approver, domain.ReportDone, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportDone, updated.Status)
	updated, err = s.AdvanceReportStatus(ctx, report.ID, approver, domain.ReportWaiting, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportWaiting, updated.Status)

	_, err = s.AdvanceReportStatus(ctx, report.ID, approver, "archived", "")
	requireDomainError(t, err, domain.ErrCodeValidation)
}

func TestListReportsFilters(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	projector := seedAsset(t, db, domain.CategoryFacility, "Projector", 5)
	room := seedAsset(t, db, domain.CategoryRoom, "Seminar Room 101", 1)

	r1, err := s.FileReport(ctx, approver, FileReportRequest{
		AssetID: projector.ID, Description: "hdmi port loose", Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)
	r2, err := s.FileReport(ctx, student, FileReportRequest{
		AssetID: room.ID, Description: "AC leaking",
	})
	require.NoError(t, err)
	_, err = s.AdvanceReportStatus(ctx, r1.ID, approver, domain.ReportDone, "")
	require.NoError(t, err)

	t.Run("by priority", func(t *testing.T) {
		reports, err := s.ListReports(ctx, ReportFilter{Priority: domain.PriorityHigh})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, r1.ID, reports[0].ID)
	})

	t.Run("by status", func(t *testing.T) {
		reports, err := s.ListReports(ctx, ReportFilter{Status: domain.ReportWaiting})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, r2.ID, reports[0].ID)
	})

	t.Run("by asset category", func(t *testing.T) {
		reports, err := s.ListReports(ctx, ReportFilter{Category: domain.CategoryRoom})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, r2.ID, reports[0].ID)
	})
}

func TestStatsAggregation(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	projector := seedAsset(t, db, domain.CategoryFacility, "Projector", 5)
	speaker := seedAsset(t, db, domain.CategoryFacility, "Speaker Set", 3)
	room := seedAsset(t, db, domain.CategoryRoom, "Seminar Room 101", 1)

	overdueLoan := submitFacilityLoan(t, s, projector.ID, 1)
	_, err := s.ApproveLoan(ctx, overdueLoan.ID, approver)
	require.NoError(t, err)
	_ = submitFacilityLoan(t, s, speaker.ID, 1)

	for _, desc := range []string{"case dented", "cable frayed"} {
		_, err = s.FileReport(ctx, student, FileReportRequest{AssetID: speaker.ID, Description: desc})
		require.NoError(t, err)
	}
	roomReport, err := s.FileReport(ctx, student, FileReportRequest{AssetID: room.ID, Description: "window stuck"})
	require.NoError(t, err)
	_, err = s.AdvanceReportStatus(ctx, roomReport.ID, approver, domain.ReportDone, "")
	require.NoError(t, err)

	stats, err := s.Stats(ctx, StatsFilter{Now: date(2026, 9, 10)})
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.AssetsByCategory[domain.CategoryFacility])
	assert.Equal(t, int64(1), stats.AssetsByCategory[domain.CategoryRoom])
	assert.Equal(t, int64(3), stats.AssetsByCondition[domain.ConditionGood])
	assert.Equal(t, int64(1), stats.LoansByStatus[domain.LoanApproved])
	assert.Equal(t, int64(1), stats.LoansByStatus[domain.LoanPending])
	assert.Equal(t, int64(1), stats.OverdueLoans)
	assert.Equal(t, int64(2), stats.OpenReports)
	require.Len(t, stats.TopDamagedAssets, 1)
	assert.Equal(t, speaker.ID, stats.TopDamagedAssets[0].AssetID)
	assert.Equal(t, int64(2), stats.TopDamagedAssets[0].Reports)
}

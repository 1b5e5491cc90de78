package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/model"
)

func (s *gormStore) FileReport(ctx context.Context, reporter domain.Identity, req FileReportRequest) (*model.DamageReport, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, domain.NewValidationError("description is required")
	}

	asset, err := s.GetAsset(ctx, req.AssetID)
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) && derr.Code == domain.ErrCodeNotFound {
			return nil, domain.NewValidationError("unknown asset %s", req.AssetID)
		}
		return nil, err
	}

	// Only approver-class filers may set a priority; anything a
	// requester sends is overridden here, not merely hidden upstream.
	priority := domain.PriorityMedium
	if domain.CanApprove(reporter.Role) && req.Priority != "" {
		if !req.Priority.Valid() {
			return nil, domain.NewValidationError("unknown priority %q", req.Priority)
		}
		priority = req.Priority
	}

	report := model.DamageReport{
		ID:           uuid.NewString(),
		AssetID:      asset.ID,
		AssetName:    asset.Name,
		ReportedBy:   reporter.UserID,
		ReporterName: reporter.Name,
		Description:  req.Description,
		Priority:     priority,
		Status:       domain.ReportWaiting,
		PhotoURL:     req.PhotoURL,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *gormStore) SetReportPriority(ctx context.Context, reportID string, actor domain.Identity, p domain.ReportPriority) (*model.DamageReport, error) {
	if !domain.CanApprove(actor.Role) {
		return nil, domain.NewUnauthorizedError("role %s may not set report priority", actor.Role)
	}
	if !p.Valid() {
		return nil, domain.NewValidationError("unknown priority %q", p)
	}

	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	report.Priority = p
	if err := s.db.WithContext(ctx).Save(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// AdvanceReportStatus moves a report among waiting, in_repair and
// done. The progression is deliberately unconstrained; repairs get
// reopened in practice.
func (s *gormStore) AdvanceReportStatus(ctx context.Context, reportID string, actor domain.Identity, status domain.ReportStatus, assignedTo string) (*model.DamageReport, error) {
	if !domain.CanApprove(actor.Role) {
		return nil, domain.NewUnauthorizedError("role %s may not advance report status", actor.Role)
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("unknown report status %q", status)
	}

	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	report.Status = status
	if assignedTo != "" {
		report.AssignedTo = assignedTo
	}
	if err := s.db.WithContext(ctx).Save(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (s *gormStore) getReport(ctx context.Context, id string) (*model.DamageReport, error) {
	var report model.DamageReport
	if err := s.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("report %s not found", id)
		}
		return nil, err
	}
	return &report, nil
}

func (s *gormStore) ListReports(ctx context.Context, f ReportFilter) ([]model.DamageReport, error) {
	tx := s.db.WithContext(ctx).Model(&model.DamageReport{}).Order("created_at")
	if f.AssetID != "" {
		tx = tx.Where("asset_id = ?", f.AssetID)
	}
	if f.Category != "" {
		tx = tx.Where("asset_id IN (SELECT id FROM assets WHERE category = ?)", f.Category)
	}
	if f.Priority != "" {
		tx = tx.Where("priority = ?", f.Priority)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.From != nil {
		tx = tx.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		tx = tx.Where("created_at <= ?", *f.To)
	}

	var reports []model.DamageReport
	if err := tx.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

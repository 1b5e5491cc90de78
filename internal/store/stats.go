package store

import (
	"context"
	"time"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/model"
)

// Stats aggregates the dashboard figures in a handful of grouped
// queries rather than loading whole tables.
func (s *gormStore) Stats(ctx context.Context, f StatsFilter) (*Stats, error) {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := now.Truncate(24 * time.Hour)

	out := &Stats{
		AssetsByCategory:  make(map[domain.AssetCategory]int64),
		AssetsByCondition: make(map[domain.AssetCondition]int64),
		LoansByStatus:     make(map[domain.LoanStatus]int64),
	}

	type catRow struct {
		Category domain.AssetCategory
		N        int64
	}
	var cats []catRow
	if err := s.db.WithContext(ctx).Model(&model.Asset{}).
		Select("category as category, COUNT(*) as n").
		Group("category").Scan(&cats).Error; err != nil {
		return nil, err
	}
	for _, r := range cats {
		out.AssetsByCategory[r.Category] = r.N
	}

	type condRow struct {
		Condition domain.AssetCondition
		N         int64
	}
	var conds []condRow
	if err := s.db.WithContext(ctx).Model(&model.Asset{}).
		Select("condition as condition, COUNT(*) as n").
		Group("condition").Scan(&conds).Error; err != nil {
		return nil, err
	}
	for _, r := range conds {
		out.AssetsByCondition[r.Condition] = r.N
	}

	type statusRow struct {
		Status domain.LoanStatus
		N      int64
	}
	var statuses []statusRow
	if err := s.db.WithContext(ctx).Model(&model.Loan{}).
		Select("status as status, COUNT(*) as n").
		Group("status").Scan(&statuses).Error; err != nil {
		return nil, err
	}
	for _, r := range statuses {
		out.LoansByStatus[r.Status] = r.N
	}

	if err := s.db.WithContext(ctx).Model(&model.Loan{}).
		Where("status = ? AND end_date < ?", domain.LoanApproved, today).
		Count(&out.OverdueLoans).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&model.DamageReport{}).
		Where("status <> ?", domain.ReportDone).
		Count(&out.OpenReports).Error; err != nil {
		return nil, err
	}

	var damaged []DamagedAssetCount
	if err := s.db.WithContext(ctx).Model(&model.DamageReport{}).
		Select("asset_id as asset_id, asset_name as asset_name, COUNT(*) as reports").
		Where("status <> ?", domain.ReportDone).
		Group("asset_id").Group("asset_name").
		Order("reports DESC").
		Limit(5).
		Scan(&damaged).Error; err != nil {
		return nil, err
	}
	out.TopDamagedAssets = damaged

	return out, nil
}

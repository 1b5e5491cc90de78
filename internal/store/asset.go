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

func (s *gormStore) CreateAsset(ctx context.Context, actor domain.Identity, req CreateAssetRequest) (*model.Asset, error) {
	if !domain.CanManageAssets(actor.Role) {
		return nil, domain.NewUnauthorizedError("role %s may not manage assets", actor.Role)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.NewValidationError("asset name is required")
	}
	if !req.Category.Valid() {
		return nil, domain.NewValidationError("unknown asset category %q", req.Category)
	}
	if req.TotalStock < 0 {
		return nil, domain.NewValidationError("total stock must not be negative")
	}
	condition := req.Condition
	if condition == "" {
		condition = domain.ConditionGood
	}
	if !condition.Valid() {
		return nil, domain.NewValidationError("unknown asset condition %q", condition)
	}

	asset := model.Asset{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Category:       req.Category,
		Location:       req.Location,
		TotalStock:     req.TotalStock,
		AvailableStock: req.TotalStock,
		Condition:      condition,
		Description:    req.Description,
	}
	if err := s.db.WithContext(ctx).Create(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *gormStore) UpdateAsset(ctx context.Context, actor domain.Identity, id string, upd AssetUpdate) (*model.Asset, error) {
	if !domain.CanManageAssets(actor.Role) {
		return nil, domain.NewUnauthorizedError("role %s may not manage assets", actor.Role)
	}

	var asset model.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&asset, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("asset %s not found", id)
			}
			return err
		}

		if upd.Name != nil {
			if strings.TrimSpace(*upd.Name) == "" {
				return domain.NewValidationError("asset name is required")
			}
			asset.Name = *upd.Name
		}
		if upd.Location != nil {
			asset.Location = *upd.Location
		}
		if upd.Condition != nil {
			if !upd.Condition.Valid() {
				return domain.NewValidationError("unknown asset condition %q", *upd.Condition)
			}
			asset.Condition = *upd.Condition
		}
		if upd.Description != nil {
			asset.Description = *upd.Description
		}
		if upd.TotalStock != nil {
			if *upd.TotalStock < 0 {
				return domain.NewValidationError("total stock must not be negative")
			}
			// Keep the reserved quantity intact: available moves by the
			// same delta as total, and may not go below zero.
			delta := *upd.TotalStock - asset.TotalStock
			if asset.AvailableStock+delta < 0 {
				return domain.NewValidationError(
					"total stock %d is below the %d units currently on loan",
					*upd.TotalStock, asset.TotalStock-asset.AvailableStock)
			}
			asset.TotalStock = *upd.TotalStock
			asset.AvailableStock += delta
		}

		return tx.Save(&asset).Error
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *gormStore) DeleteAsset(ctx context.Context, actor domain.Identity, id string) error {
	if !domain.CanManageAssets(actor.Role) {
		return domain.NewUnauthorizedError("role %s may not manage assets", actor.Role)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset model.Asset
		if err := forUpdate(tx).First(&asset, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("asset %s not found", id)
			}
			return err
		}

		var openLoans int64
		if err := tx.Model(&model.Loan{}).
			Where("status IN ?", []domain.LoanStatus{domain.LoanPending, domain.LoanApproved}).
			Where("room_id = ? OR id IN (SELECT loan_id FROM loan_items WHERE asset_id = ?)", id, id).
			Count(&openLoans).Error; err != nil {
			return err
		}
		if openLoans > 0 {
			return domain.NewStateError("asset %s is referenced by an open loan", id)
		}

		var openReports int64
		if err := tx.Model(&model.DamageReport{}).
			Where("asset_id = ? AND status <> ?", id, domain.ReportDone).
			Count(&openReports).Error; err != nil {
			return err
		}
		if openReports > 0 {
			return domain.NewStateError("asset %s is referenced by an unresolved damage report", id)
		}

		return tx.Delete(&model.Asset{}, "id = ?", id).Error
	})
}

func (s *gormStore) GetAsset(ctx context.Context, id string) (*model.Asset, error) {
	var asset model.Asset
	if err := s.db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("asset %s not found", id)
		}
		return nil, err
	}
	return &asset, nil
}

func (s *gormStore) ListAssets(ctx context.Context, f AssetFilter) ([]model.Asset, error) {
	tx := s.db.WithContext(ctx).Model(&model.Asset{}).Order("created_at")
	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}
	if f.Location != "" {
		tx = tx.Where("location = ?", f.Location)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var assets []model.Asset
	if err := tx.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

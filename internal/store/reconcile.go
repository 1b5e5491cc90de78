package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/model"
)

// OpenReturn returns the checklist of reserved lines a return must
// account for. The checklist is return-desk material, so the caller
// needs the same capability as ProcessReturn, and only approved loans
// can be opened.
func (s *gormStore) OpenReturn(ctx context.Context, loanID string, approver domain.Identity) (*model.Loan, []ReturnChecklistItem, error) {
	if !domain.CanApprove(approver.Role) {
		return nil, nil, domain.NewUnauthorizedError("role %s may not process returns", approver.Role)
	}
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.Status != domain.LoanApproved {
		return nil, nil, domain.NewStateError("loan %s is %s, only approved loans can be returned", loanID, loan.Status)
	}

	var checklist []ReturnChecklistItem
	for _, line := range reservedLines(loan) {
		checklist = append(checklist, ReturnChecklistItem{
			AssetID:  line.assetID,
			Name:     line.name,
			Quantity: line.quantity,
			IsRoom:   line.isRoom,
		})
	}
	return loan, checklist, nil
}

// ProcessReturn settles an approved loan in one transaction: every
// reserved line gets its stock back, condition downgrades are written
// through to the registry, and the loan moves to completed. A return
// that does not cover every line commits nothing; the loan stays
// approved and can be retried.
func (s *gormStore) ProcessReturn(ctx context.Context, loanID string, approver domain.Identity, req ProcessReturnRequest) (*model.Loan, error) {
	if !domain.CanApprove(approver.Role) {
		return nil, domain.NewUnauthorizedError("role %s may not process returns", approver.Role)
	}

	var loan model.Loan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Preload("Items").First(&loan, "id = ?", loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("loan %s not found", loanID)
			}
			return err
		}
		if loan.Status != domain.LoanApproved {
			return domain.NewStateError("loan %s is %s, only approved loans can be returned", loanID, loan.Status)
		}

		lines := reservedLines(&loan)

		// At-most-one settlement: refuse unless every reserved line is
		// present and marked returned.
		for _, line := range lines {
			disp, ok := req.Dispositions[line.assetID]
			if !ok {
				return domain.NewValidationError("missing disposition for %q", line.name)
			}
			if !disp.Returned {
				return domain.NewValidationError("%q is not marked returned; a partial return cannot be settled", line.name)
			}
			if disp.Condition != "" && !disp.Condition.Valid() {
				return domain.NewValidationError("unknown condition %q for %q", disp.Condition, line.name)
			}
		}

		for _, line := range lines {
			disp := req.Dispositions[line.assetID]

			var asset model.Asset
			if err := forUpdate(tx).First(&asset, "id = ?", line.assetID).Error; err != nil {
				return err
			}

			updates := map[string]any{
				"available_stock": gorm.Expr("available_stock + ?", line.quantity),
			}
			if disp.Condition != "" && disp.Condition != domain.ConditionGood {
				updates["condition"] = disp.Condition
			}
			if err := tx.Model(&model.Asset{}).Where("id = ?", asset.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		loan.Status = domain.LoanCompleted
		loan.ReturnedAt = &now
		loan.Notes = req.Notes
		return tx.Model(&model.Loan{}).Where("id = ?", loan.ID).Updates(map[string]any{
			"status":      domain.LoanCompleted,
			"returned_at": now,
			"notes":       req.Notes,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

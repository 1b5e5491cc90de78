package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/model"
)

// reservedLine is one stock reservation a loan holds while approved:
// the room (quantity 1) plus each facility line.
type reservedLine struct {
	assetID  string
	name     string
	quantity int
	isRoom   bool
}

// reservedLines lists a loan's reservations sorted by asset id, so
// every transaction locks asset rows in the same order.
func reservedLines(loan *model.Loan) []reservedLine {
	var lines []reservedLine
	if loan.RoomID != nil {
		lines = append(lines, reservedLine{assetID: *loan.RoomID, name: loan.RoomName, quantity: 1, isRoom: true})
	}
	for _, it := range loan.Items {
		lines = append(lines, reservedLine{assetID: it.AssetID, name: it.Name, quantity: it.Quantity})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].assetID < lines[j].assetID })
	return lines
}

func (s *gormStore) SubmitLoan(ctx context.Context, borrower domain.Identity, req SubmitLoanRequest) (*model.Loan, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, domain.NewValidationError("end date must not be before start date")
	}
	if req.RoomID == nil && len(req.Facilities) == 0 {
		return nil, domain.NewValidationError("loan must request a room or at least one facility")
	}

	seen := make(map[string]bool, len(req.Facilities))
	for _, fr := range req.Facilities {
		if fr.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity must be positive")
		}
		if seen[fr.AssetID] {
			return nil, domain.NewValidationError("asset %s requested more than once", fr.AssetID)
		}
		seen[fr.AssetID] = true
	}

	loan := model.Loan{
		ID:           uuid.NewString(),
		BorrowerID:   borrower.UserID,
		BorrowerName: borrower.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       domain.LoanPending,
		Purpose:      req.Purpose,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.RoomID != nil {
			var room model.Asset
			if err := tx.First(&room, "id = ?", *req.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.NewValidationError("unknown room %s", *req.RoomID)
				}
				return err
			}
			if room.Category != domain.CategoryRoom {
				return domain.NewValidationError("asset %q is not a room", room.Name)
			}
			loan.RoomID = &room.ID
			loan.RoomName = room.Name
		}

		for _, fr := range req.Facilities {
			var asset model.Asset
			if err := tx.First(&asset, "id = ?", fr.AssetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.NewValidationError("unknown asset %s", fr.AssetID)
				}
				return err
			}
			if asset.Category != domain.CategoryFacility {
				return domain.NewValidationError("asset %q is not a facility", asset.Name)
			}
			// Soft check only; the reservation happens at approval.
			if fr.Quantity > asset.AvailableStock {
				return domain.NewInsufficientStockError(asset.Name, fr.Quantity, asset.AvailableStock)
			}
			loan.Items = append(loan.Items, model.LoanItem{
				AssetID:  asset.ID,
				Name:     asset.Name,
				Quantity: fr.Quantity,
			})
		}

		return tx.Create(&loan).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ApproveLoan moves a pending loan to approved and deducts its
// reservation. The stock check and the deduction happen in one
// transaction under row locks, so two approvals racing over the same
// asset cannot jointly overdraw it.
func (s *gormStore) ApproveLoan(ctx context.Context, loanID string, approver domain.Identity) (*model.Loan, error) {
	if !domain.CanApprove(approver.Role) {
		return nil, domain.NewUnauthorizedError("role %s may not approve loans", approver.Role)
	}

	var loan model.Loan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Preload("Items").First(&loan, "id = ?", loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("loan %s not found", loanID)
			}
			return err
		}
		if loan.Status != domain.LoanPending {
			return domain.NewStateError("loan %s is %s, only pending loans can be approved", loanID, loan.Status)
		}

		for _, line := range reservedLines(&loan) {
			var asset model.Asset
			if err := forUpdate(tx).First(&asset, "id = ?", line.assetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.NewValidationError("unknown asset %s", line.assetID)
				}
				return err
			}
			if asset.AvailableStock < line.quantity {
				return domain.NewInsufficientStockError(asset.Name, line.quantity, asset.AvailableStock)
			}
			if err := tx.Model(&model.Asset{}).Where("id = ?", asset.ID).
				Update("available_stock", gorm.Expr("available_stock - ?", line.quantity)).Error; err != nil {
				return err
			}
		}

		loan.Status = domain.LoanApproved
		return tx.Model(&model.Loan{}).Where("id = ?", loan.ID).
			Update("status", domain.LoanApproved).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (s *gormStore) RejectLoan(ctx context.Context, loanID string, approver domain.Identity) (*model.Loan, error) {
	if !domain.CanApprove(approver.Role) {
		return nil, domain.NewUnauthorizedError("role %s may not reject loans", approver.Role)
	}

	var loan model.Loan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Preload("Items").First(&loan, "id = ?", loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("loan %s not found", loanID)
			}
			return err
		}
		if loan.Status != domain.LoanPending {
			return domain.NewStateError("loan %s is %s, only pending loans can be rejected", loanID, loan.Status)
		}

		// No stock effect: nothing was ever reserved for a pending loan.
		loan.Status = domain.LoanRejected
		return tx.Model(&model.Loan{}).Where("id = ?", loan.ID).
			Update("status", domain.LoanRejected).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (s *gormStore) GetLoan(ctx context.Context, id string) (*model.Loan, error) {
	var loan model.Loan
	if err := s.db.WithContext(ctx).Preload("Items").First(&loan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("loan %s not found", id)
		}
		return nil, err
	}
	return &loan, nil
}

// loanSortKeys whitelists caller-specified sort columns; anything else
// falls back to insertion order.
var loanSortKeys = map[string]string{
	"created_at":    "created_at",
	"start_date":    "start_date",
	"end_date":      "end_date",
	"borrower_name": "borrower_name",
}

func (s *gormStore) ListLoans(ctx context.Context, f LoanFilter) ([]model.Loan, error) {
	tx := s.db.WithContext(ctx).Model(&model.Loan{}).Preload("Items")

	if col, ok := loanSortKeys[f.SortKey]; ok {
		tx = tx.Order(col)
	} else {
		tx = tx.Order("created_at")
	}

	if f.BorrowerID != "" {
		tx = tx.Where("borrower_id = ?", f.BorrowerID)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.From != nil {
		tx = tx.Where("end_date >= ?", *f.From)
	}
	if f.To != nil {
		tx = tx.Where("start_date <= ?", *f.To)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			"LOWER(borrower_name) LIKE ? OR LOWER(room_name) LIKE ? OR id IN (SELECT loan_id FROM loan_items WHERE LOWER(name) LIKE ?)",
			like, like, like)
	}

	if f.ReturnState != "" {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		today := now.Truncate(24 * time.Hour)
		switch f.ReturnState {
		case ReturnStatePending:
			tx = tx.Where("status = ? AND end_date >= ?", domain.LoanApproved, today)
		case ReturnStateOverdue:
			tx = tx.Where("status = ? AND end_date < ?", domain.LoanApproved, today)
		case ReturnStateReturned:
			tx = tx.Where("status = ?", domain.LoanCompleted)
		default:
			return nil, domain.NewValidationError("unknown return state %q", f.ReturnState)
		}
	}

	var loans []model.Loan
	if err := tx.Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// Overdue reports whether a loan is past its end date and still out.
// It is a read-time computation, never stored.
func Overdue(loan *model.Loan, now time.Time) bool {
	return loan.Status == domain.LoanApproved && now.Truncate(24*time.Hour).After(loan.EndDate)
}

package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/model"
)

// Store defines every registry and ledger operation. All mutations
// take the acting identity so capability checks live behind this
// interface rather than in the HTTP layer.
type Store interface {
	// Asset Registry
	CreateAsset(ctx context.Context, actor domain.Identity, req CreateAssetRequest) (*model.Asset, error)
	UpdateAsset(ctx context.Context, actor domain.Identity, id string, upd AssetUpdate) (*model.Asset, error)
	DeleteAsset(ctx context.Context, actor domain.Identity, id string) error
	GetAsset(ctx context.Context, id string) (*model.Asset, error)
	ListAssets(ctx context.Context, f AssetFilter) ([]model.Asset, error)

	// Loan Ledger
	SubmitLoan(ctx context.Context, borrower domain.Identity, req SubmitLoanRequest) (*model.Loan, error)
	ApproveLoan(ctx context.Context, loanID string, approver domain.Identity) (*model.Loan, error)
	RejectLoan(ctx context.Context, loanID string, approver domain.Identity) (*model.Loan, error)
	GetLoan(ctx context.Context, id string) (*model.Loan, error)
	ListLoans(ctx context.Context, f LoanFilter) ([]model.Loan, error)

	// Damage Report Ledger
	FileReport(ctx context.Context, reporter domain.Identity, req FileReportRequest) (*model.DamageReport, error)
	SetReportPriority(ctx context.Context, reportID string, actor domain.Identity, p domain.ReportPriority) (*model.DamageReport, error)
	AdvanceReportStatus(ctx context.Context, reportID string, actor domain.Identity, s domain.ReportStatus, assignedTo string) (*model.DamageReport, error)
	ListReports(ctx context.Context, f ReportFilter) ([]model.DamageReport, error)

	// Return Reconciler
	OpenReturn(ctx context.Context, loanID string, approver domain.Identity) (*model.Loan, []ReturnChecklistItem, error)
	ProcessReturn(ctx context.Context, loanID string, approver domain.Identity, req ProcessReturnRequest) (*model.Loan, error)

	// Aggregates
	Stats(ctx context.Context, f StatsFilter) (*Stats, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// forUpdate adds a row lock on dialects that support it. SQLite, used
// by the test suite, serializes writers on its own and rejects the
// FOR UPDATE syntax.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

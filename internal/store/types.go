package store

import (
	"time"

	"lasalleserve-backend/internal/domain"
)

// CreateAssetRequest carries the fields for a new registry entry.
// AvailableStock always starts equal to TotalStock.
type CreateAssetRequest struct {
	Name        string
	Category    domain.AssetCategory
	Location    string
	TotalStock  int
	Condition   domain.AssetCondition
	Description string
}

// AssetUpdate is a partial update; nil fields are left unchanged.
// Changing TotalStock shifts AvailableStock by the same delta so the
// outstanding reservations stay accounted for.
type AssetUpdate struct {
	Name        *string
	Location    *string
	TotalStock  *int
	Condition   *domain.AssetCondition
	Description *string
}

// AssetFilter narrows ListAssets results.
type AssetFilter struct {
	Category domain.AssetCategory
	Location string
	Search   string
}

// FacilityRequest is one requested facility line on a loan submission.
type FacilityRequest struct {
	AssetID  string
	Quantity int
}

// SubmitLoanRequest carries a borrower's loan submission. At most one
// room; facility asset ids must be distinct.
type SubmitLoanRequest struct {
	RoomID     *string
	Facilities []FacilityRequest
	StartDate  time.Time
	EndDate    time.Time
	Purpose    string
}

// ReturnState is the read-time classification used by the return desk
// listing: still running, past its end date, or already settled.
type ReturnState string

const (
	ReturnStatePending  ReturnState = "pending"
	ReturnStateOverdue  ReturnState = "overdue"
	ReturnStateReturned ReturnState = "returned"
)

// LoanFilter narrows ListLoans results. Zero values mean "no filter".
// Now anchors the ReturnState date comparison; it defaults to the
// current time.
type LoanFilter struct {
	BorrowerID  string
	Status      domain.LoanStatus
	From        *time.Time
	To          *time.Time
	Search      string
	ReturnState ReturnState
	SortKey     string
	Now         time.Time
}

// FileReportRequest carries a new damage report. Priority is honored
// only for approver-class filers; everyone else gets medium.
type FileReportRequest struct {
	AssetID     string
	Description string
	Priority    domain.ReportPriority
	PhotoURL    string
}

// ReportFilter narrows ListReports results.
type ReportFilter struct {
	AssetID  string
	Category domain.AssetCategory
	Priority domain.ReportPriority
	Status   domain.ReportStatus
	From     *time.Time
	To       *time.Time
}

// ReturnChecklistItem is one reserved line a return must account for.
// A room line always has Quantity 1.
type ReturnChecklistItem struct {
	AssetID  string `json:"assetId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	IsRoom   bool   `json:"isRoom"`
}

// Disposition states what came back for one reserved line.
type Disposition struct {
	Returned  bool                  `json:"returned"`
	Condition domain.AssetCondition `json:"condition"`
}

// ProcessReturnRequest settles a loan. Dispositions is keyed by asset
// id and must cover every reserved line.
type ProcessReturnRequest struct {
	Dispositions map[string]Disposition
	Notes        string
}

// StatsFilter anchors the overdue computation; zero Now means now.
type StatsFilter struct {
	Now time.Time
}

// Stats is the aggregate dashboard snapshot.
type Stats struct {
	AssetsByCategory  map[domain.AssetCategory]int64  `json:"assetsByCategory"`
	AssetsByCondition map[domain.AssetCondition]int64 `json:"assetsByCondition"`
	LoansByStatus     map[domain.LoanStatus]int64     `json:"loansByStatus"`
	OverdueLoans      int64                           `json:"overdueLoans"`
	OpenReports       int64                           `json:"openReports"`
	TopDamagedAssets  []DamagedAssetCount             `json:"topDamagedAssets"`
}

// DamagedAssetCount counts unresolved damage reports per asset.
type DamagedAssetCount struct {
	AssetID   string `json:"assetId"`
	AssetName string `json:"assetName"`
	Reports   int64  `json:"reports"`
}

package model

import (
	"time"

	"lasalleserve-backend/internal/domain"
)

// Loan is a borrow request covering at most one room plus any number
// of facility lines. While the loan is approved it holds a stock
// reservation: one unit of the room plus each line's quantity,
// released exactly once when the loan completes.
type Loan struct {
	ID           string            `gorm:"type:uuid;primaryKey" json:"id"`
	BorrowerID   string            `gorm:"size:64;index;not null" json:"borrowerId"`
	BorrowerName string            `gorm:"size:256;not null" json:"borrowerName"`
	RoomID       *string           `gorm:"type:uuid;index" json:"roomId,omitempty"`
	RoomName     string            `gorm:"size:256" json:"roomName,omitempty"`
	StartDate    time.Time         `gorm:"not null" json:"startDate"`
	EndDate      time.Time         `gorm:"not null;index" json:"endDate"`
	Status       domain.LoanStatus `gorm:"size:32;not null;index" json:"status"`
	Purpose      string            `gorm:"size:1024" json:"purpose"`
	Notes        string            `gorm:"size:1024" json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	ReturnedAt   *time.Time        `json:"returnedAt,omitempty"`

	// Associations
	Items []LoanItem `gorm:"foreignKey:LoanID;constraint:OnDelete:CASCADE" json:"facilities"`
}

// LoanItem is one facility line on a loan. AssetID is distinct within
// a loan and Quantity is always positive.
type LoanItem struct {
	ID       int64  `gorm:"autoIncrement;primaryKey" json:"-"`
	LoanID   string `gorm:"type:uuid;index;not null" json:"-"`
	AssetID  string `gorm:"type:uuid;index;not null" json:"assetId"`
	Name     string `gorm:"size:256;not null" json:"name"`
	Quantity int    `gorm:"not null" json:"quantity"`
}

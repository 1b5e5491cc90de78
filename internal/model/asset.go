package model

import (
	"time"

	"lasalleserve-backend/internal/domain"
)

// Asset represents a lendable room or piece of equipment in the
// registry. AvailableStock is mutated only by loan approval (deduct)
// and return reconciliation (restore); the invariant
// 0 <= AvailableStock <= TotalStock must hold at all times.
type Asset struct {
	ID             string                `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string                `gorm:"size:256;not null" json:"name"`
	Category       domain.AssetCategory  `gorm:"size:32;not null;index" json:"category"`
	Location       string                `gorm:"size:256" json:"location"`
	TotalStock     int                   `gorm:"not null" json:"totalStock"`
	AvailableStock int                   `gorm:"not null" json:"availableStock"`
	Condition      domain.AssetCondition `gorm:"size:32;not null;default:'good'" json:"condition"`
	Description    string                `gorm:"size:1024" json:"description,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

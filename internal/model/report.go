package model

import (
	"time"

	"lasalleserve-backend/internal/domain"
)

// DamageReport records a condition-affecting incident against an
// asset. Filing one does not touch the asset's stock or condition;
// that linkage is a manual staff action.
type DamageReport struct {
	ID           string                `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID      string                `gorm:"type:uuid;index;not null" json:"assetId"`
	AssetName    string                `gorm:"size:256;not null" json:"assetName"`
	ReportedBy   string                `gorm:"size:64;index;not null" json:"reportedBy"`
	ReporterName string                `gorm:"size:256;not null" json:"reporterName"`
	Description  string                `gorm:"size:1024;not null" json:"description"`
	Priority     domain.ReportPriority `gorm:"size:16;not null;index" json:"priority"`
	Status       domain.ReportStatus   `gorm:"size:16;not null;index" json:"status"`
	PhotoURL     string                `gorm:"size:512" json:"photoUrl,omitempty"`
	AssignedTo   string                `gorm:"size:256" json:"assignedTo,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appdb "lasalleserve-backend/internal/db"
	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/model"
)

var (
	admin    = domain.Identity{UserID: "u-admin", Name: "Rina Admin", Role: domain.RoleAdmin}
	approver = domain.Identity{UserID: "u-staff", Name: "Budi Staff", Role: domain.RoleStaffManager}
	student  = domain.Identity{UserID: "u-student", Name: "Sari Student", Role: domain.RoleStudent}
	lecturer = domain.Identity{UserID: "u-lecturer", Name: "Dewi Lecturer", Role: domain.RoleLecturer}
)

// newTestStore opens a private in-memory SQLite database with the full
// schema applied.
func newTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, appdb.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return NewGormStore(db), db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedAsset inserts an asset directly, bypassing the admin-only API.
func seedAsset(t *testing.T, db *gorm.DB, category domain.AssetCategory, name string, total int) *model.Asset {
	t.Helper()
	asset := model.Asset{
		ID:             uuid.NewString(),
		Name:           name,
		Category:       category,
		Location:       "Building A",
		TotalStock:     total,
		AvailableStock: total,
		Condition:      domain.ConditionGood,
	}
	require.NoError(t, db.Create(&asset).Error)
	return &asset
}

func assetAvailable(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var asset model.Asset
	require.NoError(t, db.First(&asset, "id = ?", id).Error)
	return asset.AvailableStock
}

func requireDomainError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, code, derr.Code)
}

func submitFacilityLoan(t *testing.T, s Store, assetID string, qty int) *model.Loan {
	t.Helper()
	loan, err := s.SubmitLoan(context.Background(), student, SubmitLoanRequest{
		Facilities: []FacilityRequest{{AssetID: assetID, Quantity: qty}},
		StartDate:  date(2026, 9, 1),
		EndDate:    date(2026, 9, 3),
		Purpose:    "lab session",
	})
	require.NoError(t, err)
	return loan
}

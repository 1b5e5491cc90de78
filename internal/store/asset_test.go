package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lasalleserve-backend/internal/domain"
)

func TestCreateAsset(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	asset, err := s.CreateAsset(ctx, admin, CreateAssetRequest{
		Name:       "Seminar Room 101",
		Category:   domain.CategoryRoom,
		Location:   "Building A",
		TotalStock: 1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, asset.ID)
	assert.Equal(t, 1, asset.AvailableStock, "available stock starts at total")
	assert.Equal(t, domain.ConditionGood, asset.Condition)

	t.Run("non-admin refused", func(t *testing.T) {
		for _, actor := range []domain.Identity{approver, student} {
			_, err := s.CreateAsset(ctx, actor, CreateAssetRequest{
				Name: "X", Category: domain.CategoryFacility, TotalStock: 1,
			})
			requireDomainError(t, err, domain.ErrCodeUnauthorized)
		}
	})

	t.Run("bad input refused", func(t *testing.T) {
		_, err := s.CreateAsset(ctx, admin, CreateAssetRequest{Name: " ", Category: domain.CategoryRoom})
		requireDomainError(t, err, domain.ErrCodeValidation)
		_, err = s.CreateAsset(ctx, admin, CreateAssetRequest{Name: "X", Category: "vehicle"})
		requireDomainError(t, err, domain.ErrCodeValidation)
		_, err = s.CreateAsset(ctx, admin, CreateAssetRequest{Name: "X", Category: domain.CategoryRoom, TotalStock: -1})
		requireDomainError(t, err, domain.ErrCodeValidation)
	})
}

func TestUpdateAssetStockAccounting(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	projector := seedAsset(t, db, domain.CategoryFacility, "Projector", 5)

	// Put 2 units on loan so 3 remain available.
	loan := submitFacilityLoan(t, s, projector.ID, 2)
	_, err := s.ApproveLoan(ctx, loan.ID, approver)
	require.NoError(t, err)

	// Growing total stock grows availability by the same delta.
	seven := 7
	updated, err := s.UpdateAsset(ctx, admin, projector.ID, AssetUpdate{TotalStock: &seven})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.TotalStock)
	assert.Equal(t, 5, updated.AvailableStock)

	// Shrinking below the on-loan quantity is refused.
	one := 1
	_, err = s.UpdateAsset(ctx, admin, projector.ID, AssetUpdate{TotalStock: &one})
	requireDomainError(t, err, domain.ErrCodeValidation)

	// Shrinking to exactly the on-loan quantity leaves zero available.
	two := 2
	updated, err = s.UpdateAsset(ctx, admin, projector.ID, AssetUpdate{TotalStock: &two})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.AvailableStock)
}

func TestDeleteAssetGuards(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	projector := seedAsset(t, db, domain.CategoryFacility, "Projector", 5)

	loan := submitFacilityLoan(t, s, projector.ID, 1)
	err := s.DeleteAsset(ctx, admin, projector.ID)
	requireDomainError(t, err, domain.ErrCodeState)

	_, err = s.RejectLoan(ctx, loan.ID, approver)
	require.NoError(t, err)

	report, err := s.FileReport(ctx, student, FileReportRequest{AssetID: projector.ID, Description: "scuffed"})
	require.NoError(t, err)
	err = s.DeleteAsset(ctx, admin, projector.ID)
	requireDomainError(t, err, domain.ErrCodeState)

	_, err = s.AdvanceReportStatus(ctx, report.ID, approver, domain.ReportDone, "")
	require.NoError(t, err)

	// With the loan rejected and the report done, deletion goes through.
	require.NoError(t, s.DeleteAsset(ctx, admin, projector.ID))
	_, err = s.GetAsset(ctx, projector.ID)
	requireDomainError(t, err, domain.ErrCodeNotFound)
}

func TestListAssetsFilters(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	seedAsset(t, db, domain.CategoryFacility, "Projector", 5)
	room := seedAsset(t, db, domain.CategoryRoom, "Seminar Room 101", 1)
	require.NoError(t, db.Model(room).Update("location", "Building B").Error)

	assets, err := s.ListAssets(ctx, AssetFilter{Category: domain.CategoryRoom})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Seminar Room 101", assets[0].Name)

	assets, err = s.ListAssets(ctx, AssetFilter{Location: "Building B"})
	require.NoError(t, err)
	require.Len(t, assets, 1)

	assets, err = s.ListAssets(ctx, AssetFilter{Search: "projec"})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Projector", assets[0].Name)

	assets, err = s.ListAssets(ctx, AssetFilter{})
	require.NoError(t, err)
	assert.Len(t, assets, 2)
}

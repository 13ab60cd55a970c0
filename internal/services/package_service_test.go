package services

import (
	"context"
	"testing"
	"time"

	"concierge-backend/internal/models"
	"concierge-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPackageService() *PackageService {
	st := store.NewMemoryStore()
	s := NewPackageService(st, NewResidentService(st))
	s.now = func() time.Time { return testNow }
	return s
}

func TestCreatePackage_SnapshotsResident(t *testing.T) {
	st := store.NewMemoryStore()
	residents := NewResidentService(st)
	packages := NewPackageService(st, residents)
	ctx := context.Background()

	resident, err := residents.CreateResident(ctx, "company-1", &models.CreateResidentRequest{
		Name:       "Maria Lopez",
		UnitNumber: "4B",
		Phone:      "+15551234567",
		Email:      "maria@example.com",
	})
	require.NoError(t, err)

	pkg, err := packages.CreatePackage(ctx, "company-1", &models.CreatePackageRequest{
		ResidentID: resident.ID,
		Courier:    "UPS",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopez", pkg.ResidentName)
	assert.Equal(t, "4B", pkg.UnitNumber)
	assert.Equal(t, "+15551234567", pkg.RecipientPhone)
	assert.Equal(t, "maria@example.com", pkg.RecipientEmail)
	assert.Equal(t, models.PackagePending, pkg.Status)

	// Later resident edits do not change the snapshot.
	_, err = residents.UpdateResident(ctx, "company-1", resident.ID, &models.CreateResidentRequest{
		Name:       "Maria Lopez-Smith",
		UnitNumber: "9F",
	})
	require.NoError(t, err)

	got, err := packages.GetPackage(ctx, "company-1", pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopez", got.ResidentName)
	assert.Equal(t, "4B", got.UnitNumber)
}

func TestCreatePackage_Validation(t *testing.T) {
	s := newPackageService()

	future := testNow.Add(time.Hour)
	_, err := s.CreatePackage(context.Background(), "company-1", &models.CreatePackageRequest{
		DeliveredAt: &future,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "courier")
	assert.Contains(t, verr.Fields, "unitNumber")
	assert.Contains(t, verr.Fields, "deliveredAt")
}

func TestMarkPickedUp(t *testing.T) {
	s := newPackageService()
	ctx := context.Background()

	pkg, err := s.CreatePackage(ctx, "company-1", &models.CreatePackageRequest{
		UnitNumber: "4B",
		Courier:    "UPS",
	})
	require.NoError(t, err)

	picked, err := s.MarkPickedUp(ctx, "company-1", pkg.ID, &models.PickupRequest{PickupBy: "Maria", Notes: "left box"})
	require.NoError(t, err)
	assert.Equal(t, models.PackagePickedUp, picked.Status)
	assert.Equal(t, "Maria", picked.PickupBy)
	assert.Equal(t, "left box", picked.PickupNotes)
	require.NotNil(t, picked.PickedUpAt)
}

func TestMarkPickedUp_DefaultsPickupBy(t *testing.T) {
	s := newPackageService()
	ctx := context.Background()

	pkg, err := s.CreatePackage(ctx, "company-1", &models.CreatePackageRequest{
		UnitNumber: "4B",
		Courier:    "UPS",
	})
	require.NoError(t, err)

	picked, err := s.MarkPickedUp(ctx, "company-1", pkg.ID, &models.PickupRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Resident", picked.PickupBy)
}

func TestMarkManyPickedUp_SkipsFailures(t *testing.T) {
	s := newPackageService()
	ctx := context.Background()

	first, err := s.CreatePackage(ctx, "company-1", &models.CreatePackageRequest{UnitNumber: "4B", Courier: "UPS"})
	require.NoError(t, err)
	second, err := s.CreatePackage(ctx, "company-1", &models.CreatePackageRequest{UnitNumber: "7C", Courier: "FedEx"})
	require.NoError(t, err)

	ok := s.MarkManyPickedUp(ctx, "company-1", &models.BulkPickupRequest{
		PackageIDs: []string{first.ID, second.ID, "missing-id"},
		PickupBy:   "Doorman",
	})
	assert.Equal(t, 2, ok)
}

func TestSearchPackages(t *testing.T) {
	s := newPackageService()
	ctx := context.Background()

	_, err := s.CreatePackage(ctx, "company-1", &models.CreatePackageRequest{
		ResidentName: "Maria Lopez",
		UnitNumber:   "4B",
		Courier:      "UPS",
	})
	require.NoError(t, err)
	_, err = s.CreatePackage(ctx, "company-1", &models.CreatePackageRequest{
		ResidentName: "Dan Wu",
		UnitNumber:   "12A",
		Courier:      "FedEx",
	})
	require.NoError(t, err)

	matched, err := s.SearchPackages(ctx, "company-1", "maria")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "4B", matched[0].UnitNumber)

	matched, err = s.SearchPackages(ctx, "company-1", "fedex")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "12A", matched[0].UnitNumber)
}

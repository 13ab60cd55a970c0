package services

import (
	"context"
	"testing"

	"concierge-backend/internal/models"
	"concierge-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCompany(t *testing.T, s *CompanyService) *models.Company {
	t.Helper()
	company, err := s.CreateCompany(context.Background(), &models.CreateCompanyRequest{
		Name:        "Harborview Residences",
		StaffEmails: []string{"staff@harborview.example", "manager@harborview.example"},
	})
	require.NoError(t, err)
	return company
}

func TestCreateCompany_Validation(t *testing.T) {
	s := NewCompanyService(store.NewMemoryStore())

	_, err := s.CreateCompany(context.Background(), &models.CreateCompanyRequest{
		StaffEmails: []string{"not-an-email"},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "staffEmails")
}

func TestGetCompanyByStaffEmail(t *testing.T) {
	s := NewCompanyService(store.NewMemoryStore())
	company := seedCompany(t, s)
	ctx := context.Background()

	found, err := s.GetCompanyByStaffEmail(ctx, "manager@harborview.example")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, company.ID, found.ID)

	// An unknown email resolves to no company, not an error.
	found, err = s.GetCompanyByStaffEmail(ctx, "stranger@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAmenityLifecycle(t *testing.T) {
	s := NewCompanyService(store.NewMemoryStore())
	company := seedCompany(t, s)
	ctx := context.Background()

	updated, err := s.AddAmenity(ctx, company.ID, models.Amenity{Name: "Gym", Capacity: 20})
	require.NoError(t, err)
	require.Len(t, updated.Amenities, 1)
	assert.NotEmpty(t, updated.Amenities[0].ID)

	updated, err = s.AddAmenity(ctx, company.ID, models.Amenity{Name: "Party Room"})
	require.NoError(t, err)
	require.Len(t, updated.Amenities, 2)

	updated, err = s.RemoveAmenity(ctx, company.ID, updated.Amenities[0].ID)
	require.NoError(t, err)
	require.Len(t, updated.Amenities, 1)
	assert.Equal(t, "Party Room", updated.Amenities[0].Name)
}

func TestAddAmenity_RequiresName(t *testing.T) {
	s := NewCompanyService(store.NewMemoryStore())
	company := seedCompany(t, s)

	_, err := s.AddAmenity(context.Background(), company.ID, models.Amenity{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateStaffEmails(t *testing.T) {
	s := NewCompanyService(store.NewMemoryStore())
	company := seedCompany(t, s)
	ctx := context.Background()

	updated, err := s.UpdateStaffEmails(ctx, company.ID, []string{"desk@harborview.example"})
	require.NoError(t, err)
	assert.Equal(t, []string{"desk@harborview.example"}, updated.StaffEmails)

	found, err := s.GetCompanyByStaffEmail(ctx, "manager@harborview.example")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = s.GetCompanyByStaffEmail(ctx, "desk@harborview.example")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, company.ID, found.ID)
}

func TestUpdateStaffEmails_Validation(t *testing.T) {
	s := NewCompanyService(store.NewMemoryStore())
	company := seedCompany(t, s)

	var verr *ValidationError
	_, err := s.UpdateStaffEmails(context.Background(), company.ID, nil)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "staffEmails")

	_, err = s.UpdateStaffEmails(context.Background(), company.ID, []string{"nope"})
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateSettings(t *testing.T) {
	s := NewCompanyService(store.NewMemoryStore())
	company := seedCompany(t, s)

	updated, err := s.UpdateSettings(context.Background(), company.ID, &models.UpdateCompanySettingsRequest{
		BusinessHours: models.BusinessHours{Start: "08:00", End: "20:00"},
		SMS:           models.ChannelSettings{Enabled: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00", updated.Settings.BusinessHours.Start)
	assert.True(t, updated.Settings.SMS.Enabled)
}

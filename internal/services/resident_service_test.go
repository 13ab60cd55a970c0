package services

import (
	"context"
	"testing"

	"concierge-backend/internal/models"
	"concierge-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateResident_Validation(t *testing.T) {
	s := NewResidentService(store.NewMemoryStore())

	_, err := s.CreateResident(context.Background(), "company-1", &models.CreateResidentRequest{
		Email: "not-an-email",
		Phone: "abc",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "unitNumber")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "phone")
}

func TestAssociateContact_NoMatchIsNil(t *testing.T) {
	s := NewResidentService(store.NewMemoryStore())

	match, err := s.AssociateContact(context.Background(), "company-1", "+15559999999")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestAssociateContact_EmptyPhoneIsNil(t *testing.T) {
	s := NewResidentService(store.NewMemoryStore())

	match, err := s.AssociateContact(context.Background(), "company-1", "")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestAssociateContact_ReturnsSnapshot(t *testing.T) {
	s := NewResidentService(store.NewMemoryStore())
	ctx := context.Background()

	resident, err := s.CreateResident(ctx, "company-1", &models.CreateResidentRequest{
		Name:       "Maria Lopez",
		UnitNumber: "4B",
		Phone:      "+15551234567",
	})
	require.NoError(t, err)

	match, err := s.AssociateContact(ctx, "company-1", "+15551234567")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, resident.ID, match.ResidentID)
	assert.Equal(t, "Maria Lopez", match.ResidentName)
	assert.Equal(t, "4B", match.UnitNumber)
}

func TestAssociateContact_ExactStringMatchOnly(t *testing.T) {
	s := NewResidentService(store.NewMemoryStore())
	ctx := context.Background()

	_, err := s.CreateResident(ctx, "company-1", &models.CreateResidentRequest{
		Name:       "Maria Lopez",
		UnitNumber: "4B",
		Phone:      "+1 555-123-4567",
	})
	require.NoError(t, err)

	// A differently formatted rendering of the same number does not match.
	match, err := s.AssociateContact(ctx, "company-1", "+15551234567")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestResident_ByIDScopedToCompany(t *testing.T) {
	s := NewResidentService(store.NewMemoryStore())
	ctx := context.Background()

	resident, err := s.CreateResident(ctx, "company-1", &models.CreateResidentRequest{
		Name:       "Maria Lopez",
		UnitNumber: "4B",
	})
	require.NoError(t, err)

	_, err = s.GetResident(ctx, "company-2", resident.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.UpdateResident(ctx, "company-2", resident.ID, &models.CreateResidentRequest{
		Name:       "Impostor",
		UnitNumber: "4B",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteResident(ctx, "company-2", resident.ID))
	got, err := s.GetResident(ctx, "company-1", resident.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopez", got.Name)
}

func TestAssociateContact_ScopedToCompany(t *testing.T) {
	s := NewResidentService(store.NewMemoryStore())
	ctx := context.Background()

	_, err := s.CreateResident(ctx, "company-1", &models.CreateResidentRequest{
		Name:       "Maria Lopez",
		UnitNumber: "4B",
		Phone:      "+15551234567",
	})
	require.NoError(t, err)

	match, err := s.AssociateContact(ctx, "company-2", "+15551234567")
	require.NoError(t, err)
	assert.Nil(t, match)
}

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

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newBookingService() *BookingService {
	s := NewBookingService(store.NewMemoryStore())
	s.now = func() time.Time { return testNow }
	return s
}

func validBookingRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		Title:       "Party room",
		AmenityID:   "amenity-1",
		AmenityName: "Party Room",
		ContactName: "Maria Lopez",
		StartDate:   testNow.Add(24 * time.Hour),
		EndDate:     testNow.Add(26 * time.Hour),
	}
}

func TestCreateBooking_DefaultsToConfirmed(t *testing.T) {
	s := newBookingService()

	booking, err := s.CreateBooking(context.Background(), "company-1", validBookingRequest())
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, "company-1", booking.CompanyID)
	assert.NotEmpty(t, booking.ID)
}

func TestCreateBooking_RejectsPastStart(t *testing.T) {
	s := newBookingService()

	req := validBookingRequest()
	req.StartDate = testNow.Add(-time.Hour)
	req.EndDate = testNow.Add(time.Hour)

	_, err := s.CreateBooking(context.Background(), "company-1", req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "startDate")
}

func TestCreateBooking_RejectsEndBeforeStart(t *testing.T) {
	s := newBookingService()

	req := validBookingRequest()
	req.EndDate = req.StartDate.Add(-time.Hour)

	_, err := s.CreateBooking(context.Background(), "company-1", req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "endDate")

	// Zero-length bookings are rejected too.
	req = validBookingRequest()
	req.EndDate = req.StartDate
	_, err = s.CreateBooking(context.Background(), "company-1", req)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "endDate")
}

func TestCreateBooking_RequiredFields(t *testing.T) {
	s := newBookingService()

	_, err := s.CreateBooking(context.Background(), "company-1", &models.CreateBookingRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "amenityId")
	assert.Contains(t, verr.Fields, "startDate")
	assert.Contains(t, verr.Fields, "endDate")
}

func TestCancelBooking_KeepsRecord(t *testing.T) {
	s := newBookingService()
	ctx := context.Background()

	booking, err := s.CreateBooking(ctx, "company-1", validBookingRequest())
	require.NoError(t, err)

	cancelled, err := s.CancelBooking(ctx, "company-1", booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	// Record survives for calendar history.
	got, err := s.GetBooking(ctx, "company-1", booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
}

func TestListBookings_DateWindow(t *testing.T) {
	s := newBookingService()
	ctx := context.Background()

	near := validBookingRequest()
	far := validBookingRequest()
	far.Title = "Next week"
	far.StartDate = testNow.Add(7 * 24 * time.Hour)
	far.EndDate = far.StartDate.Add(2 * time.Hour)

	_, err := s.CreateBooking(ctx, "company-1", near)
	require.NoError(t, err)
	_, err = s.CreateBooking(ctx, "company-1", far)
	require.NoError(t, err)

	from := testNow
	to := testNow.Add(48 * time.Hour)
	bookings, err := s.ListBookings(ctx, "company-1", &from, &to)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Party room", bookings[0].Title)
}

func TestGetBooking_Missing(t *testing.T) {
	s := newBookingService()
	_, err := s.GetBooking(context.Background(), "company-1", "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

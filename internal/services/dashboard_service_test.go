package services

import (
	"context"
	"testing"
	"time"

	"concierge-backend/internal/models"
	"concierge-backend/internal/notify"
	"concierge-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardGetStats(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	residents := NewResidentService(st)
	bookings := NewBookingService(st)
	bookings.now = func() time.Time { return testNow }
	packages := NewPackageService(st, residents)
	issues := NewIssueService(st)
	messages := NewMessageService(st, residents, notify.NewMockSMSChannel(), nil)

	dashboard := NewDashboardService(st)
	dashboard.now = func() time.Time { return testNow }

	_, err := residents.CreateResident(ctx, "company-1", &models.CreateResidentRequest{
		Name:       "Maria Lopez",
		UnitNumber: "4B",
	})
	require.NoError(t, err)

	_, err = bookings.CreateBooking(ctx, "company-1", &models.CreateBookingRequest{
		Title:     "Gym slot",
		AmenityID: "amenity-1",
		StartDate: testNow.Add(time.Hour),
		EndDate:   testNow.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	_, err = packages.CreatePackage(ctx, "company-1", &models.CreatePackageRequest{
		UnitNumber: "4B",
		Courier:    "UPS",
	})
	require.NoError(t, err)

	_, err = issues.CreateIssue(ctx, "company-1", &models.CreateIssueRequest{Title: "Broken light"})
	require.NoError(t, err)

	_, err = messages.LogIncoming(ctx, "company-1", "+15551234567", "hello", "")
	require.NoError(t, err)

	// Another company's data must not leak into the counters.
	_, err = residents.CreateResident(ctx, "company-2", &models.CreateResidentRequest{
		Name:       "Other Person",
		UnitNumber: "1A",
	})
	require.NoError(t, err)

	stats, err := dashboard.GetStats(ctx, "company-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalResidents)
	assert.Equal(t, 1, stats.TodaysBookings)
	assert.Equal(t, 1, stats.PendingPackages)
	assert.Equal(t, 1, stats.UnreadMessages)
	assert.Equal(t, 1, stats.OpenIssues)
}

package analytics

import (
	"testing"
	"time"

	"concierge-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func at(minutes int) time.Time {
	return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}

func TestAverageResponseTimeMinutes_Empty(t *testing.T) {
	assert.Equal(t, 0, AverageResponseTimeMinutes(nil))
}

func TestAverageResponseTimeMinutes_SinglePair(t *testing.T) {
	msgs := []models.Message{
		{PhoneNumber: "+15551234567", Direction: models.DirectionIncoming, Timestamp: at(0)},
		{PhoneNumber: "+15551234567", Direction: models.DirectionOutgoing, Timestamp: at(10)},
	}
	assert.Equal(t, 10, AverageResponseTimeMinutes(msgs))
}

func TestAverageResponseTimeMinutes_UnpairedOutgoingIgnored(t *testing.T) {
	msgs := []models.Message{
		{PhoneNumber: "+15551234567", Direction: models.DirectionOutgoing, Timestamp: at(0)},
		{PhoneNumber: "+15551234567", Direction: models.DirectionOutgoing, Timestamp: at(5)},
	}
	assert.Equal(t, 0, AverageResponseTimeMinutes(msgs))
}

func TestAverageResponseTimeMinutes_AveragesAcrossConversations(t *testing.T) {
	msgs := []models.Message{
		{PhoneNumber: "+15550000001", Direction: models.DirectionIncoming, Timestamp: at(0)},
		{PhoneNumber: "+15550000001", Direction: models.DirectionOutgoing, Timestamp: at(10)},
		{PhoneNumber: "+15550000002", Direction: models.DirectionIncoming, Timestamp: at(0)},
		{PhoneNumber: "+15550000002", Direction: models.DirectionOutgoing, Timestamp: at(20)},
	}
	assert.Equal(t, 15, AverageResponseTimeMinutes(msgs))
}

func TestAveragePickupTimeHours(t *testing.T) {
	picked := at(6 * 60)
	pkgs := []models.Package{
		{Status: models.PackagePickedUp, CreatedAt: at(0), PickedUpAt: &picked},
		{Status: models.PackagePending, CreatedAt: at(0)},
	}
	assert.Equal(t, 6, AveragePickupTimeHours(pkgs))
	assert.Equal(t, 0, AveragePickupTimeHours(nil))
}

func TestTopCouriers(t *testing.T) {
	pkgs := []models.Package{
		{Courier: "UPS"}, {Courier: "UPS"}, {Courier: "FedEx"},
		{Courier: "USPS"}, {Courier: "FedEx"}, {Courier: "UPS"},
		{Courier: ""},
	}
	top := TopCouriers(pkgs, 2)
	assert.Equal(t, []models.CourierCount{
		{Courier: "UPS", Count: 3},
		{Courier: "FedEx", Count: 2},
	}, top)
}

func TestTopCouriers_TieBreaksAlphabetically(t *testing.T) {
	pkgs := []models.Package{{Courier: "UPS"}, {Courier: "Amazon"}}
	top := TopCouriers(pkgs, 5)
	assert.Equal(t, "Amazon", top[0].Courier)
	assert.Equal(t, "UPS", top[1].Courier)
}

func TestBusiestDay(t *testing.T) {
	pkgs := []models.Package{
		{CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)},
		{CreatedAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)},
		{CreatedAt: time.Date(2026, 3, 11, 9, 0, 0, 0, time.Local)},
	}
	busiest := BusiestDay(pkgs)
	assert.Equal(t, "2026-03-10", busiest.Day)
	assert.Equal(t, 2, busiest.Count)
}

func TestMostActiveUnit(t *testing.T) {
	pkgs := []models.Package{
		{UnitNumber: "4B"}, {UnitNumber: "4B"}, {UnitNumber: "12A"},
	}
	top := MostActiveUnit(pkgs)
	assert.Equal(t, "4B", top.Unit)
	assert.Equal(t, 2, top.Count)
}

func TestParseDurationSeconds(t *testing.T) {
	assert.Equal(t, 150, ParseDurationSeconds("2:30"))
	assert.Equal(t, 45, ParseDurationSeconds("0:45"))
	assert.Equal(t, 90, ParseDurationSeconds("90"))
	assert.Equal(t, 0, ParseDurationSeconds(""))
	assert.Equal(t, 0, ParseDurationSeconds("n/a"))
}

func TestAverageCallDurationSeconds(t *testing.T) {
	calls := []models.CallLog{
		{Duration: "2:00"},
		{Duration: "60"},
		{Duration: ""},
	}
	// The missed call counts toward the denominator: (120+60+0)/3.
	assert.Equal(t, 60, AverageCallDurationSeconds(calls))

	assert.Equal(t, 0, AverageCallDurationSeconds(nil))
}

func TestMessageStats(t *testing.T) {
	msgs := []models.Message{
		{PhoneNumber: "+15550000001", Direction: models.DirectionIncoming, Timestamp: at(0)},
		{PhoneNumber: "+15550000001", Direction: models.DirectionOutgoing, Timestamp: at(10)},
		{PhoneNumber: "+15550000002", Direction: models.DirectionIncoming, IsRead: true, Timestamp: at(0)},
	}
	stats := MessageStats(msgs)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Incoming)
	assert.Equal(t, 1, stats.Outgoing)
	assert.Equal(t, 1, stats.Unread)
	assert.Equal(t, 10, stats.AvgResponseTime)
}

func TestPackageStats(t *testing.T) {
	picked := at(120)
	pkgs := []models.Package{
		{Status: models.PackagePending, Courier: "UPS"},
		{Status: models.PackagePickedUp, Courier: "UPS", CreatedAt: at(0), PickedUpAt: &picked, NotificationSent: true},
		{Status: models.PackageReturned, Courier: "FedEx"},
	}
	stats := PackageStats(pkgs)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.PickedUp)
	assert.Equal(t, 1, stats.Notified)
	assert.Equal(t, "UPS", stats.TopCouriers[0].Courier)
}

func TestDashboardStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	stats := DashboardStats(
		[]models.Resident{{}, {}},
		[]models.Booking{
			{StartDate: now.Add(2 * time.Hour), Status: models.BookingConfirmed},
			{StartDate: now.Add(2 * time.Hour), Status: models.BookingCancelled},
			{StartDate: now.AddDate(0, 0, 1), Status: models.BookingConfirmed},
		},
		[]models.Package{{Status: models.PackagePending}, {Status: models.PackagePickedUp}},
		[]models.Message{{PhoneNumber: "+15550000001", Direction: models.DirectionIncoming}},
		[]models.CallLog{{Status: models.CallMissed}, {Status: models.CallAnswered}},
		[]models.Issue{{Status: models.IssueOpen}, {Status: models.IssueResolved}},
		[]models.Visitor{
			{ExpectedArrival: now.Add(time.Hour), Status: models.VisitorPreRegistered},
			{ExpectedArrival: now.Add(time.Hour), Status: models.VisitorNoShow},
		},
		now,
	)
	assert.Equal(t, 2, stats.TotalResidents)
	assert.Equal(t, 1, stats.TodaysBookings)
	assert.Equal(t, 1, stats.PendingPackages)
	assert.Equal(t, 1, stats.UnreadMessages)
	assert.Equal(t, 1, stats.MissedCalls)
	assert.Equal(t, 1, stats.OpenIssues)
	assert.Equal(t, 1, stats.TodaysVisitors)
}

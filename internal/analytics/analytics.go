// Package analytics computes derived statistics over entity collections
// already fetched from the store. All functions are pure and operate on
// in-memory slices; at single-building scale full recomputation is cheap
// enough that nothing here is cached or maintained incrementally.
package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"concierge-backend/internal/models"
)

// AverageResponseTimeMinutes groups messages by phone number, preserving
// input order, and averages the gap of each incoming message immediately
// followed by an outgoing one. An outgoing message not directly preceded
// by an incoming one contributes nothing. The pairing is adjacency-based,
// not thread-based, so the result depends on fetch order; callers sort by
// timestamp before calling when they want a stable answer.
func AverageResponseTimeMinutes(messages []models.Message) int {
	conversations := make(map[string][]models.Message)
	var order []string
	for _, m := range messages {
		if _, seen := conversations[m.PhoneNumber]; !seen {
			order = append(order, m.PhoneNumber)
		}
		conversations[m.PhoneNumber] = append(conversations[m.PhoneNumber], m)
	}

	var total time.Duration
	var count int
	for _, phone := range order {
		thread := conversations[phone]
		for i := 0; i+1 < len(thread); i++ {
			cur, next := thread[i], thread[i+1]
			if cur.Direction == models.DirectionIncoming && next.Direction == models.DirectionOutgoing {
				total += next.Timestamp.Sub(cur.Timestamp)
				count++
			}
		}
	}

	if count == 0 {
		return 0
	}
	return int((total / time.Duration(count)).Round(time.Minute) / time.Minute)
}

// AveragePickupTimeHours averages pickedUpAt - createdAt over picked-up
// packages that have both timestamps. Returns whole hours, 0 when none
// qualify.
func AveragePickupTimeHours(packages []models.Package) int {
	var total time.Duration
	var count int
	for _, p := range packages {
		if p.Status != models.PackagePickedUp || p.PickedUpAt == nil || p.CreatedAt.IsZero() {
			continue
		}
		total += p.PickedUpAt.Sub(p.CreatedAt)
		count++
	}
	if count == 0 {
		return 0
	}
	return int((total / time.Duration(count)).Round(time.Hour) / time.Hour)
}

// TopCouriers returns the n most frequent couriers, descending by count.
func TopCouriers(packages []models.Package, n int) []models.CourierCount {
	counts := make(map[string]int)
	for _, p := range packages {
		if p.Courier != "" {
			counts[p.Courier]++
		}
	}

	ranked := make([]models.CourierCount, 0, len(counts))
	for courier, count := range counts {
		ranked = append(ranked, models.CourierCount{Courier: courier, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Courier < ranked[j].Courier
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// BusiestDay finds the local calendar day with the most package creations.
func BusiestDay(packages []models.Package) models.DayCount {
	counts := make(map[string]int)
	for _, p := range packages {
		day := p.CreatedAt.Local().Format("2006-01-02")
		counts[day]++
	}

	var busiest models.DayCount
	for day, count := range counts {
		if count > busiest.Count || (count == busiest.Count && day < busiest.Day) {
			busiest = models.DayCount{Day: day, Count: count}
		}
	}
	return busiest
}

// MostActiveUnit finds the unit receiving the most packages.
func MostActiveUnit(packages []models.Package) models.UnitCount {
	counts := make(map[string]int)
	for _, p := range packages {
		if p.UnitNumber != "" {
			counts[p.UnitNumber]++
		}
	}

	var top models.UnitCount
	for unit, count := range counts {
		if count > top.Count || (count == top.Count && unit < top.Unit) {
			top = models.UnitCount{Unit: unit, Count: count}
		}
	}
	return top
}

// AverageCallDurationSeconds averages call durations, accepting either
// "m:ss" strings or plain seconds. Missed calls count as zero-duration
// entries, so a heavy missed-call day drags the average down.
func AverageCallDurationSeconds(calls []models.CallLog) int {
	if len(calls) == 0 {
		return 0
	}
	var total int
	for _, c := range calls {
		total += ParseDurationSeconds(c.Duration)
	}
	return (total + len(calls)/2) / len(calls)
}

// ParseDurationSeconds parses "2:30" into 150; anything else is taken as
// a plain seconds value, 0 when unparseable.
func ParseDurationSeconds(s string) int {
	if s == "" {
		return 0
	}
	if parts := strings.SplitN(s, ":", 2); len(parts) == 2 {
		minutes, _ := strconv.Atoi(parts[0])
		seconds, _ := strconv.Atoi(parts[1])
		return minutes*60 + seconds
	}
	n, _ := strconv.Atoi(s)
	return n
}

func MessageStats(messages []models.Message) models.MessageStats {
	stats := models.MessageStats{Total: len(messages)}
	for _, m := range messages {
		switch m.Direction {
		case models.DirectionIncoming:
			stats.Incoming++
			if !m.IsRead {
				stats.Unread++
			}
		case models.DirectionOutgoing:
			stats.Outgoing++
		}
	}
	stats.AvgResponseTime = AverageResponseTimeMinutes(messages)
	return stats
}

func CallStats(calls []models.CallLog) models.CallStats {
	stats := models.CallStats{Total: len(calls)}
	for _, c := range calls {
		switch c.Status {
		case models.CallAnswered:
			stats.Answered++
		case models.CallMissed:
			stats.Missed++
		}
	}
	stats.AvgDuration = AverageCallDurationSeconds(calls)
	return stats
}

func PackageStats(packages []models.Package) models.PackageStats {
	stats := models.PackageStats{Total: len(packages)}
	for _, p := range packages {
		switch p.Status {
		case models.PackagePending:
			stats.Pending++
		case models.PackagePickedUp:
			stats.PickedUp++
		}
		if p.NotificationSent {
			stats.Notified++
		}
	}
	stats.AvgPickupTime = AveragePickupTimeHours(packages)
	stats.TopCouriers = TopCouriers(packages, 5)
	return stats
}

// SameLocalDay reports whether two instants fall on the same local
// calendar day.
func SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// DashboardStats recomputes the dashboard counter block from the full
// collections for a company.
func DashboardStats(
	residents []models.Resident,
	bookings []models.Booking,
	packages []models.Package,
	messages []models.Message,
	calls []models.CallLog,
	issues []models.Issue,
	visitors []models.Visitor,
	now time.Time,
) models.DashboardStats {
	stats := models.DashboardStats{TotalResidents: len(residents)}

	for _, b := range bookings {
		if SameLocalDay(b.StartDate, now) && b.Status != models.BookingCancelled {
			stats.TodaysBookings++
		}
	}
	for _, p := range packages {
		if p.Status == models.PackagePending {
			stats.PendingPackages++
		}
	}
	for _, m := range messages {
		if m.Direction == models.DirectionIncoming && !m.IsRead {
			stats.UnreadMessages++
		}
	}
	for _, c := range calls {
		if c.Status == models.CallMissed {
			stats.MissedCalls++
		}
	}
	for _, i := range issues {
		if i.Status == models.IssueOpen {
			stats.OpenIssues++
		}
	}
	for _, v := range visitors {
		if SameLocalDay(v.ExpectedArrival, now) && v.Status != models.VisitorNoShow {
			stats.TodaysVisitors++
		}
	}
	stats.ResponseTime = AverageResponseTimeMinutes(messages)
	return stats
}

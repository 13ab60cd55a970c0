package services

import (
	"context"
	"sync"
	"time"

	"concierge-backend/internal/analytics"
	"concierge-backend/internal/models"
	"concierge-backend/internal/store"
)

// DashboardService assembles the front desk landing page counters. All
// collections are fetched in parallel; the stats themselves are pure
// recomputation over the results.
type DashboardService struct {
	Store store.Store
	now   func() time.Time
}

func NewDashboardService(st store.Store) *DashboardService {
	return &DashboardService{Store: st, now: time.Now}
}

func (s *DashboardService) GetStats(ctx context.Context, companyID string) (*models.DashboardStats, error) {
	var (
		residents []models.Resident
		bookings  []models.Booking
		packages  []models.Package
		messages  []models.Message
		calls     []models.CallLog
		issues    []models.Issue
		visitors  []models.Visitor

		wg   sync.WaitGroup
		errs [7]error
	)

	fetch := func(i int, collection string, dest interface{}, q store.Query) {
		defer wg.Done()
		errs[i] = s.Store.Query(ctx, collection, companyID, q, dest)
	}

	wg.Add(7)
	go fetch(0, store.Residents, &residents, store.Query{})
	go fetch(1, store.Bookings, &bookings, store.Query{})
	go fetch(2, store.Packages, &packages, store.Query{})
	go fetch(3, store.Messages, &messages, store.Query{OrderBy: "timestamp"})
	go fetch(4, store.CallLogs, &calls, store.Query{})
	go fetch(5, store.Issues, &issues, store.Query{})
	go fetch(6, store.Visitors, &visitors, store.Query{})
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	stats := analytics.DashboardStats(residents, bookings, packages, messages, calls, issues, visitors, s.now())
	return &stats, nil
}

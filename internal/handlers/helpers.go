package handlers

import (
	"fmt"
	"net/http"
	"time"

	"concierge-backend/internal/middleware"
)

func companyID(r *http.Request) string {
	id, _ := middleware.GetCompanyIDFromContext(r.Context())
	return id
}

func staffEmail(r *http.Request) string {
	email, _ := middleware.GetEmailFromContext(r.Context())
	return email
}

// dateRange parses optional from/to query parameters, accepting RFC3339
// or a bare date. A parameter that is present but unparseable is an error.
func dateRange(r *http.Request) (*time.Time, *time.Time, error) {
	parse := func(name, s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t, nil
		}
		if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
			return &t, nil
		}
		return nil, fmt.Errorf("invalid %s date: %q", name, s)
	}

	from, err := parse("from", r.URL.Query().Get("from"))
	if err != nil {
		return nil, nil, err
	}
	to, err := parse("to", r.URL.Query().Get("to"))
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

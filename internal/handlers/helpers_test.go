package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange_ParsesBothFormats(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/bookings?from=2026-03-01&to=2026-03-10T17:00:00Z", nil)

	from, to, err := dateRange(r)
	require.NoError(t, err)
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), *from)
	assert.Equal(t, time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC), *to)
}

func TestDateRange_MissingParamsAreNil(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/bookings", nil)

	from, to, err := dateRange(r)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestDateRange_RejectsGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/bookings?from=yesterday", nil)

	_, _, err := dateRange(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")
}

package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tmpl, ok := Lookup(TmplPackageArrival)
	require.True(t, ok)
	assert.Equal(t, TmplPackageArrival, tmpl.Key)
	assert.NotEmpty(t, tmpl.SMS)
	assert.NotEmpty(t, tmpl.EmailSubject)

	_, ok = Lookup("no_such_template")
	assert.False(t, ok)
}

func TestKeys_CoversCatalog(t *testing.T) {
	templates := Keys()
	assert.Len(t, templates, 14)

	seen := make(map[string]bool)
	for _, tmpl := range templates {
		seen[tmpl.Key] = true
	}
	assert.True(t, seen[TmplPackageArrival])
	assert.True(t, seen[TmplGeneralAnnouncement])
}

func TestRender_SubstitutesTokens(t *testing.T) {
	tmpl, _ := Lookup(TmplPackageArrival)
	out := Render(tmpl.SMS, map[string]string{
		"name":     "Maria",
		"courier":  "UPS",
		"unit":     "4B",
		"tracking": "1Z999",
	})
	assert.Contains(t, out, "Maria")
	assert.Contains(t, out, "UPS")
	assert.Contains(t, out, "Unit 4B")
	assert.NotContains(t, out, "{courier}")
	assert.NotContains(t, out, "{unit}")
}

func TestRender_LeavesUnresolvedTokensLiteral(t *testing.T) {
	out := Render("Hi {name}, code {code}", map[string]string{"name": "Maria", "code": ""})
	assert.Equal(t, "Hi Maria, code {code}", out)
}

func TestTokenValues_Package(t *testing.T) {
	delivered := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC).Format(time.RFC3339Nano)
	values := TokenValues(map[string]interface{}{
		"residentName":   "Maria Lopez",
		"unitNumber":     "4B",
		"courier":        "UPS",
		"trackingNumber": "1Z999",
		"deliveredAt":    delivered,
	})
	assert.Equal(t, "Maria Lopez", values["name"])
	assert.Equal(t, "4B", values["unit"])
	assert.Equal(t, "UPS", values["courier"])
	assert.Equal(t, "1Z999", values["tracking"])
	assert.NotEmpty(t, values["delivered_time"])
}

func TestTokenValues_ParkingRequest(t *testing.T) {
	requested := time.Date(2026, 3, 12, 12, 0, 0, 0, time.Local).Format(time.RFC3339Nano)
	values := TokenValues(map[string]interface{}{
		"requesterName": "Dan Wu",
		"requestedDate": requested,
		"parkingSpot":   "V-3",
		"accessCode":    "VIS7Q2M",
		"visiting": map[string]interface{}{
			"unitNumber": "12A",
		},
	})
	assert.Equal(t, "Dan Wu", values["name"])
	assert.Equal(t, "12A", values["unit"])
	assert.Equal(t, "V-3", values["spot"])
	assert.Equal(t, "VIS7Q2M", values["code"])
	assert.Contains(t, values["date"], "Mar 12")
}

func TestTokenValues_AbsentFieldsEmpty(t *testing.T) {
	values := TokenValues(map[string]interface{}{})
	assert.Empty(t, values["name"])
	assert.Empty(t, values["unit"])
	assert.Empty(t, values["date"])
}

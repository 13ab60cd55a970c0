package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"concierge-backend/internal/models"
	"concierge-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVisitorService() *VisitorService {
	s := NewVisitorService(store.NewMemoryStore())
	s.now = func() time.Time { return testNow }
	return s
}

func seedVisitor(t *testing.T, s *VisitorService) *models.Visitor {
	t.Helper()
	visitor, err := s.CreateVisitor(context.Background(), "company-1", &models.CreateVisitorRequest{
		Name:            "Dan Wu",
		Phone:           "+15550000002",
		ExpectedArrival: testNow.Add(time.Hour),
		Visiting:        models.VisitingInfo{ResidentName: "Maria Lopez", UnitNumber: "4B"},
	})
	require.NoError(t, err)
	return visitor
}

func TestCreateVisitor_StartsPreRegistered(t *testing.T) {
	s := newVisitorService()
	visitor := seedVisitor(t, s)
	assert.Equal(t, models.VisitorPreRegistered, visitor.Status)
	assert.Nil(t, visitor.ActualArrival)
}

func TestCreateVisitor_Validation(t *testing.T) {
	s := newVisitorService()

	_, err := s.CreateVisitor(context.Background(), "company-1", &models.CreateVisitorRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "expectedArrival")
}

func TestCheckIn(t *testing.T) {
	s := newVisitorService()
	visitor := seedVisitor(t, s)

	checked, err := s.CheckIn(context.Background(), "company-1", visitor.ID, "staff@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.VisitorCheckedIn, checked.Status)
	assert.Equal(t, "staff@example.com", checked.CheckedInBy)
	require.NotNil(t, checked.ActualArrival)
}

func TestCheckIn_DefaultsStaff(t *testing.T) {
	s := newVisitorService()
	visitor := seedVisitor(t, s)

	checked, err := s.CheckIn(context.Background(), "company-1", visitor.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", checked.CheckedInBy)
}

func TestCheckIn_RejectsWrongStatus(t *testing.T) {
	s := newVisitorService()
	visitor := seedVisitor(t, s)
	ctx := context.Background()

	_, err := s.CheckIn(ctx, "company-1", visitor.ID, "staff@example.com")
	require.NoError(t, err)

	_, err = s.CheckIn(ctx, "company-1", visitor.ID, "staff@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot check in")
}

func TestCheckOut_RequiresCheckedIn(t *testing.T) {
	s := newVisitorService()
	visitor := seedVisitor(t, s)
	ctx := context.Background()

	_, err := s.CheckOut(ctx, "company-1", visitor.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot check out")

	_, err = s.CheckIn(ctx, "company-1", visitor.ID, "staff@example.com")
	require.NoError(t, err)

	out, err := s.CheckOut(ctx, "company-1", visitor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitorCheckedOut, out.Status)
	require.NotNil(t, out.ActualDeparture)
}

func TestMarkNoShow(t *testing.T) {
	s := newVisitorService()
	visitor := seedVisitor(t, s)
	ctx := context.Background()

	marked, err := s.MarkNoShow(ctx, "company-1", visitor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitorNoShow, marked.Status)

	// A no-show cannot be checked in afterwards.
	_, err = s.CheckIn(ctx, "company-1", visitor.ID, "staff@example.com")
	require.Error(t, err)
}

func seedParkingRequest(t *testing.T, s *VisitorService) *models.ParkingRequest {
	t.Helper()
	request, err := s.CreateParkingRequest(context.Background(), "company-1", &models.CreateParkingRequestRequest{
		RequesterName:  "Dan Wu",
		RequesterPhone: "+15550000002",
		RequestedDate:  testNow.Add(24 * time.Hour),
		Vehicle:        models.VehicleInfo{LicensePlate: "ABC-123"},
	})
	require.NoError(t, err)
	return request
}

func TestCreateParkingRequest_Validation(t *testing.T) {
	s := newVisitorService()

	_, err := s.CreateParkingRequest(context.Background(), "company-1", &models.CreateParkingRequestRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "requesterName")
	assert.Contains(t, verr.Fields, "requestedDate")
	assert.Contains(t, verr.Fields, "licensePlate")
}

func TestApproveParkingRequest_AssignsSpotAndCode(t *testing.T) {
	s := newVisitorService()
	request := seedParkingRequest(t, s)

	approved, err := s.ApproveParkingRequest(context.Background(), "company-1", request.ID, "staff@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.ParkingApproved, approved.Status)
	assert.Equal(t, "staff@example.com", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	assert.Regexp(t, regexp.MustCompile(`^V-([1-9]|10)$`), approved.ParkingSpot)
	assert.Regexp(t, regexp.MustCompile(`^VIS[A-HJ-NP-Z2-9]{4}$`), approved.AccessCode)
}

func TestApproveParkingRequest_OnlyPending(t *testing.T) {
	s := newVisitorService()
	request := seedParkingRequest(t, s)
	ctx := context.Background()

	_, err := s.ApproveParkingRequest(ctx, "company-1", request.ID, "staff@example.com")
	require.NoError(t, err)

	_, err = s.ApproveParkingRequest(ctx, "company-1", request.ID, "staff@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot approve")
}

func TestDenyParkingRequest(t *testing.T) {
	s := newVisitorService()
	request := seedParkingRequest(t, s)

	denied, err := s.DenyParkingRequest(context.Background(), "company-1", request.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.ParkingDenied, denied.Status)
	assert.Equal(t, "Front Desk", denied.ApprovedBy)
	assert.Empty(t, denied.ParkingSpot)
	assert.Empty(t, denied.AccessCode)
}

func TestPendingParkingRequests(t *testing.T) {
	s := newVisitorService()
	ctx := context.Background()

	first := seedParkingRequest(t, s)
	second := seedParkingRequest(t, s)

	_, err := s.ApproveParkingRequest(ctx, "company-1", first.ID, "staff@example.com")
	require.NoError(t, err)

	pending, err := s.PendingParkingRequests(ctx, "company-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

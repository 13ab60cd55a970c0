package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"concierge-backend/internal/models"
	"concierge-backend/internal/store"
)

type VisitorService struct {
	Store store.Store
	now   func() time.Time
}

func NewVisitorService(st store.Store) *VisitorService {
	return &VisitorService{Store: st, now: time.Now}
}

func (s *VisitorService) CreateVisitor(ctx context.Context, companyID string, req *models.CreateVisitorRequest) (*models.Visitor, error) {
	fe := fieldErrors{}
	if req.Name == "" {
		fe["name"] = "visitor name is required"
	}
	if req.ExpectedArrival.IsZero() {
		fe["expectedArrival"] = "expected arrival is required"
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	visitor := &models.Visitor{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		Visiting:          req.Visiting,
		Purpose:           req.Purpose,
		ExpectedArrival:   req.ExpectedArrival,
		ExpectedDeparture: req.ExpectedDeparture,
		Vehicle:           req.Vehicle,
		Status:            models.VisitorPreRegistered,
	}

	id, err := s.Store.Create(ctx, store.Visitors, companyID, visitor)
	if err != nil {
		return nil, err
	}
	return s.GetVisitor(ctx, companyID, id)
}

func (s *VisitorService) GetVisitor(ctx context.Context, companyID, id string) (*models.Visitor, error) {
	var visitor models.Visitor
	if err := s.Store.Get(ctx, store.Visitors, companyID, id, &visitor); err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (s *VisitorService) ListVisitors(ctx context.Context, companyID string, from, to *time.Time) ([]models.Visitor, error) {
	q := store.Query{OrderBy: "expectedArrival"}
	if from != nil {
		q = q.AndWhere("expectedArrival", store.OpGte, *from)
	}
	if to != nil {
		q = q.AndWhere("expectedArrival", store.OpLte, *to)
	}

	var visitors []models.Visitor
	if err := s.Store.Query(ctx, store.Visitors, companyID, q, &visitors); err != nil {
		return nil, err
	}
	return visitors, nil
}

func (s *VisitorService) UpdateVisitor(ctx context.Context, companyID, id string, patch map[string]interface{}) (*models.Visitor, error) {
	if err := s.Store.Update(ctx, store.Visitors, companyID, id, patch); err != nil {
		return nil, err
	}
	return s.GetVisitor(ctx, companyID, id)
}

func (s *VisitorService) DeleteVisitor(ctx context.Context, companyID, id string) error {
	return s.Store.Delete(ctx, store.Visitors, companyID, id)
}

// CheckIn moves a pre-registered visitor to checked_in and stamps the
// actual arrival and the staff member who processed it.
func (s *VisitorService) CheckIn(ctx context.Context, companyID, id, staffEmail string) (*models.Visitor, error) {
	visitor, err := s.GetVisitor(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if visitor.Status != models.VisitorPreRegistered {
		return nil, fmt.Errorf("cannot check in visitor with status %q", visitor.Status)
	}

	if staffEmail == "" {
		staffEmail = "Front Desk"
	}
	patch := map[string]interface{}{
		"status":        models.VisitorCheckedIn,
		"actualArrival": s.now().UTC(),
		"checkedInBy":   staffEmail,
	}
	return s.UpdateVisitor(ctx, companyID, id, patch)
}

func (s *VisitorService) CheckOut(ctx context.Context, companyID, id string) (*models.Visitor, error) {
	visitor, err := s.GetVisitor(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if visitor.Status != models.VisitorCheckedIn {
		return nil, fmt.Errorf("cannot check out visitor with status %q", visitor.Status)
	}

	patch := map[string]interface{}{
		"status":          models.VisitorCheckedOut,
		"actualDeparture": s.now().UTC(),
	}
	return s.UpdateVisitor(ctx, companyID, id, patch)
}

func (s *VisitorService) MarkNoShow(ctx context.Context, companyID, id string) (*models.Visitor, error) {
	visitor, err := s.GetVisitor(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if visitor.Status != models.VisitorPreRegistered {
		return nil, fmt.Errorf("cannot mark no-show for visitor with status %q", visitor.Status)
	}
	return s.UpdateVisitor(ctx, companyID, id, map[string]interface{}{"status": models.VisitorNoShow})
}

// TodaysCheckedInVisitors lists visitors who physically arrived today.
func (s *VisitorService) TodaysCheckedInVisitors(ctx context.Context, companyID string) ([]models.Visitor, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	q := store.Where("status", store.OpEq, models.VisitorCheckedIn).
		AndWhere("actualArrival", store.OpGte, dayStart).
		AndWhere("actualArrival", store.OpLt, dayEnd)

	var visitors []models.Visitor
	if err := s.Store.Query(ctx, store.Visitors, companyID, q, &visitors); err != nil {
		return nil, err
	}
	return visitors, nil
}

// Parking requests

func (s *VisitorService) CreateParkingRequest(ctx context.Context, companyID string, req *models.CreateParkingRequestRequest) (*models.ParkingRequest, error) {
	fe := fieldErrors{}
	if req.RequesterName == "" {
		fe["requesterName"] = "requester name is required"
	}
	if req.RequestedDate.IsZero() {
		fe["requestedDate"] = "requested date is required"
	}
	if req.Vehicle.LicensePlate == "" {
		fe["licensePlate"] = "license plate is required"
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	request := &models.ParkingRequest{
		RequesterName:  req.RequesterName,
		RequesterPhone: req.RequesterPhone,
		RequesterEmail: req.RequesterEmail,
		Visiting:       req.Visiting,
		Vehicle:        req.Vehicle,
		RequestedDate:  req.RequestedDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Purpose:        req.Purpose,
		Status:         models.ParkingPending,
	}

	id, err := s.Store.Create(ctx, store.ParkingRequests, companyID, request)
	if err != nil {
		return nil, err
	}
	return s.GetParkingRequest(ctx, companyID, id)
}

func (s *VisitorService) GetParkingRequest(ctx context.Context, companyID, id string) (*models.ParkingRequest, error) {
	var request models.ParkingRequest
	if err := s.Store.Get(ctx, store.ParkingRequests, companyID, id, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *VisitorService) ListParkingRequests(ctx context.Context, companyID string, from, to *time.Time) ([]models.ParkingRequest, error) {
	q := store.Query{OrderBy: "requestedDate"}
	if from != nil {
		q = q.AndWhere("requestedDate", store.OpGte, *from)
	}
	if to != nil {
		q = q.AndWhere("requestedDate", store.OpLte, *to)
	}

	var requests []models.ParkingRequest
	if err := s.Store.Query(ctx, store.ParkingRequests, companyID, q, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *VisitorService) PendingParkingRequests(ctx context.Context, companyID string) ([]models.ParkingRequest, error) {
	var requests []models.ParkingRequest
	q := store.Where("status", store.OpEq, models.ParkingPending)
	if err := s.Store.Query(ctx, store.ParkingRequests, companyID, q, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *VisitorService) UpdateParkingRequest(ctx context.Context, companyID, id string, patch map[string]interface{}) (*models.ParkingRequest, error) {
	if err := s.Store.Update(ctx, store.ParkingRequests, companyID, id, patch); err != nil {
		return nil, err
	}
	return s.GetParkingRequest(ctx, companyID, id)
}

func (s *VisitorService) DeleteParkingRequest(ctx context.Context, companyID, id string) error {
	return s.Store.Delete(ctx, store.ParkingRequests, companyID, id)
}

// ApproveParkingRequest assigns a visitor spot and access code. Spot
// assignment is a plain draw from the visitor spot pool; there is no
// occupancy tracking at this scale.
func (s *VisitorService) ApproveParkingRequest(ctx context.Context, companyID, id, staffEmail string) (*models.ParkingRequest, error) {
	request, err := s.GetParkingRequest(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.ParkingPending {
		return nil, fmt.Errorf("cannot approve parking request with status %q", request.Status)
	}

	if staffEmail == "" {
		staffEmail = "Front Desk"
	}
	patch := map[string]interface{}{
		"status":      models.ParkingApproved,
		"approvedBy":  staffEmail,
		"approvedAt":  s.now().UTC(),
		"parkingSpot": assignParkingSpot(),
		"accessCode":  generateAccessCode(),
	}
	return s.UpdateParkingRequest(ctx, companyID, id, patch)
}

func (s *VisitorService) DenyParkingRequest(ctx context.Context, companyID, id, staffEmail string) (*models.ParkingRequest, error) {
	request, err := s.GetParkingRequest(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.ParkingPending {
		return nil, fmt.Errorf("cannot deny parking request with status %q", request.Status)
	}

	if staffEmail == "" {
		staffEmail = "Front Desk"
	}
	patch := map[string]interface{}{
		"status":     models.ParkingDenied,
		"approvedBy": staffEmail,
		"approvedAt": s.now().UTC(),
	}
	return s.UpdateParkingRequest(ctx, companyID, id, patch)
}

var visitorSpots = []string{"V-1", "V-2", "V-3", "V-4", "V-5", "V-6", "V-7", "V-8", "V-9", "V-10"}

func assignParkingSpot() string {
	return visitorSpots[rand.Intn(len(visitorSpots))]
}

const accessCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateAccessCode() string {
	code := make([]byte, 4)
	for i := range code {
		code[i] = accessCodeChars[rand.Intn(len(accessCodeChars))]
	}
	return "VIS" + string(code)
}

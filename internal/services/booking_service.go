package services

import (
	"context"
	"time"

	"concierge-backend/internal/models"
	"concierge-backend/internal/store"
)

type BookingService struct {
	Store store.Store

	// now is swappable for tests of the past-booking check.
	now func() time.Time
}

func NewBookingService(st store.Store) *BookingService {
	return &BookingService{Store: st, now: time.Now}
}

func (s *BookingService) CreateBooking(ctx context.Context, companyID string, req *models.CreateBookingRequest) (*models.Booking, error) {
	fe := fieldErrors{}
	if req.Title == "" {
		fe["title"] = "title is required"
	}
	if req.AmenityID == "" {
		fe["amenityId"] = "please select an amenity"
	}
	if req.StartDate.IsZero() {
		fe["startDate"] = "start date is required"
	}
	if req.EndDate.IsZero() {
		fe["endDate"] = "end date is required"
	}
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && !req.EndDate.After(req.StartDate) {
		fe["endDate"] = "end time must be after start time"
	}
	if !req.StartDate.IsZero() && req.StartDate.Before(s.now()) {
		fe["startDate"] = "booking cannot be in the past"
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.BookingConfirmed
	}

	booking := &models.Booking{
		Title:        req.Title,
		AmenityID:    req.AmenityID,
		AmenityName:  req.AmenityName,
		ResidentID:   req.ResidentID,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       status,
		Notes:        req.Notes,
	}

	id, err := s.Store.Create(ctx, store.Bookings, companyID, booking)
	if err != nil {
		return nil, err
	}
	return s.GetBooking(ctx, companyID, id)
}

func (s *BookingService) GetBooking(ctx context.Context, companyID, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.Store.Get(ctx, store.Bookings, companyID, id, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns the company's bookings, optionally narrowed to a
// date window on the booking start.
func (s *BookingService) ListBookings(ctx context.Context, companyID string, from, to *time.Time) ([]models.Booking, error) {
	q := store.Query{OrderBy: "startDate"}
	if from != nil {
		q = q.AndWhere("startDate", store.OpGte, *from)
	}
	if to != nil {
		q = q.AndWhere("startDate", store.OpLte, *to)
	}

	var bookings []models.Booking
	if err := s.Store.Query(ctx, store.Bookings, companyID, q, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, companyID, id string, req *models.CreateBookingRequest) (*models.Booking, error) {
	fe := fieldErrors{}
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && !req.EndDate.After(req.StartDate) {
		fe["endDate"] = "end time must be after start time"
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	patch := map[string]interface{}{
		"title":        req.Title,
		"amenityId":    req.AmenityID,
		"amenityName":  req.AmenityName,
		"contactName":  req.ContactName,
		"contactPhone": req.ContactPhone,
		"contactEmail": req.ContactEmail,
		"startDate":    req.StartDate,
		"endDate":      req.EndDate,
		"notes":        req.Notes,
	}
	if req.Status != "" {
		patch["status"] = req.Status
	}
	if err := s.Store.Update(ctx, store.Bookings, companyID, id, patch); err != nil {
		return nil, err
	}
	return s.GetBooking(ctx, companyID, id)
}

// CancelBooking soft-retires a booking; the record stays for the calendar
// history.
func (s *BookingService) CancelBooking(ctx context.Context, companyID, id string) (*models.Booking, error) {
	if err := s.Store.Update(ctx, store.Bookings, companyID, id, map[string]interface{}{"status": models.BookingCancelled}); err != nil {
		return nil, err
	}
	return s.GetBooking(ctx, companyID, id)
}

func (s *BookingService) DeleteBooking(ctx context.Context, companyID, id string) error {
	return s.Store.Delete(ctx, store.Bookings, companyID, id)
}

package models

import "time"

// Booking statuses
const (
	BookingConfirmed = "confirmed"
	BookingPending   = "pending"
	BookingCancelled = "cancelled"
)

// Booking reserves an amenity for a time window. Contact fields are a
// snapshot captured at creation, not a live link to the resident record.
type Booking struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"companyId"`
	Title        string    `json:"title"`
	AmenityID    string    `json:"amenityId"`
	AmenityName  string    `json:"amenityName,omitempty"`
	ResidentID   string    `json:"residentId,omitempty"`
	ContactName  string    `json:"contactName,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateBookingRequest struct {
	Title        string    `json:"title"`
	AmenityID    string    `json:"amenityId"`
	AmenityName  string    `json:"amenityName"`
	ResidentID   string    `json:"residentId"`
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone"`
	ContactEmail string    `json:"contactEmail"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
}

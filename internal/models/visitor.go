package models

import "time"

// Visitor statuses: pre_registered moves to checked_in then checked_out,
// or straight to no_show.
const (
	VisitorPreRegistered = "pre_registered"
	VisitorCheckedIn     = "checked_in"
	VisitorCheckedOut    = "checked_out"
	VisitorNoShow        = "no_show"
)

// Parking request statuses
const (
	ParkingPending  = "pending"
	ParkingApproved = "approved"
	ParkingDenied   = "denied"
)

// VisitingInfo is a denormalized snapshot of the resident being visited.
type VisitingInfo struct {
	ResidentID   string `json:"residentId,omitempty"`
	ResidentName string `json:"residentName,omitempty"`
	UnitNumber   string `json:"unitNumber,omitempty"`
}

type VehicleInfo struct {
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Color        string `json:"color,omitempty"`
	LicensePlate string `json:"licensePlate,omitempty"`
}

type Visitor struct {
	ID                 string       `json:"id"`
	CompanyID          string       `json:"companyId"`
	Name               string       `json:"name"`
	Phone              string       `json:"phone,omitempty"`
	Email              string       `json:"email,omitempty"`
	Visiting           VisitingInfo `json:"visiting"`
	Purpose            string       `json:"purpose,omitempty"`
	ExpectedArrival    time.Time    `json:"expectedArrival"`
	ExpectedDeparture  *time.Time   `json:"expectedDeparture,omitempty"`
	ActualArrival      *time.Time   `json:"actualArrival,omitempty"`
	ActualDeparture    *time.Time   `json:"actualDeparture,omitempty"`
	Vehicle            *VehicleInfo `json:"vehicle,omitempty"`
	ParkingSpot        string       `json:"parkingSpot,omitempty"`
	AccessCode         string       `json:"accessCode,omitempty"`
	Status             string       `json:"status"`
	CheckedInBy        string       `json:"checkedInBy,omitempty"`
	NotificationSent   bool         `json:"notificationSent"`
	LastNotificationAt *time.Time   `json:"lastNotificationAt,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

type CreateVisitorRequest struct {
	Name              string       `json:"name"`
	Phone             string       `json:"phone"`
	Email             string       `json:"email"`
	Visiting          VisitingInfo `json:"visiting"`
	Purpose           string       `json:"purpose"`
	ExpectedArrival   time.Time    `json:"expectedArrival"`
	ExpectedDeparture *time.Time   `json:"expectedDeparture"`
	Vehicle           *VehicleInfo `json:"vehicle"`
}

// ParkingRequest asks for a visitor parking spot for a date and time
// window. Approval assigns a spot and access code.
type ParkingRequest struct {
	ID             string       `json:"id"`
	CompanyID      string       `json:"companyId"`
	RequesterName  string       `json:"requesterName"`
	RequesterPhone string       `json:"requesterPhone,omitempty"`
	RequesterEmail string       `json:"requesterEmail,omitempty"`
	Visiting       VisitingInfo `json:"visiting"`
	Vehicle        VehicleInfo  `json:"vehicle"`
	RequestedDate  time.Time    `json:"requestedDate"`
	StartTime      string       `json:"startTime,omitempty"`
	EndTime        string       `json:"endTime,omitempty"`
	Purpose        string       `json:"purpose,omitempty"`
	Status         string       `json:"status"`
	ParkingSpot    string       `json:"parkingSpot,omitempty"`
	AccessCode     string       `json:"accessCode,omitempty"`
	ApprovedBy     string       `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time   `json:"approvedAt,omitempty"`

	NotificationSent    bool       `json:"notificationSent"`
	NotificationMethod  string     `json:"notificationMethod,omitempty"`
	NotificationSentAt  *time.Time `json:"notificationSentAt,omitempty"`
	NotificationContent string     `json:"notificationContent,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateParkingRequestRequest struct {
	RequesterName  string       `json:"requesterName"`
	RequesterPhone string       `json:"requesterPhone"`
	RequesterEmail string       `json:"requesterEmail"`
	Visiting       VisitingInfo `json:"visiting"`
	Vehicle        VehicleInfo  `json:"vehicle"`
	RequestedDate  time.Time    `json:"requestedDate"`
	StartTime      string       `json:"startTime"`
	EndTime        string       `json:"endTime"`
	Purpose        string       `json:"purpose"`
}

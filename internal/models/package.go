package models

import "time"

// Package statuses. pending moves to picked_up for the normal flow, or to
// one of the exception states; picked_up is terminal.
const (
	PackagePending  = "pending"
	PackagePickedUp = "picked_up"
	PackageReturned = "returned"
	PackageDamaged  = "damaged"
	PackageLost     = "lost"
)

// Package is a delivery logged at the front desk. Resident fields are a
// snapshot from the resident record at creation time.
type Package struct {
	ID             string     `json:"id"`
	CompanyID      string     `json:"companyId"`
	ResidentID     string     `json:"residentId,omitempty"`
	ResidentName   string     `json:"residentName,omitempty"`
	UnitNumber     string     `json:"unitNumber"`
	RecipientEmail string     `json:"recipientEmail,omitempty"`
	RecipientPhone string     `json:"recipientPhone,omitempty"`
	Courier        string     `json:"courier"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Description    string     `json:"description,omitempty"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
	Status         string     `json:"status"`

	// Pickup metadata, set when status moves to picked_up.
	PickupBy    string     `json:"pickupBy,omitempty"`
	PickedUpAt  *time.Time `json:"pickedUpAt,omitempty"`
	PickupNotes string     `json:"pickupNotes,omitempty"`

	// Notification audit fields, set by the dispatcher on success. These
	// drive the "Notified" badge; they are not a delivery guarantee.
	NotificationSent    bool       `json:"notificationSent"`
	NotificationMethod  string     `json:"notificationMethod,omitempty"`
	NotificationSentAt  *time.Time `json:"notificationSentAt,omitempty"`
	NotificationContent string     `json:"notificationContent,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreatePackageRequest struct {
	ResidentID     string     `json:"residentId"`
	ResidentName   string     `json:"residentName"`
	UnitNumber     string     `json:"unitNumber"`
	RecipientEmail string     `json:"recipientEmail"`
	RecipientPhone string     `json:"recipientPhone"`
	Courier        string     `json:"courier"`
	TrackingNumber string     `json:"trackingNumber"`
	Description    string     `json:"description"`
	DeliveredAt    *time.Time `json:"deliveredAt"`
}

type PickupRequest struct {
	PickupBy string `json:"pickupBy"`
	Notes    string `json:"notes"`
}

type BulkPickupRequest struct {
	PackageIDs []string `json:"packageIds"`
	PickupBy   string   `json:"pickupBy"`
	Notes      string   `json:"notes"`
}

type BulkNotifyRequest struct {
	PackageIDs  []string `json:"packageIds"`
	TemplateKey string   `json:"templateKey"`
	Channel     string   `json:"channel"`
}

// CourierCount is one row of the top-couriers ranking.
type CourierCount struct {
	Courier string `json:"courier"`
	Count   int    `json:"count"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type UnitCount struct {
	Unit  string `json:"unit"`
	Count int    `json:"count"`
}

type PackageStats struct {
	Total         int            `json:"total"`
	Pending       int            `json:"pending"`
	PickedUp      int            `json:"pickedUp"`
	Notified      int            `json:"notified"`
	AvgPickupTime int            `json:"avgPickupTime"` // hours
	TopCouriers   []CourierCount `json:"topCouriers"`
}

type PackageReport struct {
	PeriodStart          time.Time    `json:"periodStart"`
	PeriodEnd            time.Time    `json:"periodEnd"`
	Summary              PackageStats `json:"summary"`
	Packages             []Package    `json:"packages"`
	BusiestDay           DayCount     `json:"busiestDay"`
	MostActiveUnit       UnitCount    `json:"mostActiveUnit"`
	AvgPackagesPerDay    int          `json:"averagePackagesPerDay"`
}

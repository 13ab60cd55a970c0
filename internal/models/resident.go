package models

import "time"

// Resident is a unit occupant. The phone number is the contact key used
// to associate inbound messages and calls; it is matched as an exact
// string, no normalization.
type Resident struct {
	ID               string    `json:"id"`
	CompanyID        string    `json:"companyId"`
	Name             string    `json:"name"`
	UnitNumber       string    `json:"unitNumber"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	EmergencyContact string    `json:"emergencyContact,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ContactMatch is the resolver result for a phone number: a snapshot of
// the matching resident, not a live reference.
type ContactMatch struct {
	ResidentID   string `json:"residentId"`
	ResidentName string `json:"residentName"`
	UnitNumber   string `json:"unitNumber"`
}

type CreateResidentRequest struct {
	Name             string `json:"name"`
	UnitNumber       string `json:"unitNumber"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergencyContact"`
	Notes            string `json:"notes"`
}

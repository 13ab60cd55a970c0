package models

import "time"

// Company is the tenant root. Every other document is scoped to a company
// through its companyId field.
type Company struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	StaffEmails []string        `json:"staffEmails"`
	Amenities   []Amenity       `json:"amenities,omitempty"`
	Settings    CompanySettings `json:"settings"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Amenity is a bookable facility (gym, party room, guest suite).
type Amenity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type CompanySettings struct {
	BusinessHours BusinessHours   `json:"businessHours"`
	SMS           ChannelSettings `json:"smsSettings"`
	Email         ChannelSettings `json:"emailSettings"`
	Notifications map[string]bool `json:"notifications,omitempty"`
}

type BusinessHours struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone,omitempty"`
}

// ChannelSettings holds per-company credentials for a notification
// channel. Only the toggle is consulted by the dispatcher; credentials are
// displayed in Settings and used when provisioning the channel.
type ChannelSettings struct {
	Enabled     bool   `json:"enabled"`
	AccountSID  string `json:"accountSid,omitempty"`
	AuthToken   string `json:"authToken,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	APIKey      string `json:"apiKey,omitempty"`
	FromAddress string `json:"fromAddress,omitempty"`
}

type CreateCompanyRequest struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	StaffEmails []string `json:"staffEmails"`
}

type UpdateCompanySettingsRequest struct {
	BusinessHours BusinessHours   `json:"businessHours"`
	SMS           ChannelSettings `json:"smsSettings"`
	Email         ChannelSettings `json:"emailSettings"`
	Notifications map[string]bool `json:"notifications"`
}

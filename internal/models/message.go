package models

import "time"

// Message directions
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// Call statuses
const (
	CallAnswered = "answered"
	CallMissed   = "missed"
)

// Message is one SMS in a conversation thread keyed by phone number.
// Resident fields are filled by the contact resolver when the number
// matches a resident; they stay empty for non-resident contacts, which is
// a valid state, not an error.
type Message struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"companyId"`
	PhoneNumber  string     `json:"phoneNumber"`
	ResidentID   string     `json:"residentId,omitempty"`
	ResidentName string     `json:"residentName,omitempty"`
	UnitNumber   string     `json:"unitNumber,omitempty"`
	Content      string     `json:"content"`
	Direction    string     `json:"direction"`
	Status       string     `json:"status,omitempty"`
	IsRead       bool       `json:"isRead"`
	ReadAt       *time.Time `json:"readAt,omitempty"`
	ReplyTo      string     `json:"replyTo,omitempty"`
	ProviderSID  string     `json:"providerSid,omitempty"`
	SentBy       string     `json:"sentBy,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type SendMessageRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Content     string `json:"content"`
	ReplyTo     string `json:"replyTo"`
}

// CallLog records one inbound call. Summary, aiSummary and transcription
// arrive pre-populated from the upstream AI call provider; this system
// only stores them.
type CallLog struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"companyId"`
	PhoneNumber   string    `json:"phoneNumber"`
	ResidentID    string    `json:"residentId,omitempty"`
	ResidentName  string    `json:"residentName,omitempty"`
	UnitNumber    string    `json:"unitNumber,omitempty"`
	Status        string    `json:"status"`
	Duration      string    `json:"duration,omitempty"` // "m:ss" or seconds
	Summary       string    `json:"summary,omitempty"`
	AISummary     string    `json:"aiSummary,omitempty"`
	Transcription string    `json:"transcription,omitempty"`
	ProviderCallID string   `json:"providerCallId,omitempty"`
	IsRead        bool      `json:"isRead"`
	Timestamp     time.Time `json:"timestamp"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type MessageStats struct {
	Total           int `json:"total"`
	Incoming        int `json:"incoming"`
	Outgoing        int `json:"outgoing"`
	Unread          int `json:"unread"`
	AvgResponseTime int `json:"avgResponseTime"` // minutes
}

type CallStats struct {
	Total       int `json:"total"`
	Answered    int `json:"answered"`
	Missed      int `json:"missed"`
	AvgDuration int `json:"avgDuration"` // seconds
}

type SearchResults struct {
	Messages []Message `json:"messages"`
	Calls    []CallLog `json:"calls"`
	Total    int       `json:"total"`
}

// Package notify holds the outbound notification channels and the message
// template catalog. A channel is pure transport; composing messages and
// recording outcomes on entities is the dispatcher's job.
package notify

import "context"

// Channel names
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// SendResult is what a provider reports back for a sent message.
type SendResult struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// SMSChannel delivers a text message to a phone number. Implementations
// must honor ctx cancellation; a hung provider call should not block the
// caller past its deadline.
type SMSChannel interface {
	Send(ctx context.Context, toPhoneNumber, body string) (*SendResult, error)
}

// EmailChannel delivers an email.
type EmailChannel interface {
	Send(ctx context.Context, toAddress, subject, body string) (*SendResult, error)
}

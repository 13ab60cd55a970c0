package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MockSMSChannel prints messages to the console instead of sending them
// and records everything sent. Used in demo mode and in tests.
type MockSMSChannel struct {
	mu   sync.Mutex
	Sent []MockMessage
	Fail error // when set, Send returns this error
}

type MockMessage struct {
	To      string
	Subject string
	Body    string
}

func NewMockSMSChannel() *MockSMSChannel {
	return &MockSMSChannel{}
}

func (c *MockSMSChannel) Send(ctx context.Context, toPhoneNumber, body string) (*SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return nil, c.Fail
	}

	fmt.Printf("\n========== MOCK SMS ==========\n")
	fmt.Printf("To: %s\n", toPhoneNumber)
	fmt.Printf("Message: %s\n", body)
	fmt.Printf("==============================\n\n")

	c.Sent = append(c.Sent, MockMessage{To: toPhoneNumber, Body: body})
	return &SendResult{SID: fmt.Sprintf("MOCK-%d", len(c.Sent)), Status: "sent"}, nil
}

// Messages returns a copy of everything sent so far.
func (c *MockSMSChannel) Messages() []MockMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MockMessage, len(c.Sent))
	copy(out, c.Sent)
	return out
}

// MockEmailChannel is the email counterpart of MockSMSChannel.
type MockEmailChannel struct {
	mu   sync.Mutex
	Sent []MockMessage
	Fail error
}

func NewMockEmailChannel() *MockEmailChannel {
	return &MockEmailChannel{}
}

func (c *MockEmailChannel) Send(ctx context.Context, toAddress, subject, body string) (*SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return nil, c.Fail
	}

	fmt.Printf("\n========== MOCK EMAIL ==========\n")
	fmt.Printf("To: %s\nSubject: %s\n", toAddress, subject)
	fmt.Printf("Body: %s\n", body)
	fmt.Printf("================================\n\n")

	c.Sent = append(c.Sent, MockMessage{To: toAddress, Subject: subject, Body: body})
	return &SendResult{SID: fmt.Sprintf("MOCK-%d", len(c.Sent)), Status: "sent"}, nil
}

func (c *MockEmailChannel) Messages() []MockMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MockMessage, len(c.Sent))
	copy(out, c.Sent)
	return out
}

// ErrChannelDisabled is returned when a dispatch names a channel the
// server was not configured with.
var ErrChannelDisabled = errors.New("notification channel not configured")

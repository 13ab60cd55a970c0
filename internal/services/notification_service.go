package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"concierge-backend/internal/metrics"
	"concierge-backend/internal/notify"
	"concierge-backend/internal/store"
)

// DispatchResult reports the outcome of one notification send.
type DispatchResult struct {
	EntityID string `json:"entityId"`
	Channel  string `json:"channel"`
	Content  string `json:"content"`
	SID      string `json:"sid,omitempty"`
}

// NotificationService composes catalog templates against entity documents
// and sends them over the configured channels. A successful send is
// recorded on the entity; a failed send leaves the entity untouched.
// Dispatch is deliberately not idempotent: asking twice sends twice.
type NotificationService struct {
	Store   store.Store
	SMS     notify.SMSChannel
	Email   notify.EmailChannel
	Timeout time.Duration
	now     func() time.Time
}

func NewNotificationService(st store.Store, sms notify.SMSChannel, email notify.EmailChannel) *NotificationService {
	return &NotificationService{
		Store:   st,
		SMS:     sms,
		Email:   email,
		Timeout: 15 * time.Second,
		now:     time.Now,
	}
}

// Dispatch sends the template over one channel for a single entity owned
// by the company.
func (s *NotificationService) Dispatch(ctx context.Context, companyID, collection, entityID, templateKey, channel string) (*DispatchResult, error) {
	tmpl, ok := notify.Lookup(templateKey)
	if !ok {
		return nil, fmt.Errorf("template not found: %q", templateKey)
	}

	var doc map[string]interface{}
	if err := s.Store.Get(ctx, collection, companyID, entityID, &doc); err != nil {
		return nil, err
	}
	values := notify.TokenValues(doc)

	sendCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	var content, sid string
	var err error
	switch channel {
	case notify.ChannelSMS:
		content, sid, err = s.sendSMS(sendCtx, doc, tmpl, values)
	case notify.ChannelEmail:
		content, sid, err = s.sendEmail(sendCtx, doc, tmpl, values)
	default:
		return nil, fmt.Errorf("unknown channel %q", channel)
	}
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(channel, "failed").Inc()
		return nil, err
	}
	metrics.NotificationsTotal.WithLabelValues(channel, "sent").Inc()

	patch := map[string]interface{}{
		"notificationSent":    true,
		"notificationMethod":  channel,
		"notificationSentAt":  s.now().UTC(),
		"notificationContent": content,
	}
	if err := s.Store.Update(ctx, collection, companyID, entityID, patch); err != nil {
		// The message already went out; surface the bookkeeping failure
		// without pretending the send failed.
		log.Printf("[Notify] sent but failed to record on %s/%s: %v", collection, entityID, err)
	}

	return &DispatchResult{EntityID: entityID, Channel: channel, Content: content, SID: sid}, nil
}

func (s *NotificationService) sendSMS(ctx context.Context, doc map[string]interface{}, tmpl notify.Template, values map[string]string) (string, string, error) {
	if s.SMS == nil {
		return "", "", fmt.Errorf("sms channel is not configured")
	}
	phone := docString(doc, "phone", "phoneNumber", "recipientPhone", "requesterPhone", "residentPhone")
	if phone == "" {
		return "", "", fmt.Errorf("entity has no phone number")
	}

	content := notify.Render(tmpl.SMS, values)
	result, err := s.SMS.Send(ctx, phone, content)
	if err != nil {
		return "", "", fmt.Errorf("send sms: %w", err)
	}
	return content, result.SID, nil
}

func (s *NotificationService) sendEmail(ctx context.Context, doc map[string]interface{}, tmpl notify.Template, values map[string]string) (string, string, error) {
	if s.Email == nil {
		return "", "", fmt.Errorf("email channel is not configured")
	}
	address := docString(doc, "email", "recipientEmail", "requesterEmail", "residentEmail")
	if address == "" {
		return "", "", fmt.Errorf("entity has no email address")
	}

	subject := notify.Render(tmpl.EmailSubject, values)
	body := notify.Render(tmpl.EmailBody, values)
	result, err := s.Email.Send(ctx, address, subject, body)
	if err != nil {
		return "", "", fmt.Errorf("send email: %w", err)
	}
	return body, result.SID, nil
}

// DispatchMany sends the same template to a batch of entities. Sends run
// concurrently; one recipient failing does not stop the others. Returns
// how many sends succeeded.
func (s *NotificationService) DispatchMany(ctx context.Context, companyID, collection string, entityIDs []string, templateKey, channel string) (int, error) {
	if _, ok := notify.Lookup(templateKey); !ok {
		return 0, fmt.Errorf("template not found: %q", templateKey)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, id := range entityIDs {
		wg.Add(1)
		go func(entityID string) {
			defer wg.Done()
			if _, err := s.Dispatch(ctx, companyID, collection, entityID, templateKey, channel); err != nil {
				log.Printf("[Notify] dispatch failed for %s/%s: %v", collection, entityID, err)
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return sent, nil
}

func docString(doc map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := doc[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"concierge-backend/internal/analytics"
	"concierge-backend/internal/models"
	"concierge-backend/internal/notify"
	"concierge-backend/internal/store"
)

// Broadcaster pushes an event to connected dashboard clients. The realtime
// hub implements it; a nil Broadcaster disables pushes without disabling
// message handling.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

type MessageService struct {
	Store     store.Store
	Residents *ResidentService
	SMS       notify.SMSChannel
	Realtime  Broadcaster
	now       func() time.Time
}

func NewMessageService(st store.Store, residents *ResidentService, sms notify.SMSChannel, rt Broadcaster) *MessageService {
	return &MessageService{Store: st, Residents: residents, SMS: sms, Realtime: rt, now: time.Now}
}

func (s *MessageService) GetMessage(ctx context.Context, companyID, id string) (*models.Message, error) {
	var msg models.Message
	if err := s.Store.Get(ctx, store.Messages, companyID, id, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns the company's messages newest first.
func (s *MessageService) ListMessages(ctx context.Context, companyID string, limit int) ([]models.Message, error) {
	q := store.Query{OrderBy: "timestamp", Desc: true, Limit: limit}
	var msgs []models.Message
	if err := s.Store.Query(ctx, store.Messages, companyID, q, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Conversation returns every message exchanged with one phone number,
// oldest first, which is the order a chat view renders.
func (s *MessageService) Conversation(ctx context.Context, companyID, phoneNumber string) ([]models.Message, error) {
	q := store.Where("phoneNumber", store.OpEq, phoneNumber)
	q.OrderBy = "timestamp"
	var msgs []models.Message
	if err := s.Store.Query(ctx, store.Messages, companyID, q, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// LogIncoming records an inbound SMS, resolving the sender against the
// resident directory. A number with no resident match is stored with empty
// resident fields.
func (s *MessageService) LogIncoming(ctx context.Context, companyID, phoneNumber, content, providerSID string) (*models.Message, error) {
	if phoneNumber == "" {
		return nil, fieldErrors{"phoneNumber": "phone number is required"}.err()
	}

	msg := &models.Message{
		PhoneNumber: phoneNumber,
		Content:     content,
		Direction:   models.DirectionIncoming,
		ProviderSID: providerSID,
		Timestamp:   s.now().UTC(),
	}

	match, err := s.Residents.AssociateContact(ctx, companyID, phoneNumber)
	if err != nil {
		log.Printf("[Messages] contact lookup failed for %s: %v", phoneNumber, err)
	} else if match != nil {
		msg.ResidentID = match.ResidentID
		msg.ResidentName = match.ResidentName
		msg.UnitNumber = match.UnitNumber
	}

	id, err := s.Store.Create(ctx, store.Messages, companyID, msg)
	if err != nil {
		return nil, err
	}
	saved, err := s.GetMessage(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if s.Realtime != nil {
		s.Realtime.Broadcast("message.received", saved)
	}
	return saved, nil
}

// SendMessage delivers an outbound SMS and records it in the thread. The
// send happens first; a provider failure leaves no message record behind.
func (s *MessageService) SendMessage(ctx context.Context, companyID, staffEmail string, req *models.SendMessageRequest) (*models.Message, error) {
	fe := fieldErrors{}
	if req.PhoneNumber == "" {
		fe["phoneNumber"] = "phone number is required"
	}
	if strings.TrimSpace(req.Content) == "" {
		fe["content"] = "message content is required"
	}
	if err := fe.err(); err != nil {
		return nil, err
	}
	if s.SMS == nil {
		return nil, fmt.Errorf("sms channel is not configured")
	}

	result, err := s.SMS.Send(ctx, req.PhoneNumber, req.Content)
	if err != nil {
		return nil, fmt.Errorf("send sms: %w", err)
	}

	msg := &models.Message{
		PhoneNumber: req.PhoneNumber,
		Content:     req.Content,
		Direction:   models.DirectionOutgoing,
		Status:      result.Status,
		IsRead:      true,
		ReplyTo:     req.ReplyTo,
		ProviderSID: result.SID,
		SentBy:      staffEmail,
		Timestamp:   s.now().UTC(),
	}

	match, err := s.Residents.AssociateContact(ctx, companyID, req.PhoneNumber)
	if err == nil && match != nil {
		msg.ResidentID = match.ResidentID
		msg.ResidentName = match.ResidentName
		msg.UnitNumber = match.UnitNumber
	}

	id, err := s.Store.Create(ctx, store.Messages, companyID, msg)
	if err != nil {
		return nil, err
	}
	saved, err := s.GetMessage(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if s.Realtime != nil {
		s.Realtime.Broadcast("message.sent", saved)
	}
	return saved, nil
}

func (s *MessageService) MarkRead(ctx context.Context, companyID, id string) (*models.Message, error) {
	patch := map[string]interface{}{
		"isRead": true,
		"readAt": s.now().UTC(),
	}
	if err := s.Store.Update(ctx, store.Messages, companyID, id, patch); err != nil {
		return nil, err
	}
	return s.GetMessage(ctx, companyID, id)
}

// MarkConversationRead marks every unread incoming message from one number
// as read and returns how many were updated.
func (s *MessageService) MarkConversationRead(ctx context.Context, companyID, phoneNumber string) (int, error) {
	q := store.Where("phoneNumber", store.OpEq, phoneNumber).
		AndWhere("direction", store.OpEq, models.DirectionIncoming).
		AndWhere("isRead", store.OpEq, false)

	var msgs []models.Message
	if err := s.Store.Query(ctx, store.Messages, companyID, q, &msgs); err != nil {
		return 0, err
	}

	updated := 0
	readAt := s.now().UTC()
	for _, msg := range msgs {
		patch := map[string]interface{}{"isRead": true, "readAt": readAt}
		if err := s.Store.Update(ctx, store.Messages, companyID, msg.ID, patch); err != nil {
			log.Printf("[Messages] mark read failed for %s: %v", msg.ID, err)
			continue
		}
		updated++
	}
	return updated, nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, companyID, id string) error {
	return s.Store.Delete(ctx, store.Messages, companyID, id)
}

func (s *MessageService) GetMessageStats(ctx context.Context, companyID string) (*models.MessageStats, error) {
	var msgs []models.Message
	if err := s.Store.Query(ctx, store.Messages, companyID, store.Query{OrderBy: "timestamp"}, &msgs); err != nil {
		return nil, err
	}
	stats := analytics.MessageStats(msgs)
	return &stats, nil
}

// Call logs

func (s *MessageService) GetCallLog(ctx context.Context, companyID, id string) (*models.CallLog, error) {
	var call models.CallLog
	if err := s.Store.Get(ctx, store.CallLogs, companyID, id, &call); err != nil {
		return nil, err
	}
	return &call, nil
}

func (s *MessageService) ListCallLogs(ctx context.Context, companyID string, limit int) ([]models.CallLog, error) {
	q := store.Query{OrderBy: "timestamp", Desc: true, Limit: limit}
	var calls []models.CallLog
	if err := s.Store.Query(ctx, store.CallLogs, companyID, q, &calls); err != nil {
		return nil, err
	}
	return calls, nil
}

// LogCall records an inbound call reported by the AI call provider,
// resolving the caller against the resident directory.
func (s *MessageService) LogCall(ctx context.Context, companyID string, call *models.CallLog) (*models.CallLog, error) {
	fe := fieldErrors{}
	if call.PhoneNumber == "" {
		fe["phoneNumber"] = "phone number is required"
	}
	if call.Status != models.CallAnswered && call.Status != models.CallMissed {
		fe["status"] = fmt.Sprintf("status must be %q or %q", models.CallAnswered, models.CallMissed)
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	if call.Timestamp.IsZero() {
		call.Timestamp = s.now().UTC()
	}

	match, err := s.Residents.AssociateContact(ctx, companyID, call.PhoneNumber)
	if err != nil {
		log.Printf("[Calls] contact lookup failed for %s: %v", call.PhoneNumber, err)
	} else if match != nil {
		call.ResidentID = match.ResidentID
		call.ResidentName = match.ResidentName
		call.UnitNumber = match.UnitNumber
	}

	id, err := s.Store.Create(ctx, store.CallLogs, companyID, call)
	if err != nil {
		return nil, err
	}
	saved, err := s.GetCallLog(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if s.Realtime != nil {
		s.Realtime.Broadcast("call.received", saved)
	}
	return saved, nil
}

func (s *MessageService) MarkCallRead(ctx context.Context, companyID, id string) (*models.CallLog, error) {
	if err := s.Store.Update(ctx, store.CallLogs, companyID, id, map[string]interface{}{"isRead": true}); err != nil {
		return nil, err
	}
	return s.GetCallLog(ctx, companyID, id)
}

func (s *MessageService) UpdateCallLog(ctx context.Context, companyID, id string, patch map[string]interface{}) (*models.CallLog, error) {
	if err := s.Store.Update(ctx, store.CallLogs, companyID, id, patch); err != nil {
		return nil, err
	}
	return s.GetCallLog(ctx, companyID, id)
}

func (s *MessageService) DeleteCallLog(ctx context.Context, companyID, id string) error {
	return s.Store.Delete(ctx, store.CallLogs, companyID, id)
}

func (s *MessageService) GetCallStats(ctx context.Context, companyID string) (*models.CallStats, error) {
	var calls []models.CallLog
	if err := s.Store.Query(ctx, store.CallLogs, companyID, store.Query{}, &calls); err != nil {
		return nil, err
	}
	stats := analytics.CallStats(calls)
	return &stats, nil
}

// Search scans messages and call logs for a term, matching phone number,
// resident name, unit and content fields case-insensitively.
func (s *MessageService) Search(ctx context.Context, companyID, term string) (*models.SearchResults, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	results := &models.SearchResults{Messages: []models.Message{}, Calls: []models.CallLog{}}
	if term == "" {
		return results, nil
	}

	var msgs []models.Message
	if err := s.Store.Query(ctx, store.Messages, companyID, store.Query{OrderBy: "timestamp", Desc: true}, &msgs); err != nil {
		return nil, err
	}
	for _, msg := range msgs {
		if containsFold(term, msg.PhoneNumber, msg.ResidentName, msg.UnitNumber, msg.Content) {
			results.Messages = append(results.Messages, msg)
		}
	}

	var calls []models.CallLog
	if err := s.Store.Query(ctx, store.CallLogs, companyID, store.Query{OrderBy: "timestamp", Desc: true}, &calls); err != nil {
		return nil, err
	}
	for _, call := range calls {
		if containsFold(term, call.PhoneNumber, call.ResidentName, call.UnitNumber, call.Summary, call.Transcription) {
			results.Calls = append(results.Calls, call)
		}
	}

	results.Total = len(results.Messages) + len(results.Calls)
	return results, nil
}

func containsFold(term string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

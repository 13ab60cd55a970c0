package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"concierge-backend/internal/metrics"
	"concierge-backend/internal/models"
	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// WebhookHandler receives inbound traffic from the SMS provider and the
// AI call answering service. These endpoints are public; the company is
// addressed in the webhook URL configured at the provider.
type WebhookHandler struct {
	Messages  *services.MessageService
	Companies *services.CompanyService
}

func NewWebhookHandler(messages *services.MessageService, companies *services.CompanyService) *WebhookHandler {
	return &WebhookHandler{Messages: messages, Companies: companies}
}

func (h *WebhookHandler) companyExists(r *http.Request) (string, bool) {
	id := mux.Vars(r)["companyId"]
	if _, err := h.Companies.GetCompany(r.Context(), id); err != nil {
		return "", false
	}
	return id, true
}

// InboundSMS handles the provider's message webhook (form-encoded with
// From, Body and MessageSid fields). The provider expects an empty TwiML
// document back; an error status would trigger provider-side retries.
func (h *WebhookHandler) InboundSMS(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyExists(r)
	if !ok {
		metrics.WebhooksTotal.WithLabelValues("sms", "rejected").Inc()
		http.Error(w, "unknown company", http.StatusNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		metrics.WebhooksTotal.WithLabelValues("sms", "rejected").Inc()
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	sid := r.PostFormValue("MessageSid")

	if _, err := h.Messages.LogIncoming(r.Context(), id, from, body, sid); err != nil {
		metrics.WebhooksTotal.WithLabelValues("sms", "failed").Inc()
		log.Printf("[Webhook] inbound sms failed: %v", err)
		http.Error(w, "failed to record message", http.StatusInternalServerError)
		return
	}
	metrics.WebhooksTotal.WithLabelValues("sms", "ok").Inc()

	w.Header().Set("Content-Type", "text/xml")
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Response></Response>`))
}

type inboundCallPayload struct {
	PhoneNumber   string    `json:"phoneNumber"`
	Status        string    `json:"status"`
	Duration      string    `json:"duration"`
	Summary       string    `json:"summary"`
	AISummary     string    `json:"aiSummary"`
	Transcription string    `json:"transcription"`
	CallID        string    `json:"callId"`
	Timestamp     time.Time `json:"timestamp"`
}

// InboundCall records a completed call reported by the AI call service.
func (h *WebhookHandler) InboundCall(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyExists(r)
	if !ok {
		metrics.WebhooksTotal.WithLabelValues("call", "rejected").Inc()
		http.Error(w, "unknown company", http.StatusNotFound)
		return
	}

	var payload inboundCallPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		metrics.WebhooksTotal.WithLabelValues("call", "rejected").Inc()
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	call := &models.CallLog{
		PhoneNumber:    payload.PhoneNumber,
		Status:         payload.Status,
		Duration:       payload.Duration,
		Summary:        payload.Summary,
		AISummary:      payload.AISummary,
		Transcription:  payload.Transcription,
		ProviderCallID: payload.CallID,
		Timestamp:      payload.Timestamp,
	}

	saved, err := h.Messages.LogCall(r.Context(), id, call)
	if err != nil {
		metrics.WebhooksTotal.WithLabelValues("call", "failed").Inc()
		utils.Error(w, err)
		return
	}
	metrics.WebhooksTotal.WithLabelValues("call", "ok").Inc()

	utils.JSON(w, http.StatusCreated, saved)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"concierge-backend/internal/models"
	"concierge-backend/internal/notify"
	"concierge-backend/internal/services"
	"concierge-backend/internal/store"
	"concierge-backend/pkg/utils"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(s *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: s}
}

// ListTemplates returns the notification catalog for the template picker.
func (h *NotificationHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Key          string `json:"key"`
		Name         string `json:"name"`
		SMS          string `json:"sms"`
		EmailSubject string `json:"emailSubject"`
		EmailBody    string `json:"emailBody"`
	}

	templates := notify.Keys()
	out := make([]entry, 0, len(templates))
	for _, t := range templates {
		out = append(out, entry{
			Key:          t.Key,
			Name:         t.Name,
			SMS:          t.SMS,
			EmailSubject: t.EmailSubject,
			EmailBody:    t.EmailBody,
		})
	}

	utils.JSON(w, http.StatusOK, out)
}

type dispatchRequest struct {
	Collection  string   `json:"collection"`
	EntityID    string   `json:"entityId"`
	EntityIDs   []string `json:"entityIds"`
	TemplateKey string   `json:"templateKey"`
	Channel     string   `json:"channel"`
}

var dispatchableCollections = map[string]bool{
	store.Packages:        true,
	store.Bookings:        true,
	store.Visitors:        true,
	store.ParkingRequests: true,
	store.Residents:       true,
}

// Dispatch sends a templated notification for one entity.
func (h *NotificationHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !dispatchableCollections[req.Collection] {
		http.Error(w, "unknown collection", http.StatusBadRequest)
		return
	}
	if req.Channel == "" {
		req.Channel = notify.ChannelSMS
	}

	result, err := h.Service.Dispatch(r.Context(), companyID(r), req.Collection, req.EntityID, req.TemplateKey, req.Channel)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// DispatchMany sends the same template to a batch of entities and reports
// the success count. Partial failure is a normal outcome, not an error.
func (h *NotificationHandler) DispatchMany(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !dispatchableCollections[req.Collection] {
		http.Error(w, "unknown collection", http.StatusBadRequest)
		return
	}
	if len(req.EntityIDs) == 0 {
		http.Error(w, "entityIds is required", http.StatusBadRequest)
		return
	}
	if req.Channel == "" {
		req.Channel = notify.ChannelSMS
	}

	sent, err := h.Service.DispatchMany(r.Context(), companyID(r), req.Collection, req.EntityIDs, req.TemplateKey, req.Channel)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]int{
		"requested": len(req.EntityIDs),
		"sent":      sent,
	})
}

// NotifyPackages is the package page's bulk notify action. It is the
// same send as DispatchMany fixed to the packages collection.
func (h *NotificationHandler) NotifyPackages(w http.ResponseWriter, r *http.Request) {
	var req models.BulkNotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.PackageIDs) == 0 {
		http.Error(w, "packageIds is required", http.StatusBadRequest)
		return
	}
	if req.Channel == "" {
		req.Channel = notify.ChannelSMS
	}

	sent, err := h.Service.DispatchMany(r.Context(), companyID(r), store.Packages, req.PackageIDs, req.TemplateKey, req.Channel)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]int{
		"requested": len(req.PackageIDs),
		"sent":      sent,
	})
}

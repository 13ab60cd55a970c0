package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"concierge-backend/internal/models"
	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type MessageHandler struct {
	Service *services.MessageService
}

func NewMessageHandler(s *services.MessageService) *MessageHandler {
	return &MessageHandler{Service: s}
}

func limitParam(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Service.ListMessages(r.Context(), companyID(r), limitParam(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		http.Error(w, "phone parameter is required", http.StatusBadRequest)
		return
	}

	messages, err := h.Service.Conversation(r.Context(), companyID(r), phone)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.Service.SendMessage(r.Context(), companyID(r), staffEmail(r), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Service.MarkRead(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		http.Error(w, "phone parameter is required", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.MarkConversationRead(r.Context(), companyID(r), phone)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteMessage(r.Context(), companyID(r), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MessageHandler) GetMessageStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetMessageStats(r.Context(), companyID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, stats)
}

// Search scans messages and calls for a term.
func (h *MessageHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.Service.Search(r.Context(), companyID(r), r.URL.Query().Get("q"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, results)
}

// Call logs

func (h *MessageHandler) ListCallLogs(w http.ResponseWriter, r *http.Request) {
	calls, err := h.Service.ListCallLogs(r.Context(), companyID(r), limitParam(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, calls)
}

func (h *MessageHandler) GetCallLog(w http.ResponseWriter, r *http.Request) {
	call, err := h.Service.GetCallLog(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, call)
}

func (h *MessageHandler) MarkCallRead(w http.ResponseWriter, r *http.Request) {
	call, err := h.Service.MarkCallRead(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, call)
}

func (h *MessageHandler) UpdateCallLog(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	call, err := h.Service.UpdateCallLog(r.Context(), companyID(r), mux.Vars(r)["id"], patch)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, call)
}

func (h *MessageHandler) DeleteCallLog(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCallLog(r.Context(), companyID(r), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MessageHandler) GetCallStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetCallStats(r.Context(), companyID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, stats)
}

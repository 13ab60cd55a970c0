package handlers

import (
	"encoding/json"
	"net/http"

	"concierge-backend/internal/models"
	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type IssueHandler struct {
	Service *services.IssueService
}

func NewIssueHandler(s *services.IssueService) *IssueHandler {
	return &IssueHandler{Service: s}
}

func (h *IssueHandler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	issue, err := h.Service.CreateIssue(r.Context(), companyID(r), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, issue)
}

func (h *IssueHandler) GetIssue(w http.ResponseWriter, r *http.Request) {
	issue, err := h.Service.GetIssue(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, issue)
}

func (h *IssueHandler) ListIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.Service.ListIssues(r.Context(), companyID(r), r.URL.Query().Get("status"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, issues)
}

func (h *IssueHandler) UpdateIssue(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	issue, err := h.Service.UpdateIssue(r.Context(), companyID(r), mux.Vars(r)["id"], patch)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, issue)
}

func (h *IssueHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	issue, err := h.Service.SetStatus(r.Context(), companyID(r), mux.Vars(r)["id"], body.Status)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, issue)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"concierge-backend/internal/models"
	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type VisitorHandler struct {
	Service *services.VisitorService
}

func NewVisitorHandler(s *services.VisitorService) *VisitorHandler {
	return &VisitorHandler{Service: s}
}

func (h *VisitorHandler) CreateVisitor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVisitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	visitor, err := h.Service.CreateVisitor(r.Context(), companyID(r), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, visitor)
}

func (h *VisitorHandler) GetVisitor(w http.ResponseWriter, r *http.Request) {
	visitor, err := h.Service.GetVisitor(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, visitor)
}

func (h *VisitorHandler) ListVisitors(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	visitors, err := h.Service.ListVisitors(r.Context(), companyID(r), from, to)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, visitors)
}

func (h *VisitorHandler) TodaysVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.Service.TodaysCheckedInVisitors(r.Context(), companyID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, visitors)
}

func (h *VisitorHandler) UpdateVisitor(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	visitor, err := h.Service.UpdateVisitor(r.Context(), companyID(r), mux.Vars(r)["id"], patch)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, visitor)
}

func (h *VisitorHandler) DeleteVisitor(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteVisitor(r.Context(), companyID(r), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *VisitorHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	visitor, err := h.Service.CheckIn(r.Context(), companyID(r), mux.Vars(r)["id"], staffEmail(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, visitor)
}

func (h *VisitorHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	visitor, err := h.Service.CheckOut(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, visitor)
}

func (h *VisitorHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	visitor, err := h.Service.MarkNoShow(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, visitor)
}

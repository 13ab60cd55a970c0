package handlers

import (
	"encoding/json"
	"net/http"

	"concierge-backend/internal/models"
	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ParkingHandler struct {
	Service *services.VisitorService
}

func NewParkingHandler(s *services.VisitorService) *ParkingHandler {
	return &ParkingHandler{Service: s}
}

func (h *ParkingHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateParkingRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.Service.CreateParkingRequest(r.Context(), companyID(r), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, request)
}

func (h *ParkingHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	request, err := h.Service.GetParkingRequest(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, request)
}

func (h *ParkingHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	requests, err := h.Service.ListParkingRequests(r.Context(), companyID(r), from, to)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, requests)
}

func (h *ParkingHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.PendingParkingRequests(r.Context(), companyID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, requests)
}

func (h *ParkingHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.Service.UpdateParkingRequest(r.Context(), companyID(r), mux.Vars(r)["id"], patch)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, request)
}

func (h *ParkingHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteParkingRequest(r.Context(), companyID(r), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Approve assigns a visitor spot and access code to a pending request.
func (h *ParkingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	request, err := h.Service.ApproveParkingRequest(r.Context(), companyID(r), mux.Vars(r)["id"], staffEmail(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, request)
}

func (h *ParkingHandler) Deny(w http.ResponseWriter, r *http.Request) {
	request, err := h.Service.DenyParkingRequest(r.Context(), companyID(r), mux.Vars(r)["id"], staffEmail(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, request)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"concierge-backend/internal/models"
	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ResidentHandler struct {
	Service *services.ResidentService
}

func NewResidentHandler(s *services.ResidentService) *ResidentHandler {
	return &ResidentHandler{Service: s}
}

func (h *ResidentHandler) CreateResident(w http.ResponseWriter, r *http.Request) {
	var req models.CreateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resident, err := h.Service.CreateResident(r.Context(), companyID(r), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, resident)
}

func (h *ResidentHandler) GetResident(w http.ResponseWriter, r *http.Request) {
	resident, err := h.Service.GetResident(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resident)
}

func (h *ResidentHandler) ListResidents(w http.ResponseWriter, r *http.Request) {
	residents, err := h.Service.ListResidents(r.Context(), companyID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, residents)
}

func (h *ResidentHandler) UpdateResident(w http.ResponseWriter, r *http.Request) {
	var req models.CreateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resident, err := h.Service.UpdateResident(r.Context(), companyID(r), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resident)
}

func (h *ResidentHandler) DeleteResident(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteResident(r.Context(), companyID(r), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssociateContact resolves a phone number to a resident snapshot. No
// match returns 200 with null; the caller treats an unknown number as a
// valid non-resident contact.
func (h *ResidentHandler) AssociateContact(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		http.Error(w, "phone parameter is required", http.StatusBadRequest)
		return
	}

	match, err := h.Service.AssociateContact(r.Context(), companyID(r), phone)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, match)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"concierge-backend/internal/models"
	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type CompanyHandler struct {
	Service *services.CompanyService
}

func NewCompanyHandler(s *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{Service: s}
}

// CreateCompany provisions a new tenant. This endpoint sits on the public
// router; onboarding happens before the creator's email maps to a company.
func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	company, err := h.Service.CreateCompany(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, company)
}

// GetCurrent returns the caller's own company record.
func (h *CompanyHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	company, err := h.Service.GetCompany(r.Context(), companyID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCompanySettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	company, err := h.Service.UpdateSettings(r.Context(), companyID(r), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) UpdateStaffEmails(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StaffEmails []string `json:"staffEmails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	company, err := h.Service.UpdateStaffEmails(r.Context(), companyID(r), body.StaffEmails)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) AddAmenity(w http.ResponseWriter, r *http.Request) {
	var amenity models.Amenity
	if err := json.NewDecoder(r.Body).Decode(&amenity); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	company, err := h.Service.AddAmenity(r.Context(), companyID(r), amenity)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) RemoveAmenity(w http.ResponseWriter, r *http.Request) {
	company, err := h.Service.RemoveAmenity(r.Context(), companyID(r), mux.Vars(r)["amenityId"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, company)
}

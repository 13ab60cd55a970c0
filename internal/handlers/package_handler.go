package handlers

import (
	"encoding/json"
	"net/http"

	"concierge-backend/internal/models"
	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PackageHandler struct {
	Service *services.PackageService
}

func NewPackageHandler(s *services.PackageService) *PackageHandler {
	return &PackageHandler{Service: s}
}

func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pkg, err := h.Service.CreatePackage(r.Context(), companyID(r), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, pkg)
}

func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.Service.GetPackage(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	if term := r.URL.Query().Get("search"); term != "" {
		packages, err := h.Service.SearchPackages(r.Context(), companyID(r), term)
		if err != nil {
			utils.Error(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, packages)
		return
	}

	packages, err := h.Service.ListPackages(r.Context(), companyID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, packages)
}

func (h *PackageHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pkg, err := h.Service.UpdatePackage(r.Context(), companyID(r), mux.Vars(r)["id"], patch)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeletePackage(r.Context(), companyID(r), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PackageHandler) MarkPickedUp(w http.ResponseWriter, r *http.Request) {
	var req models.PickupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pkg, err := h.Service.MarkPickedUp(r.Context(), companyID(r), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, pkg)
}

// BulkPickup marks a batch picked up. Partial success is expected; the
// response reports how many succeeded.
func (h *PackageHandler) BulkPickup(w http.ResponseWriter, r *http.Request) {
	var req models.BulkPickupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.PackageIDs) == 0 {
		http.Error(w, "packageIds is required", http.StatusBadRequest)
		return
	}

	updated := h.Service.MarkManyPickedUp(r.Context(), companyID(r), &req)

	utils.JSON(w, http.StatusOK, map[string]int{
		"requested": len(req.PackageIDs),
		"updated":   updated,
	})
}

func (h *PackageHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetPackageStats(r.Context(), companyID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, stats)
}

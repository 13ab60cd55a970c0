package handlers

import (
	"fmt"
	"net/http"
	"time"

	"concierge-backend/internal/services"
	"concierge-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// PackageReport returns a package activity report for the requested
// window. format is json (default), or pdf/csv for a file download; the
// window defaults to the last 30 days.
func (h *ReportHandler) PackageReport(w http.ResponseWriter, r *http.Request) {
	id := companyID(r)

	from, to, err := dateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	var (
		data        []byte
		contentType string
		ext         string
	)
	switch format {
	case "json":
		report, err := h.Service.Packages.GeneratePackageReport(r.Context(), id, start, end)
		if err != nil {
			utils.Error(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, report)
		return
	case "pdf":
		data, err = h.Service.GeneratePackageReportPDF(r.Context(), id, start, end)
		contentType = "application/pdf"
		ext = "pdf"
	case "csv":
		data, err = h.Service.GeneratePackageReportCSV(r.Context(), id, start, end)
		contentType = "text/csv"
		ext = "csv"
	default:
		http.Error(w, "format must be pdf or csv", http.StatusBadRequest)
		return
	}
	if err != nil {
		utils.Error(w, err)
		return
	}

	filename := fmt.Sprintf("package-report-%s.%s", end.Format("2006-01-02"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

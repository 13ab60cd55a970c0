package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"concierge-backend/internal/models"
)

// ReportService renders the package activity report as PDF or CSV for
// download from the dashboard.
type ReportService struct {
	Packages  *PackageService
	Companies *CompanyService
}

func NewReportService(packages *PackageService, companies *CompanyService) *ReportService {
	return &ReportService{Packages: packages, Companies: companies}
}

func (s *ReportService) buildingName(ctx context.Context, companyID string) string {
	company, err := s.Companies.GetCompany(ctx, companyID)
	if err != nil || company.Name == "" {
		return "Building Management"
	}
	return company.Name
}

// GeneratePackageReportPDF builds the report data and renders it to PDF.
func (s *ReportService) GeneratePackageReportPDF(ctx context.Context, companyID string, from, to time.Time) ([]byte, error) {
	report, err := s.Packages.GeneratePackageReport(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	return s.renderPackagePDF(report, s.buildingName(ctx, companyID))
}

func (s *ReportService) renderPackagePDF(report *models.PackageReport, building string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Package Report", building), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Period: %s to %s",
		report.PeriodStart.Format("02-Jan-2006"),
		report.PeriodEnd.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Summary Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total Packages: %d", report.Summary.Total), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Pending: %d", report.Summary.Pending), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Picked Up: %d", report.Summary.PickedUp), "1", 1, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Avg Pickup: %dh", report.Summary.AvgPickupTime), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Busiest Day: %s (%d)", report.BusiestDay.Day, report.BusiestDay.Count), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Most Active Unit: %s (%d)", report.MostActiveUnit.Unit, report.MostActiveUnit.Count), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Courier ranking
	if len(report.Summary.TopCouriers) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Top Couriers", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(130, 7, "Courier", "1", 0, "C", true, 0, "")
		pdf.CellFormat(60, 7, "Deliveries", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, c := range report.Summary.TopCouriers {
			pdf.CellFormat(130, 6, c.Courier, "1", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, fmt.Sprintf("%d", c.Count), "1", 1, "C", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Package table
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Packages", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Resident", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Courier", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 7, "Received", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Picked Up", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for i, p := range report.Packages {
		// Alternate row colors
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(245, 245, 245)
		}

		name := truncate(p.ResidentName, 20)
		courier := truncate(p.Courier, 13)
		pickedUp := ""
		if p.PickedUpAt != nil {
			pickedUp = p.PickedUpAt.Format("02-Jan 03:04PM")
		}

		pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 6, p.UnitNumber, "1", 0, "C", true, 0, "")
		pdf.CellFormat(45, 6, name, "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 6, courier, "1", 0, "L", true, 0, "")
		pdf.CellFormat(28, 6, p.CreatedAt.Format("02-Jan 03:04PM"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 6, p.Status, "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 6, pickedUp, "1", 1, "C", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// truncate shortens s to max runes, not bytes, so a multibyte name is
// never cut mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// GeneratePackageReportCSV builds the report data and renders it to CSV.
func (s *ReportService) GeneratePackageReportCSV(ctx context.Context, companyID string, from, to time.Time) ([]byte, error) {
	report, err := s.Packages.GeneratePackageReport(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Package Report", report.PeriodStart.Format("02-Jan-2006"), report.PeriodEnd.Format("02-Jan-2006")})
	w.Write([]string{""})
	w.Write([]string{"Total", fmt.Sprintf("%d", report.Summary.Total)})
	w.Write([]string{"Pending", fmt.Sprintf("%d", report.Summary.Pending)})
	w.Write([]string{"Picked Up", fmt.Sprintf("%d", report.Summary.PickedUp)})
	w.Write([]string{"Avg Pickup Hours", fmt.Sprintf("%d", report.Summary.AvgPickupTime)})
	w.Write([]string{"Busiest Day", report.BusiestDay.Day, fmt.Sprintf("%d", report.BusiestDay.Count)})
	w.Write([]string{""})

	w.Write([]string{"#", "Unit", "Resident", "Courier", "Tracking", "Received", "Status", "Picked Up By", "Picked Up At"})
	for i, p := range report.Packages {
		pickedUpAt := ""
		if p.PickedUpAt != nil {
			pickedUpAt = p.PickedUpAt.Format("02-Jan-2006 03:04 PM")
		}
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			p.UnitNumber,
			p.ResidentName,
			p.Courier,
			p.TrackingNumber,
			p.CreatedAt.Format("02-Jan-2006 03:04 PM"),
			p.Status,
			p.PickupBy,
			pickedUpAt,
		})
	}

	w.Flush()
	return buf.Bytes(), nil
}

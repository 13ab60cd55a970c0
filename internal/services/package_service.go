package services

import (
	"context"
	"strings"
	"time"

	"concierge-backend/internal/analytics"
	"concierge-backend/internal/models"
	"concierge-backend/internal/store"
)

type PackageService struct {
	Store     store.Store
	Residents *ResidentService
	now       func() time.Time
}

func NewPackageService(st store.Store, residents *ResidentService) *PackageService {
	return &PackageService{Store: st, Residents: residents, now: time.Now}
}

func (s *PackageService) CreatePackage(ctx context.Context, companyID string, req *models.CreatePackageRequest) (*models.Package, error) {
	fe := fieldErrors{}
	if req.Courier == "" {
		fe["courier"] = "courier is required"
	}
	if req.UnitNumber == "" && req.ResidentID == "" {
		fe["unitNumber"] = "unit number or resident is required"
	}
	if req.DeliveredAt != nil && req.DeliveredAt.After(s.now()) {
		fe["deliveredAt"] = "delivered time cannot be in the future"
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	pkg := &models.Package{
		ResidentID:     req.ResidentID,
		ResidentName:   req.ResidentName,
		UnitNumber:     req.UnitNumber,
		RecipientEmail: req.RecipientEmail,
		RecipientPhone: req.RecipientPhone,
		Courier:        req.Courier,
		TrackingNumber: req.TrackingNumber,
		Description:    req.Description,
		DeliveredAt:    req.DeliveredAt,
		Status:         models.PackagePending,
	}

	// Snapshot the resident record at creation time; later resident edits
	// do not retroactively change this package.
	if req.ResidentID != "" {
		resident, err := s.Residents.GetResident(ctx, companyID, req.ResidentID)
		if err == nil {
			pkg.ResidentName = resident.Name
			if pkg.UnitNumber == "" {
				pkg.UnitNumber = resident.UnitNumber
			}
			if pkg.RecipientEmail == "" {
				pkg.RecipientEmail = resident.Email
			}
			if pkg.RecipientPhone == "" {
				pkg.RecipientPhone = resident.Phone
			}
		}
	}

	id, err := s.Store.Create(ctx, store.Packages, companyID, pkg)
	if err != nil {
		return nil, err
	}
	return s.GetPackage(ctx, companyID, id)
}

func (s *PackageService) GetPackage(ctx context.Context, companyID, id string) (*models.Package, error) {
	var pkg models.Package
	if err := s.Store.Get(ctx, store.Packages, companyID, id, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *PackageService) ListPackages(ctx context.Context, companyID string) ([]models.Package, error) {
	var packages []models.Package
	q := store.Query{OrderBy: "createdAt", Desc: true}
	if err := s.Store.Query(ctx, store.Packages, companyID, q, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (s *PackageService) UpdatePackage(ctx context.Context, companyID, id string, patch map[string]interface{}) (*models.Package, error) {
	if err := s.Store.Update(ctx, store.Packages, companyID, id, patch); err != nil {
		return nil, err
	}
	return s.GetPackage(ctx, companyID, id)
}

func (s *PackageService) DeletePackage(ctx context.Context, companyID, id string) error {
	return s.Store.Delete(ctx, store.Packages, companyID, id)
}

// MarkPickedUp transitions a package to picked_up and records who
// collected it. picked_up is terminal for the normal flow.
func (s *PackageService) MarkPickedUp(ctx context.Context, companyID, id string, req *models.PickupRequest) (*models.Package, error) {
	pickupBy := req.PickupBy
	if pickupBy == "" {
		pickupBy = "Resident"
	}

	patch := map[string]interface{}{
		"status":      models.PackagePickedUp,
		"pickupBy":    pickupBy,
		"pickedUpAt":  s.now().UTC(),
		"pickupNotes": req.Notes,
	}
	if err := s.Store.Update(ctx, store.Packages, companyID, id, patch); err != nil {
		return nil, err
	}
	return s.GetPackage(ctx, companyID, id)
}

// MarkManyPickedUp applies the same pickup to several packages and
// returns how many succeeded. The writes are independent; one failure
// does not roll back the others.
func (s *PackageService) MarkManyPickedUp(ctx context.Context, companyID string, req *models.BulkPickupRequest) int {
	var ok int
	for _, id := range req.PackageIDs {
		if _, err := s.MarkPickedUp(ctx, companyID, id, &models.PickupRequest{PickupBy: req.PickupBy, Notes: req.Notes}); err == nil {
			ok++
		}
	}
	return ok
}

// SearchPackages filters the company's packages by a case-insensitive
// substring over the snapshot fields.
func (s *PackageService) SearchPackages(ctx context.Context, companyID, term string) ([]models.Package, error) {
	packages, err := s.ListPackages(ctx, companyID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matched := make([]models.Package, 0)
	for _, p := range packages {
		haystack := strings.ToLower(strings.Join([]string{
			p.ResidentName, p.UnitNumber, p.Courier, p.TrackingNumber,
			p.Description, p.RecipientEmail, p.RecipientPhone,
		}, "\n"))
		if strings.Contains(haystack, needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *PackageService) GetPackageStats(ctx context.Context, companyID string) (*models.PackageStats, error) {
	packages, err := s.ListPackages(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stats := analytics.PackageStats(packages)
	return &stats, nil
}

// GeneratePackageReport summarizes a period: stats over the packages
// created in the window plus a few insights for the report page.
func (s *PackageService) GeneratePackageReport(ctx context.Context, companyID string, from, to time.Time) (*models.PackageReport, error) {
	packages, err := s.ListPackages(ctx, companyID)
	if err != nil {
		return nil, err
	}

	inRange := make([]models.Package, 0)
	for _, p := range packages {
		if !p.CreatedAt.Before(from) && !p.CreatedAt.After(to) {
			inRange = append(inRange, p)
		}
	}

	days := int(to.Sub(from).Hours()/24 + 0.999)
	if days < 1 {
		days = 1
	}

	return &models.PackageReport{
		PeriodStart:       from,
		PeriodEnd:         to,
		Summary:           analytics.PackageStats(inRange),
		Packages:          inRange,
		BusiestDay:        analytics.BusiestDay(inRange),
		MostActiveUnit:    analytics.MostActiveUnit(inRange),
		AvgPackagesPerDay: (len(inRange) + days/2) / days,
	}, nil
}

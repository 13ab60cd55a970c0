package services

import (
	"context"
	"errors"

	"concierge-backend/internal/cache"
	"concierge-backend/internal/models"
	"concierge-backend/internal/store"

	"github.com/google/uuid"
)

type CompanyService struct {
	Store store.Store
}

func NewCompanyService(st store.Store) *CompanyService {
	return &CompanyService{Store: st}
}

func (s *CompanyService) CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.Company, error) {
	fe := fieldErrors{}
	if req.Name == "" {
		fe["name"] = "company name is required"
	}
	if len(req.StaffEmails) == 0 {
		fe["staffEmails"] = "at least one staff email is required"
	}
	for _, email := range req.StaffEmails {
		if !validEmail(email) {
			fe["staffEmails"] = "invalid staff email: " + email
		}
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	company := &models.Company{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		StaffEmails: req.StaffEmails,
	}

	id, err := s.Store.Create(ctx, store.Companies, "", company)
	if err != nil {
		return nil, err
	}
	return s.GetCompany(ctx, id)
}

func (s *CompanyService) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := s.Store.Get(ctx, store.Companies, "", id, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// GetCompanyByStaffEmail maps an authenticated email to its company. This
// is the only auth-adjacent lookup the backend performs; it returns nil
// without error when the email administers no company.
func (s *CompanyService) GetCompanyByStaffEmail(ctx context.Context, email string) (*models.Company, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	var companies []models.Company
	q := store.Where("staffEmails", store.OpContains, email)
	if err := s.Store.Query(ctx, store.Companies, "", q, &companies); err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, nil
	}
	return &companies[0], nil
}

func (s *CompanyService) UpdateSettings(ctx context.Context, id string, req *models.UpdateCompanySettingsRequest) (*models.Company, error) {
	patch := map[string]interface{}{
		"settings": models.CompanySettings{
			BusinessHours: req.BusinessHours,
			SMS:           req.SMS,
			Email:         req.Email,
			Notifications: req.Notifications,
		},
	}
	if err := s.Store.Update(ctx, store.Companies, "", id, patch); err != nil {
		return nil, err
	}
	return s.GetCompany(ctx, id)
}

// UpdateStaffEmails replaces the staff email list. Cached email lookups
// for both the old and new lists are dropped so the auth middleware sees
// the change on the next request.
func (s *CompanyService) UpdateStaffEmails(ctx context.Context, companyID string, emails []string) (*models.Company, error) {
	fe := fieldErrors{}
	if len(emails) == 0 {
		fe["staffEmails"] = "at least one staff email is required"
	}
	for _, email := range emails {
		if !validEmail(email) {
			fe["staffEmails"] = "invalid staff email: " + email
		}
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.Store.Update(ctx, store.Companies, "", companyID, map[string]interface{}{"staffEmails": emails}); err != nil {
		return nil, err
	}
	cache.InvalidateCompanyEmails(ctx, append(company.StaffEmails, emails...))

	company.StaffEmails = emails
	return company, nil
}

func (s *CompanyService) AddAmenity(ctx context.Context, companyID string, amenity models.Amenity) (*models.Company, error) {
	if amenity.Name == "" {
		return nil, (fieldErrors{"name": "amenity name is required"}).err()
	}

	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if amenity.ID == "" {
		amenity.ID = uuid.NewString()
	}
	amenities := append(company.Amenities, amenity)

	if err := s.Store.Update(ctx, store.Companies, "", companyID, map[string]interface{}{"amenities": amenities}); err != nil {
		return nil, err
	}
	company.Amenities = amenities
	return company, nil
}

func (s *CompanyService) RemoveAmenity(ctx context.Context, companyID, amenityID string) (*models.Company, error) {
	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	amenities := make([]models.Amenity, 0, len(company.Amenities))
	for _, a := range company.Amenities {
		if a.ID != amenityID {
			amenities = append(amenities, a)
		}
	}

	if err := s.Store.Update(ctx, store.Companies, "", companyID, map[string]interface{}{"amenities": amenities}); err != nil {
		return nil, err
	}
	company.Amenities = amenities
	return company, nil
}

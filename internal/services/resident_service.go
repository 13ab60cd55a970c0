package services

import (
	"context"

	"concierge-backend/internal/models"
	"concierge-backend/internal/store"
)

type ResidentService struct {
	Store store.Store
}

func NewResidentService(st store.Store) *ResidentService {
	return &ResidentService{Store: st}
}

func validateResident(req *models.CreateResidentRequest) error {
	fe := fieldErrors{}
	if req.Name == "" {
		fe["name"] = "name is required"
	}
	if req.UnitNumber == "" {
		fe["unitNumber"] = "unit number is required"
	}
	if req.Email != "" && !validEmail(req.Email) {
		fe["email"] = "invalid email address"
	}
	if req.Phone != "" && !validPhone(req.Phone) {
		fe["phone"] = "invalid phone number"
	}
	return fe.err()
}

func (s *ResidentService) CreateResident(ctx context.Context, companyID string, req *models.CreateResidentRequest) (*models.Resident, error) {
	if err := validateResident(req); err != nil {
		return nil, err
	}

	resident := &models.Resident{
		Name:             req.Name,
		UnitNumber:       req.UnitNumber,
		Email:            req.Email,
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		Notes:            req.Notes,
	}

	id, err := s.Store.Create(ctx, store.Residents, companyID, resident)
	if err != nil {
		return nil, err
	}
	return s.GetResident(ctx, companyID, id)
}

func (s *ResidentService) GetResident(ctx context.Context, companyID, id string) (*models.Resident, error) {
	var resident models.Resident
	if err := s.Store.Get(ctx, store.Residents, companyID, id, &resident); err != nil {
		return nil, err
	}
	return &resident, nil
}

func (s *ResidentService) ListResidents(ctx context.Context, companyID string) ([]models.Resident, error) {
	var residents []models.Resident
	q := store.Query{OrderBy: "name"}
	if err := s.Store.Query(ctx, store.Residents, companyID, q, &residents); err != nil {
		return nil, err
	}
	return residents, nil
}

func (s *ResidentService) UpdateResident(ctx context.Context, companyID, id string, req *models.CreateResidentRequest) (*models.Resident, error) {
	if err := validateResident(req); err != nil {
		return nil, err
	}

	patch := map[string]interface{}{
		"name":             req.Name,
		"unitNumber":       req.UnitNumber,
		"email":            req.Email,
		"phone":            req.Phone,
		"emergencyContact": req.EmergencyContact,
		"notes":            req.Notes,
	}
	if err := s.Store.Update(ctx, store.Residents, companyID, id, patch); err != nil {
		return nil, err
	}
	return s.GetResident(ctx, companyID, id)
}

func (s *ResidentService) DeleteResident(ctx context.Context, companyID, id string) error {
	return s.Store.Delete(ctx, store.Residents, companyID, id)
}

// AssociateContact resolves a phone number to a resident snapshot within
// a company. Matching is exact string equality; "+1 555-123-4567" and
// "5551234567" are different numbers as far as this lookup is concerned.
// A nil result is a valid state (non-resident guest), not an error. With
// duplicate phones the first match wins.
func (s *ResidentService) AssociateContact(ctx context.Context, companyID, phoneNumber string) (*models.ContactMatch, error) {
	if phoneNumber == "" {
		return nil, nil
	}

	var residents []models.Resident
	q := store.Where("phone", store.OpEq, phoneNumber)
	if err := s.Store.Query(ctx, store.Residents, companyID, q, &residents); err != nil {
		return nil, err
	}
	if len(residents) == 0 {
		return nil, nil
	}

	r := residents[0]
	return &models.ContactMatch{
		ResidentID:   r.ID,
		ResidentName: r.Name,
		UnitNumber:   r.UnitNumber,
	}, nil
}

package services

import (
	"context"
	"fmt"

	"concierge-backend/internal/models"
	"concierge-backend/internal/store"
)

var issueStatuses = map[string]bool{
	models.IssueOpen:       true,
	models.IssueInProgress: true,
	models.IssueResolved:   true,
	models.IssueClosed:     true,
}

type IssueService struct {
	Store store.Store
}

func NewIssueService(st store.Store) *IssueService {
	return &IssueService{Store: st}
}

func (s *IssueService) CreateIssue(ctx context.Context, companyID string, req *models.CreateIssueRequest) (*models.Issue, error) {
	if req.Title == "" {
		return nil, fieldErrors{"title": "issue title is required"}.err()
	}

	issue := &models.Issue{
		Title:       req.Title,
		Category:    req.Category,
		Priority:    req.Priority,
		UnitNumber:  req.UnitNumber,
		Description: req.Description,
		Status:      models.IssueOpen,
	}

	id, err := s.Store.Create(ctx, store.Issues, companyID, issue)
	if err != nil {
		return nil, err
	}
	return s.GetIssue(ctx, companyID, id)
}

func (s *IssueService) GetIssue(ctx context.Context, companyID, id string) (*models.Issue, error) {
	var issue models.Issue
	if err := s.Store.Get(ctx, store.Issues, companyID, id, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (s *IssueService) ListIssues(ctx context.Context, companyID, status string) ([]models.Issue, error) {
	q := store.Query{OrderBy: "createdAt", Desc: true}
	if status != "" {
		q = q.AndWhere("status", store.OpEq, status)
	}

	var issues []models.Issue
	if err := s.Store.Query(ctx, store.Issues, companyID, q, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *IssueService) UpdateIssue(ctx context.Context, companyID, id string, patch map[string]interface{}) (*models.Issue, error) {
	if status, ok := patch["status"].(string); ok && !issueStatuses[status] {
		return nil, fieldErrors{"status": fmt.Sprintf("unknown issue status %q", status)}.err()
	}
	if err := s.Store.Update(ctx, store.Issues, companyID, id, patch); err != nil {
		return nil, err
	}
	return s.GetIssue(ctx, companyID, id)
}

func (s *IssueService) SetStatus(ctx context.Context, companyID, id, status string) (*models.Issue, error) {
	return s.UpdateIssue(ctx, companyID, id, map[string]interface{}{"status": status})
}

package services

import (
	"context"
	"testing"

	"concierge-backend/internal/models"
	"concierge-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssue_DefaultsToOpen(t *testing.T) {
	s := NewIssueService(store.NewMemoryStore())

	issue, err := s.CreateIssue(context.Background(), "company-1", &models.CreateIssueRequest{
		Title:    "Leaking faucet",
		Category: "plumbing",
	})
	require.NoError(t, err)
	assert.Equal(t, models.IssueOpen, issue.Status)
}

func TestCreateIssue_RequiresTitle(t *testing.T) {
	s := NewIssueService(store.NewMemoryStore())

	_, err := s.CreateIssue(context.Background(), "company-1", &models.CreateIssueRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
}

func TestSetStatus_RejectsUnknown(t *testing.T) {
	s := NewIssueService(store.NewMemoryStore())
	ctx := context.Background()

	issue, err := s.CreateIssue(ctx, "company-1", &models.CreateIssueRequest{Title: "Broken light"})
	require.NoError(t, err)

	_, err = s.SetStatus(ctx, "company-1", issue.ID, "abandoned")
	require.Error(t, err)

	updated, err := s.SetStatus(ctx, "company-1", issue.ID, models.IssueResolved)
	require.NoError(t, err)
	assert.Equal(t, models.IssueResolved, updated.Status)
}

func TestListIssues_FiltersByStatus(t *testing.T) {
	s := NewIssueService(store.NewMemoryStore())
	ctx := context.Background()

	open, err := s.CreateIssue(ctx, "company-1", &models.CreateIssueRequest{Title: "One"})
	require.NoError(t, err)
	done, err := s.CreateIssue(ctx, "company-1", &models.CreateIssueRequest{Title: "Two"})
	require.NoError(t, err)
	_, err = s.SetStatus(ctx, "company-1", done.ID, models.IssueResolved)
	require.NoError(t, err)

	issues, err := s.ListIssues(ctx, "company-1", models.IssueOpen)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, open.ID, issues[0].ID)

	all, err := s.ListIssues(ctx, "company-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

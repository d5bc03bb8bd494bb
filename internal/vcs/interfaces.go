package vcs

import (
	"context"

	"github.com/thomas-vilte/zendesk-sync/internal/models"
)

// IssueTracker is the part of the issue tracker API the sync consumes.
type IssueTracker interface {
	// GetIssue fetches title, body and labels of an issue.
	GetIssue(ctx context.Context, owner, repo string, number int) (*models.Issue, error)
	// CreateComment posts a comment on an issue.
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}

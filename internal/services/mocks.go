package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
)

type (
	MockIssueTracker struct {
		mock.Mock
	}

	MockTicketUpdater struct {
		mock.Mock
	}

	MockAuditLogger struct {
		mock.Mock
	}
)

func (m *MockIssueTracker) GetIssue(ctx context.Context, owner, repo string, number int) (*models.Issue, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Issue), args.Error(1)
}

func (m *MockIssueTracker) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	args := m.Called(ctx, owner, repo, number, body)
	return args.Error(0)
}

func (m *MockTicketUpdater) UpdateTicket(ctx context.Context, ticketID int64, payload models.UpdatePayload) error {
	args := m.Called(ctx, ticketID, payload)
	return args.Error(0)
}

func (m *MockAuditLogger) PostIssueLog(ctx context.Context, record models.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

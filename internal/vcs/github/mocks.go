package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	issue, _ := args.Get(0).(*github.Issue)
	resp, _ := args.Get(1).(*github.Response)
	return issue, resp, args.Error(2)
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	created, _ := args.Get(0).(*github.IssueComment)
	resp, _ := args.Get(1).(*github.Response)
	return created, resp, args.Error(2)
}

package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
)

func responseWithStatus(code int) *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: code, Status: http.StatusText(code)}}
}

func TestGitHubClient_GetIssue(t *testing.T) {
	t.Run("should get issue successfully", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := NewGitHubClientWithServices(mockIssues)

		mockIssues.On("Get", mock.Anything, "acme", "support-bridge", 17).
			Return(&github.Issue{
				Number: github.Ptr(17),
				Title:  github.Ptr("4521-login bug"),
				Body:   github.Ptr("**Assignee:** Jane Doe"),
				Labels: []*github.Label{
					{Name: github.Ptr("QA")},
					{Name: nil},
					{Name: github.Ptr("Awaiting Verification")},
				},
			}, responseWithStatus(http.StatusOK), nil)

		issue, err := client.GetIssue(context.Background(), "acme", "support-bridge", 17)

		require.NoError(t, err)
		assert.Equal(t, 17, issue.Number)
		assert.Equal(t, "4521-login bug", issue.Title)
		assert.Equal(t, "**Assignee:** Jane Doe", issue.Body)
		assert.Equal(t, []string{"QA", "Awaiting Verification"}, issue.Labels)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should handle nil fields in issue", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := NewGitHubClientWithServices(mockIssues)

		mockIssues.On("Get", mock.Anything, "acme", "support-bridge", 3).
			Return(&github.Issue{Number: github.Ptr(3)}, responseWithStatus(http.StatusOK), nil)

		issue, err := client.GetIssue(context.Background(), "acme", "support-bridge", 3)

		require.NoError(t, err)
		assert.Empty(t, issue.Title)
		assert.Empty(t, issue.Body)
		assert.Empty(t, issue.Labels)
	})

	t.Run("should map status codes to domain errors", func(t *testing.T) {
		tests := []struct {
			code int
			want error
		}{
			{code: http.StatusNotFound, want: domainErrors.ErrIssueNotFound},
			{code: http.StatusGone, want: domainErrors.ErrIssueNotFound},
			{code: http.StatusUnauthorized, want: domainErrors.ErrGitHubTokenInvalid},
			{code: http.StatusForbidden, want: domainErrors.ErrGitHubInsufficientPerms},
			{code: http.StatusTooManyRequests, want: domainErrors.ErrGitHubRateLimit},
		}

		for _, tt := range tests {
			t.Run(http.StatusText(tt.code), func(t *testing.T) {
				mockIssues := &MockIssuesService{}
				client := NewGitHubClientWithServices(mockIssues)

				mockIssues.On("Get", mock.Anything, "acme", "support-bridge", 9).
					Return((*github.Issue)(nil), responseWithStatus(tt.code), errors.New("api error"))

				_, err := client.GetIssue(context.Background(), "acme", "support-bridge", 9)

				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			})
		}
	})

	t.Run("should wrap transport errors", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := NewGitHubClientWithServices(mockIssues)

		mockIssues.On("Get", mock.Anything, "acme", "support-bridge", 9).
			Return(nil, nil, assert.AnError)

		_, err := client.GetIssue(context.Background(), "acme", "support-bridge", 9)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error getting issue #9")
		assert.True(t, errors.Is(err, assert.AnError))
	})
}

func TestGitHubClient_CreateComment(t *testing.T) {
	t.Run("should post the comment body", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := NewGitHubClientWithServices(mockIssues)

		mockIssues.On("CreateComment", mock.Anything, "acme", "support-bridge", 17, mock.MatchedBy(func(c *github.IssueComment) bool {
			return c.GetBody() == "Zendesk ticket status has been set to qa."
		})).Return(&github.IssueComment{}, responseWithStatus(http.StatusCreated), nil)

		err := client.CreateComment(context.Background(), "acme", "support-bridge", 17, "Zendesk ticket status has been set to qa.")

		assert.NoError(t, err)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should return a comment error on transport failure", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := NewGitHubClientWithServices(mockIssues)

		mockIssues.On("CreateComment", mock.Anything, "acme", "support-bridge", 17, mock.Anything).
			Return(nil, nil, assert.AnError)

		err := client.CreateComment(context.Background(), "acme", "support-bridge", 17, "hi")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrCreateComment))
	})

	t.Run("should report missing permissions", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := NewGitHubClientWithServices(mockIssues)

		mockIssues.On("CreateComment", mock.Anything, "acme", "support-bridge", 17, mock.Anything).
			Return((*github.IssueComment)(nil), responseWithStatus(http.StatusForbidden), errors.New("forbidden"))

		err := client.CreateComment(context.Background(), "acme", "support-bridge", 17, "hi")

		assert.True(t, errors.Is(err, domainErrors.ErrGitHubInsufficientPerms))
	})
}

func TestNewGitHubClient_Enterprise(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"number": 5, "title": "12-x", "labels": [{"name": "QA"}]}`))
	}))
	defer server.Close()

	client, err := NewGitHubClient("ghs_test", server.URL+"/api/v3/")
	require.NoError(t, err)

	issue, err := client.GetIssue(context.Background(), "acme", "support-bridge", 5)

	require.NoError(t, err)
	assert.Equal(t, "/api/v3/repos/acme/support-bridge/issues/5", gotPath)
	assert.Equal(t, "Bearer ghs_test", gotAuth)
	assert.Equal(t, "12-x", issue.Title)
	assert.Equal(t, []string{"QA"}, issue.Labels)
}

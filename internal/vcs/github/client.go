package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
	"github.com/thomas-vilte/zendesk-sync/internal/logger"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
	"github.com/thomas-vilte/zendesk-sync/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.IssueTracker = (*GitHubClient)(nil)

const defaultAPIURL = "https://api.github.com"

type IssuesService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
}

// NewGitHubClient authenticates with token. apiURL selects a GitHub
// Enterprise Server instance; empty or the public API URL uses github.com.
func NewGitHubClient(token, apiURL string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if apiURL != "" && strings.TrimRight(apiURL, "/") != defaultAPIURL {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
	}

	return NewGitHubClientWithServices(client.Issues), nil
}

func NewGitHubClientWithServices(issuesService IssuesService) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
	}
}

func (ghc *GitHubClient) GetIssue(ctx context.Context, owner, repo string, number int) (*models.Issue, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github issue",
		"owner", owner,
		"repo", repo,
		"issue_number", number)

	issue, resp, err := ghc.issuesService.Get(ctx, owner, repo, number)
	if err != nil {
		if appErr := responseError(resp, "get issue", owner, repo, number); appErr != nil {
			return nil, appErr.WithError(err)
		}
		return nil, fmt.Errorf("error getting issue #%d: %w", number, err)
	}
	if issue == nil {
		return nil, domainErrors.ErrIssueNotFound.
			WithContext("issue_number", number).
			WithContext("repo", fmt.Sprintf("%s/%s", owner, repo))
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		if label.Name != nil {
			labels = append(labels, label.GetName())
		}
	}

	return &models.Issue{
		Number: number,
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		Labels: labels,
	}, nil
}

func (ghc *GitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	log := logger.FromContext(ctx)

	log.Debug("creating github issue comment",
		"owner", owner,
		"repo", repo,
		"issue_number", number)

	_, resp, err := ghc.issuesService.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		if appErr := responseError(resp, "create comment", owner, repo, number); appErr != nil {
			return appErr.WithError(err)
		}
		return domainErrors.ErrCreateComment.
			WithError(err).
			WithContext("issue_number", number)
	}

	return nil
}

// responseError maps API status codes to domain errors. It returns nil when
// the failure carries no response, such as a transport error.
func responseError(resp *github.Response, operation, owner, repo string, number int) *domainErrors.AppError {
	if resp == nil || resp.Response == nil {
		return nil
	}

	var base *domainErrors.AppError
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base = domainErrors.ErrGitHubTokenInvalid
	case http.StatusForbidden:
		if resp.Rate.Remaining == 0 && !resp.Rate.Reset.IsZero() {
			base = domainErrors.ErrGitHubRateLimit
		} else {
			base = domainErrors.ErrGitHubInsufficientPerms
		}
	case http.StatusTooManyRequests:
		base = domainErrors.ErrGitHubRateLimit
	case http.StatusNotFound, http.StatusGone:
		base = domainErrors.ErrIssueNotFound
	default:
		return nil
	}

	return base.
		WithContext("operation", operation).
		WithContext("issue_number", number).
		WithContext("repo", fmt.Sprintf("%s/%s", owner, repo)).
		WithContext("status", resp.Status)
}

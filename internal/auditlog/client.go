package auditlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
	"github.com/thomas-vilte/zendesk-sync/internal/logger"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
	"golang.org/x/oauth2"
)

// Client posts issue sync records to the audit log service with a bearer
// token obtained through RefreshTokenSource.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient wires the token exchange into an oauth2 transport. The transport
// and timeout of base serve both the exchange and the log post; nil means
// http.DefaultClient.
func NewClient(ctx context.Context, baseURL, refreshToken string, base *http.Client) *Client {
	if base == nil {
		base = http.DefaultClient
	}
	baseURL = strings.TrimRight(baseURL, "/")

	src := oauth2.ReuseTokenSource(nil, NewRefreshTokenSource(ctx, baseURL, refreshToken, base))

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &oauth2.Transport{Source: src, Base: base.Transport},
			Timeout:   base.Timeout,
		},
	}
}

func (c *Client) PostIssueLog(ctx context.Context, record models.AuditRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return domainErrors.ErrPostAuditLog.WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/githubissuelog", bytes.NewReader(body))
	if err != nil {
		return domainErrors.ErrPostAuditLog.WithError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug(ctx, "posting audit log",
		"ticket_id", record.ZendeskTicketID,
		"issue_number", record.GithubIssueNumber)

	resp, err := c.http.Do(req)
	if err != nil {
		// Token exchange failures surface here, already typed.
		return fmt.Errorf("audit log request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domainErrors.ErrPostAuditLog.
			WithError(fmt.Errorf("unexpected response: %s", resp.Status)).
			WithContext("status", resp.Status)
	}
	return nil
}

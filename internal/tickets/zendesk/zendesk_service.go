package zendesk

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
	"github.com/thomas-vilte/zendesk-sync/internal/httpclient"
	"github.com/thomas-vilte/zendesk-sync/internal/logger"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
	"github.com/thomas-vilte/zendesk-sync/internal/tickets"
)

var _ tickets.TicketUpdater = (*ZendeskService)(nil)

const apiPrefix = "/api/v2"

// ZendeskService updates tickets through the Zendesk REST API.
type ZendeskService struct {
	baseURL       string
	authorization string
	client        httpclient.HTTPClient
}

// NewZendeskService builds the service. With an email the token is sent as
// a Zendesk API token ("email/token:token"); without one it is used as an
// already encoded Basic credential.
func NewZendeskService(baseURL, email, token string, client httpclient.HTTPClient) *ZendeskService {
	return &ZendeskService{
		baseURL:       strings.TrimSuffix(strings.TrimRight(baseURL, "/"), apiPrefix),
		authorization: basicAuth(email, token),
		client:        client,
	}
}

type ticketEnvelope struct {
	Ticket models.UpdatePayload `json:"ticket"`
}

// UpdateTicket sends one PUT for ticketID. Failures are returned, not retried.
func (s *ZendeskService) UpdateTicket(ctx context.Context, ticketID int64, payload models.UpdatePayload) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(ticketEnvelope{Ticket: payload})
	if err != nil {
		return domainErrors.ErrUpdateTicket.WithError(err).WithContext("ticket_id", ticketID)
	}

	url := fmt.Sprintf("%s%s/tickets/%d.json", s.baseURL, apiPrefix, ticketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return domainErrors.ErrUpdateTicket.WithError(err).WithContext("ticket_id", ticketID)
	}
	req.Header.Set("Authorization", s.authorization)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug("updating zendesk ticket",
		"ticket_id", ticketID,
		"followers", len(payload.Followers))

	resp, err := s.client.Do(req)
	if err != nil {
		return domainErrors.ErrUpdateTicket.WithError(err).WithContext("ticket_id", ticketID)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug("error closing response body", "error", err)
		}
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))

	var base *domainErrors.AppError
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		base = domainErrors.ErrZendeskUnauthorized
	case http.StatusNotFound:
		base = domainErrors.ErrTicketNotFound
	case http.StatusTooManyRequests:
		base = domainErrors.ErrZendeskRateLimit.WithContext("retry_after", resp.Header.Get("Retry-After"))
	default:
		base = domainErrors.ErrUpdateTicket
	}

	return base.
		WithError(fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(detail)))).
		WithContext("ticket_id", ticketID).
		WithContext("status", resp.Status)
}

func basicAuth(email, token string) string {
	if email == "" {
		return "Basic " + token
	}
	credentials := fmt.Sprintf("%s/token:%s", email, token)
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

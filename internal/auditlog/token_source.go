package auditlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
	"github.com/thomas-vilte/zendesk-sync/internal/httpclient"
	"golang.org/x/oauth2"
)

// RefreshTokenSource exchanges a long-lived refresh token for a short-lived
// access token at {baseURL}/token/accesstoken.
type RefreshTokenSource struct {
	ctx          context.Context
	url          string
	refreshToken string
	client       httpclient.HTTPClient
}

func NewRefreshTokenSource(ctx context.Context, baseURL, refreshToken string, client httpclient.HTTPClient) *RefreshTokenSource {
	return &RefreshTokenSource{
		ctx:          ctx,
		url:          baseURL + "/token/accesstoken",
		refreshToken: refreshToken,
		client:       client,
	}
}

type tokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (s *RefreshTokenSource) Token() (*oauth2.Token, error) {
	body, err := json.Marshal(tokenRequest{RefreshToken: s.refreshToken})
	if err != nil {
		return nil, domainErrors.ErrTokenExchange.WithError(err)
	}

	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, domainErrors.ErrTokenExchange.WithError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domainErrors.ErrTokenExchange.WithError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainErrors.ErrTokenExchange.
			WithError(fmt.Errorf("unexpected response: %s", resp.Status)).
			WithContext("status", resp.Status)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, domainErrors.ErrTokenExchange.WithError(fmt.Errorf("error decoding token response: %w", err))
	}
	if tr.AccessToken == "" {
		return nil, domainErrors.ErrTokenExchange.WithError(fmt.Errorf("empty access token"))
	}

	// The service does not report an expiry; one token serves the whole run.
	return &oauth2.Token{AccessToken: tr.AccessToken, TokenType: "Bearer"}, nil
}

package zendesk

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
)

// MockHTTPClient is a mock for httpclient.HTTPClient
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func qaPayload() models.UpdatePayload {
	return models.UpdatePayload{
		CustomFields: []models.CustomFieldValue{{ID: 360012345, Value: models.StatusQA}},
	}
}

func TestUpdateTicket_Success(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ticket":{"id":4521}}`))
	}))
	defer server.Close()

	service := NewZendeskService(server.URL+"/", "agent@acme.io", "zd-secret", server.Client())

	err := service.UpdateTicket(context.Background(), 4521, qaPayload())

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/v2/tickets/4521.json", gotPath)
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("agent@acme.io/token:zd-secret"))
	assert.Equal(t, wantAuth, gotAuth)
	assert.JSONEq(t, `{"ticket":{"custom_fields":[{"id":360012345,"value":"qa"}]}}`, gotBody)
}

func TestUpdateTicket_WithFollowers(t *testing.T) {
	mockClient := new(MockHTTPClient)
	service := NewZendeskService("https://acme.zendesk.com/api/v2", "", "cHJlLWVuY29kZWQ=", mockClient)

	payload := qaPayload()
	payload.Followers = []models.Follower{{UserID: 9001}}

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		body, err := req.GetBody()
		if err != nil {
			return false
		}
		raw, _ := io.ReadAll(body)
		return req.URL.String() == "https://acme.zendesk.com/api/v2/tickets/900.json" &&
			req.Header.Get("Authorization") == "Basic cHJlLWVuY29kZWQ=" &&
			strings.Contains(string(raw), `"followers":[{"user_id":9001}]`)
	})).Return(&http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
	}, nil).Once()

	err := service.UpdateTicket(context.Background(), 900, payload)

	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestUpdateTicket_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		code int
		want error
	}{
		{name: "unauthorized", code: http.StatusUnauthorized, want: domainErrors.ErrZendeskUnauthorized},
		{name: "forbidden", code: http.StatusForbidden, want: domainErrors.ErrZendeskUnauthorized},
		{name: "not found", code: http.StatusNotFound, want: domainErrors.ErrTicketNotFound},
		{name: "rate limited", code: http.StatusTooManyRequests, want: domainErrors.ErrZendeskRateLimit},
		{name: "server error", code: http.StatusInternalServerError, want: domainErrors.ErrUpdateTicket},
		{name: "unprocessable", code: http.StatusUnprocessableEntity, want: domainErrors.ErrUpdateTicket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockHTTPClient)
			service := NewZendeskService("https://acme.zendesk.com", "agent@acme.io", "zd-secret", mockClient)

			mockClient.On("Do", mock.Anything).Return(&http.Response{
				StatusCode: tt.code,
				Status:     http.StatusText(tt.code),
				Header:     http.Header{},
				Body:       io.NopCloser(strings.NewReader(`{"error":"nope"}`)),
			}, nil).Once()

			err := service.UpdateTicket(context.Background(), 1, qaPayload())

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestUpdateTicket_TransportError(t *testing.T) {
	mockClient := new(MockHTTPClient)
	service := NewZendeskService("https://acme.zendesk.com", "agent@acme.io", "zd-secret", mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection reset")).Once()

	err := service.UpdateTicket(context.Background(), 1, qaPayload())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrUpdateTicket))
	assert.Contains(t, err.Error(), "connection reset")
	mockClient.AssertExpectations(t)
}

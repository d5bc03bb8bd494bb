package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("original error")
	appErr := ErrUpdateTicket.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeTicketing {
		t.Errorf("Expected type %s, got %s", TypeTicketing, appErr.Type)
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrIssueNotFound.WithContext("issue_number", 42).WithContext("status", "404 Not Found")

	if appErr.Context["issue_number"] != 42 {
		t.Errorf("Expected issue_number context 42, got %v", appErr.Context["issue_number"])
	}

	if appErr.Context["status"] != "404 Not Found" {
		t.Errorf("Expected status context '404 Not Found', got %v", appErr.Context["status"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name: "Simple error without underlying error",
			err:  ErrIssueNumberMissing,
			contains: []string{
				"CONFIGURATION",
				"no issue number found",
			},
		},
		{
			name: "Error with underlying error",
			err:  ErrTokenExchange.WithError(errors.New("connection refused")),
			contains: []string{
				"AUDIT",
				"audit log token exchange failed",
				"connection refused",
			},
		},
		{
			name: "Error with status context",
			err: ErrUpdateTicket.WithError(errors.New("unexpected response")).
				WithContext("ticket_id", int64(4521)).
				WithContext("status", "500 Internal Server Error"),
			contains: []string{
				"TICKETING",
				"failed to update Zendesk ticket",
				"unexpected response",
				"500 Internal Server Error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errMsg, substr) {
					t.Errorf("Expected error message to contain %q, got: %s", substr, errMsg)
				}
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	baseErr := errors.New("base error")
	appErr := ErrCreateComment.WithError(baseErr)

	unwrapped := appErr.Unwrap()
	if unwrapped != baseErr {
		t.Errorf("Expected unwrapped error to be %v, got %v", baseErr, unwrapped)
	}

	if !errors.Is(appErr, baseErr) {
		t.Error("errors.Is should work with AppError")
	}
}

func TestAppError_IsSentinel(t *testing.T) {
	derived := ErrTicketNotFound.WithError(errors.New("404")).WithContext("ticket_id", int64(1))

	if !errors.Is(derived, ErrTicketNotFound) {
		t.Error("derived error should match its sentinel")
	}
	if errors.Is(derived, ErrZendeskUnauthorized) {
		t.Error("derived error should not match a different sentinel")
	}
}

func TestAppError_ChainedContext(t *testing.T) {
	appErr := ErrUpdateTicket.
		WithError(errors.New("timeout")).
		WithContext("ticket_id", int64(900)).
		WithContext("case_status", "qa")

	if appErr.Context["ticket_id"] != int64(900) {
		t.Errorf("Expected ticket_id context, got %v", appErr.Context["ticket_id"])
	}

	if appErr.Context["case_status"] != "qa" {
		t.Errorf("Expected case_status context, got %v", appErr.Context["case_status"])
	}

	// Ensure we didn't modify the original error
	if ErrUpdateTicket.Context != nil {
		t.Error("Original error should not have context")
	}
}

package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypeTicketing     ErrorType = "TICKETING"
	TypeAudit         ErrorType = "AUDIT"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status"].(string); ok && status != "" {
			msg += fmt.Sprintf(" - %s", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on type and message so that errors derived from the sentinels
// below via WithError/WithContext still satisfy errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrGitHubTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
				WithSuggestion("Pass the workflow token: with: token: ${{ secrets.GITHUB_TOKEN }}")

	ErrZendeskURLMissing = NewAppError(TypeConfiguration, "Zendesk base URL is missing", nil).
				WithSuggestion("Set the zendesk-base-url input, e.g. https://acme.zendesk.com")

	ErrZendeskTokenMissing = NewAppError(TypeConfiguration, "Zendesk API token is missing", nil).
				WithSuggestion("Store the API token as a secret and pass it as zendesk-token")

	ErrFieldIDMissing = NewAppError(TypeConfiguration, "case status custom field id is missing", nil).
				WithSuggestion("Set case-status-field-id to the numeric id of the Zendesk custom field")

	ErrRepositoryMissing = NewAppError(TypeConfiguration, "repository coordinates are missing", nil).
				WithSuggestion("GITHUB_REPOSITORY must be set to owner/name")

	ErrInvalidStatusTable = NewAppError(TypeConfiguration, "status table is invalid", nil).
				WithSuggestion("Use a YAML map of label name to one of: qa, programming, programmer-returned, programmer-resolved")

	ErrIssueNumberMissing = NewAppError(TypeConfiguration, "no issue number found", nil).
				WithSuggestion("Trigger on issue events or pass the issue-number input")

	ErrEventPayload = NewAppError(TypeConfiguration, "event payload could not be read", nil)
)

// GitHub errors
var (
	ErrIssueNotFound = NewAppError(TypeVCS, "issue not found", nil).
				WithSuggestion("Check the issue number and that the token can read this repository")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil)

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Grant the workflow 'issues: write' permission")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil)

	ErrCreateComment = NewAppError(TypeVCS, "failed to create issue comment", nil)
)

// Zendesk errors
var (
	ErrZendeskUnauthorized = NewAppError(TypeTicketing, "Zendesk rejected the credentials", nil).
				WithSuggestion("Check zendesk-token and zendesk-email")

	ErrTicketNotFound = NewAppError(TypeTicketing, "Zendesk ticket not found", nil).
				WithSuggestion("The number before the first '-' in the issue title must be a Zendesk ticket id")

	ErrZendeskRateLimit = NewAppError(TypeTicketing, "Zendesk API rate limit exceeded", nil)

	ErrUpdateTicket = NewAppError(TypeTicketing, "failed to update Zendesk ticket", nil)
)

// Audit log errors
var (
	ErrTokenExchange = NewAppError(TypeAudit, "audit log token exchange failed", nil)

	ErrPostAuditLog = NewAppError(TypeAudit, "failed to post audit log", nil)
)

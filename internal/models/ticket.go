package models

// CaseStatus is the value written to the Zendesk case status custom field.
type CaseStatus string

const (
	StatusQA                 CaseStatus = "qa"
	StatusProgramming        CaseStatus = "programming"
	StatusProgrammerReturned CaseStatus = "programmer-returned"
	StatusProgrammerResolved CaseStatus = "programmer-resolved"
)

// KnownStatuses lists every value the custom field accepts.
var KnownStatuses = []CaseStatus{
	StatusQA,
	StatusProgramming,
	StatusProgrammerReturned,
	StatusProgrammerResolved,
}

func (s CaseStatus) Valid() bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

func (s CaseStatus) String() string {
	return string(s)
}

type (
	// UpdatePayload is the ticket object sent to Zendesk.
	UpdatePayload struct {
		CustomFields []CustomFieldValue `json:"custom_fields"`
		Followers    []Follower         `json:"followers,omitempty"`
	}

	CustomFieldValue struct {
		ID    int64      `json:"id"`
		Value CaseStatus `json:"value"`
	}

	Follower struct {
		UserID int64 `json:"user_id"`
	}
)

// AuditRecord is the body accepted by the audit log service.
type AuditRecord struct {
	ZendeskTicketID   int64      `json:"ZendeskTicketId"`
	GithubIssueNumber int        `json:"GithubIssueNumber"`
	CaseStatus        CaseStatus `json:"CaseStatus"`
	SupportRep        string     `json:"SupportRep"`
}

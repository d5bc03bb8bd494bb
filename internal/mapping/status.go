package mapping

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
)

// StatusTable is a read-only lookup from a trigger key (label name or
// project column id) to a case status. It is built once at startup.
type StatusTable[K comparable] struct {
	entries map[K]models.CaseStatus
}

type (
	LabelTable  = StatusTable[string]
	ColumnTable = StatusTable[int64]
)

// NewStatusTable copies entries and rejects statuses the custom field does
// not accept.
func NewStatusTable[K comparable](entries map[K]models.CaseStatus) (StatusTable[K], error) {
	copied := make(map[K]models.CaseStatus, len(entries))
	for k, status := range entries {
		if !status.Valid() {
			return StatusTable[K]{}, domainErrors.ErrInvalidStatusTable.
				WithContext("key", fmt.Sprint(k)).
				WithContext("status", string(status))
		}
		copied[k] = status
	}
	return StatusTable[K]{entries: copied}, nil
}

func (t StatusTable[K]) Lookup(key K) (models.CaseStatus, bool) {
	status, ok := t.entries[key]
	return status, ok
}

func (t StatusTable[K]) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table.
func (t StatusTable[K]) Entries() map[K]models.CaseStatus {
	out := make(map[K]models.CaseStatus, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

func DefaultLabelStatuses() map[string]models.CaseStatus {
	return map[string]models.CaseStatus{
		"Awaiting Verification": models.StatusProgrammerResolved,
		"QA":                    models.StatusQA,
		"Returned to Support":   models.StatusProgrammerReturned,
	}
}

var defaultLabels, _ = NewStatusTable(DefaultLabelStatuses())

// MapLabelToStatus looks a label up in the default table.
func MapLabelToStatus(label string) (models.CaseStatus, bool) {
	return defaultLabels.Lookup(label)
}

// ParseStatusTable decodes a YAML map such as
//
//	QA: qa
//	Returned to Support: programmer-returned
//
// Blank input yields an empty map.
func ParseStatusTable[K comparable](text string) (map[K]models.CaseStatus, error) {
	if strings.TrimSpace(text) == "" {
		return map[K]models.CaseStatus{}, nil
	}

	var raw map[K]string
	if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, domainErrors.ErrInvalidStatusTable.WithError(err)
	}

	out := make(map[K]models.CaseStatus, len(raw))
	for k, v := range raw {
		out[k] = models.CaseStatus(strings.TrimSpace(v))
	}
	return out, nil
}

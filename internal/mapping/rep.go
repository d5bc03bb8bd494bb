package mapping

import "strings"

const (
	AssigneeMarker = "**Assignee:**"
	UnknownRep     = "unknown"
)

// ExtractRepFromBody returns the support rep named on the single
// "**Assignee:**" line of an issue body, or UnknownRep when there is no such
// line or more than one.
func ExtractRepFromBody(body string) string {
	var matches []string
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(line, AssigneeMarker) {
			matches = append(matches, line)
		}
	}

	if len(matches) != 1 {
		return UnknownRep
	}

	_, rep, _ := strings.Cut(matches[0], AssigneeMarker)
	rep = strings.TrimSpace(rep)
	if rep == "" {
		return UnknownRep
	}
	return rep
}

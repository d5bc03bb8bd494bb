package mapping

import (
	"strconv"
	"strings"
)

// ExtractTicketID reads the Zendesk ticket id from an issue title of the
// form "<id>-<summary>". The boolean is false when the title has no "-" or
// the text before it is not a non-negative integer.
func ExtractTicketID(title string) (int64, bool) {
	prefix, _, found := strings.Cut(title, "-")
	if !found {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimSpace(prefix), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

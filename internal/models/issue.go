package models

// Issue is the subset of a GitHub issue the sync reads.
type Issue struct {
	Number int
	Title  string
	Body   string
	Labels []string
}

func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// TriggerEvent identifies what started the run. Optional values are zero
// when the payload does not carry them.
type TriggerEvent struct {
	Owner string
	Repo  string
	// Action is the payload action, such as "labeled" or "unlabeled".
	Action      string
	IssueNumber int
	Label       string
	// ProjectCardURL and ColumnID come from project_card events.
	ProjectCardURL string
	ColumnID       int64
}

// ActionUnlabeled is the payload action of a label removal.
const ActionUnlabeled = "unlabeled"

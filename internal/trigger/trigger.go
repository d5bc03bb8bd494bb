package trigger

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/go-github/v80/github"
	"github.com/sethvargo/go-githubactions"
	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
)

type projectCard struct {
	ContentURL string `json:"content_url"`
	ColumnID   int64  `json:"column_id"`
}

// payload holds the fields of issues, label and project_card events that the
// sync reads.
type payload struct {
	Action      string             `json:"action"`
	Issue       *github.Issue      `json:"issue"`
	Label       *github.Label      `json:"label"`
	Repository  *github.Repository `json:"repository"`
	ProjectCard *projectCard       `json:"project_card"`
}

// FromContext builds the trigger from the workflow run context.
func FromContext(ghCtx *githubactions.GitHubContext) (models.TriggerEvent, error) {
	raw, err := json.Marshal(ghCtx.Event)
	if err != nil {
		return models.TriggerEvent{}, domainErrors.ErrEventPayload.
			WithError(err).
			WithContext("event_name", ghCtx.EventName)
	}
	return FromPayload(ghCtx.Repository, raw)
}

// FromPayload decodes a webhook payload. repository is the "owner/name"
// fallback used when the payload carries no repository object.
func FromPayload(repository string, raw []byte) (models.TriggerEvent, error) {
	var p payload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return models.TriggerEvent{}, domainErrors.ErrEventPayload.WithError(err)
		}
	}

	var ev models.TriggerEvent
	if p.Repository != nil {
		ev.Owner = p.Repository.GetOwner().GetLogin()
		ev.Repo = p.Repository.GetName()
	}
	if ev.Owner == "" || ev.Repo == "" {
		if owner, repo, ok := strings.Cut(repository, "/"); ok {
			ev.Owner, ev.Repo = owner, repo
		}
	}
	if ev.Owner == "" || ev.Repo == "" {
		return models.TriggerEvent{}, domainErrors.ErrRepositoryMissing.
			WithContext("repository", repository)
	}

	ev.Action = p.Action
	ev.IssueNumber = p.Issue.GetNumber()
	ev.Label = p.Label.GetName()
	if p.ProjectCard != nil {
		ev.ProjectCardURL = p.ProjectCard.ContentURL
		ev.ColumnID = p.ProjectCard.ColumnID
	}

	return ev, nil
}

// ResolveIssueNumber picks the issue to act on: a non-empty override wins,
// then the issue in the payload, then the issue a project card points to.
// An override that is not a positive number resolves to nothing.
func ResolveIssueNumber(override string, ev models.TriggerEvent) (int, bool) {
	if override = strings.TrimSpace(override); override != "" {
		return parseIssueNumber(override)
	}

	if ev.IssueNumber > 0 {
		return ev.IssueNumber, true
	}

	if ev.ProjectCardURL != "" {
		segments := strings.Split(strings.TrimRight(ev.ProjectCardURL, "/"), "/")
		return parseIssueNumber(segments[len(segments)-1])
	}

	return 0, false
}

func parseIssueNumber(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

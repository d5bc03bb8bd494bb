package services

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
	"github.com/thomas-vilte/zendesk-sync/internal/i18n"
	"github.com/thomas-vilte/zendesk-sync/internal/logger"
	"github.com/thomas-vilte/zendesk-sync/internal/mapping"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
	"github.com/thomas-vilte/zendesk-sync/internal/tickets"
	"github.com/thomas-vilte/zendesk-sync/internal/trigger"
	"github.com/thomas-vilte/zendesk-sync/internal/vcs"
)

// AuditLogger records a completed status change with an external service.
type AuditLogger interface {
	PostIssueLog(ctx context.Context, record models.AuditRecord) error
}

type SyncOptions struct {
	CaseStatusFieldID int64
	FollowerID        int64
	// IssueNumberOverride takes precedence over the event payload.
	IssueNumberOverride string
	Labels              mapping.LabelTable
	Columns             mapping.ColumnTable
}

// SyncService runs the issue to ticket pipeline once per trigger.
type SyncService struct {
	issues  vcs.IssueTracker
	tickets tickets.TicketUpdater
	audit   AuditLogger
	trans   *i18n.Translations
	opts    SyncOptions
}

// NewSyncService builds the pipeline. audit may be nil to skip audit logging.
func NewSyncService(issues vcs.IssueTracker, ticketUpdater tickets.TicketUpdater, audit AuditLogger, trans *i18n.Translations, opts SyncOptions) *SyncService {
	return &SyncService{
		issues:  issues,
		tickets: ticketUpdater,
		audit:   audit,
		trans:   trans,
		opts:    opts,
	}
}

// Run executes the steps in order and stops at the first step that leaves
// nothing to do. The returned error is non-nil only for the failed state.
func (s *SyncService) Run(ctx context.Context, ev models.TriggerEvent) (*models.RunResult, error) {
	start := time.Now()
	result := &models.RunResult{}

	number, ok := trigger.ResolveIssueNumber(s.opts.IssueNumberOverride, ev)
	if !ok {
		return s.fail(ctx, result, domainErrors.ErrIssueNumberMissing.
			WithContext("override", s.opts.IssueNumberOverride))
	}
	result.IssueNumber = number
	ctx = logger.With(ctx, "issue_number", number)

	issue, err := s.issues.GetIssue(ctx, ev.Owner, ev.Repo, number)
	if err != nil {
		return s.fail(ctx, result, err)
	}
	logger.Info(ctx, "fetched issue", "title", issue.Title, "labels", len(issue.Labels))

	status, reason, ok := s.resolveStatus(ev)
	if !ok {
		return s.noop(ctx, result, reason)
	}
	result.Status = status

	ticketID, ok := mapping.ExtractTicketID(issue.Title)
	if !ok {
		logger.Warn(ctx, "no zendesk ticket id in issue title", "title", issue.Title)
		return s.noop(ctx, result, "issue title does not start with a ticket id")
	}
	result.TicketID = ticketID
	result.Rep = mapping.ExtractRepFromBody(issue.Body)
	ctx = logger.With(ctx, "ticket_id", ticketID, "case_status", string(status))

	payload := mapping.BuildPayload(status, *issue, s.opts.CaseStatusFieldID, s.opts.FollowerID)
	updateErr := s.tickets.UpdateTicket(ctx, ticketID, payload)
	if updateErr != nil {
		logger.Error(ctx, "zendesk ticket update failed", updateErr)
		result.Comment = s.trans.GetMessage("comment.update_failed", 0, map[string]interface{}{
			"TicketID": ticketID,
			"Status":   string(status),
		})
	} else {
		logger.Info(ctx, "zendesk ticket updated", "followers", len(payload.Followers))
		result.Comment = s.trans.GetMessage("comment.status_set", 0, map[string]interface{}{
			"Status": string(status),
		})

		if s.audit != nil {
			bestEffort(ctx, result, "audit_log", func(ctx context.Context) error {
				return s.audit.PostIssueLog(ctx, models.AuditRecord{
					ZendeskTicketID:   ticketID,
					GithubIssueNumber: number,
					CaseStatus:        status,
					SupportRep:        result.Rep,
				})
			})
		}
	}

	bestEffort(ctx, result, "comment", func(ctx context.Context) error {
		return s.issues.CreateComment(ctx, ev.Owner, ev.Repo, number, result.Comment)
	})

	if updateErr != nil {
		result.State = models.StateFailed
		result.Reason = "ticket update failed"
		return result, fmt.Errorf("ticket %d: %w", ticketID, updateErr)
	}

	result.State = models.StateCompleted
	logger.Info(ctx, "sync completed",
		"discarded", len(result.Discarded),
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

// resolveStatus maps the triggering label, or the project column when the
// event has no label. Removing a label never changes the ticket.
func (s *SyncService) resolveStatus(ev models.TriggerEvent) (models.CaseStatus, string, bool) {
	if ev.Action == models.ActionUnlabeled {
		return "", fmt.Sprintf("label %q was removed", ev.Label), false
	}

	if ev.Label != "" {
		if status, ok := s.opts.Labels.Lookup(ev.Label); ok {
			return status, "", true
		}
		return "", fmt.Sprintf("label %q is not mapped to a case status", ev.Label), false
	}

	if ev.ColumnID != 0 {
		if status, ok := s.opts.Columns.Lookup(ev.ColumnID); ok {
			return status, "", true
		}
		return "", fmt.Sprintf("project column %d is not mapped to a case status", ev.ColumnID), false
	}

	return "", "event carries no label", false
}

func (s *SyncService) fail(ctx context.Context, result *models.RunResult, err error) (*models.RunResult, error) {
	logger.Error(ctx, "sync failed", err)
	result.State = models.StateFailed
	result.Reason = err.Error()
	return result, err
}

func (s *SyncService) noop(ctx context.Context, result *models.RunResult, reason string) (*models.RunResult, error) {
	logger.Notice(ctx, "no action taken", "reason", reason)
	result.State = models.StateNoOp
	result.Reason = reason
	return result, nil
}

// bestEffort runs a step whose failure must not change the outcome of the
// run. The error is logged and recorded on the result, then dropped.
func bestEffort(ctx context.Context, result *models.RunResult, step string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		logger.Warn(ctx, "step failed, continuing", "step", step, "error", err)
		result.Discard(step, err)
	}
}

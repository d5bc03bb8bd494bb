package run

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sethvargo/go-githubactions"
	"github.com/thomas-vilte/zendesk-sync/internal/auditlog"
	"github.com/thomas-vilte/zendesk-sync/internal/cli/registry"
	"github.com/thomas-vilte/zendesk-sync/internal/config"
	"github.com/thomas-vilte/zendesk-sync/internal/i18n"
	"github.com/thomas-vilte/zendesk-sync/internal/logger"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
	"github.com/thomas-vilte/zendesk-sync/internal/services"
	"github.com/thomas-vilte/zendesk-sync/internal/tickets/zendesk"
	"github.com/thomas-vilte/zendesk-sync/internal/trigger"
	"github.com/thomas-vilte/zendesk-sync/internal/vcs/github"
	"github.com/urfave/cli/v3"
)

// Output names, as declared in action.yml.
const (
	OutputResult     = "result"
	OutputTicketID   = "ticket-id"
	OutputCaseStatus = "case-status"
)

type RunCommandFactory struct {
	action     *githubactions.Action
	httpClient *http.Client
}

// NewRunCommandFactory builds the run command. httpClient is shared by the
// Zendesk and audit log clients; nil means http.DefaultClient.
func NewRunCommandFactory(action *githubactions.Action, httpClient *http.Client) *RunCommandFactory {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RunCommandFactory{
		action:     action,
		httpClient: httpClient,
	}
}

func (f *RunCommandFactory) CreateCommand(t *i18n.Translations, load registry.ConfigLoader) *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  t.GetMessage("run.usage", 0, nil),
		Action: f.Action(t, load),
	}
}

// Action is exposed so the root command can run the sync when no command
// is given.
func (f *RunCommandFactory) Action(t *i18n.Translations, load registry.ConfigLoader) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := load(cmd)
		if err != nil {
			return err
		}
		for _, secret := range cfg.Secrets() {
			f.action.AddMask(secret)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if n := cmd.String("issue-number"); n != "" {
			cfg.IssueNumber = n
		}

		ghCtx, err := f.action.Context()
		if err != nil {
			return fmt.Errorf("error reading workflow context: %w", err)
		}
		ev, err := trigger.FromContext(ghCtx)
		if err != nil {
			return err
		}
		ctx = logger.With(ctx, "event", ghCtx.EventName, "repository", ev.Owner+"/"+ev.Repo)

		svc, err := f.buildService(ctx, cfg, ghCtx.APIURL, commentTranslations(ctx, cfg.Language, t))
		if err != nil {
			return err
		}

		result, runErr := svc.Run(ctx, ev)
		f.setOutputs(result)
		return runErr
	}
}

func (f *RunCommandFactory) buildService(ctx context.Context, cfg *config.Config, contextAPIURL string, t *i18n.Translations) (*services.SyncService, error) {
	apiURL := cfg.GitHubAPIURL
	if apiURL == "" {
		apiURL = contextAPIURL
	}
	gh, err := github.NewGitHubClient(cfg.GitHubToken, apiURL)
	if err != nil {
		return nil, err
	}

	zd := zendesk.NewZendeskService(cfg.Zendesk.BaseURL, cfg.Zendesk.Email, cfg.Zendesk.Token, f.httpClient)

	var audit services.AuditLogger
	if cfg.AuditEnabled() {
		audit = auditlog.NewClient(ctx, cfg.Audit.URL, cfg.Audit.RefreshToken, f.httpClient)
	} else {
		logger.Debug(ctx, "audit log disabled")
	}

	return services.NewSyncService(gh, zd, audit, t, services.SyncOptions{
		CaseStatusFieldID:   cfg.Zendesk.CaseStatusFieldID,
		FollowerID:          cfg.Zendesk.FollowerID,
		IssueNumberOverride: cfg.IssueNumber,
		Labels:              cfg.LabelStatuses,
		Columns:             cfg.ColumnStatuses,
	}), nil
}

// commentTranslations loads the configured comment language. An unsupported
// language keeps the translations the command was built with.
func commentTranslations(ctx context.Context, lang string, fallback *i18n.Translations) *i18n.Translations {
	if lang == "" {
		return fallback
	}
	t, err := i18n.NewTranslations(lang)
	if err != nil {
		logger.Warn(ctx, "comment language not supported, using default", "language", lang, "error", err)
		return fallback
	}
	return t
}

func (f *RunCommandFactory) setOutputs(result *models.RunResult) {
	if result == nil {
		return
	}
	f.action.SetOutput(OutputResult, string(result.State))
	if result.State != models.StateNoOp && result.Status != "" {
		f.action.SetOutput(OutputTicketID, strconv.FormatInt(result.TicketID, 10))
		f.action.SetOutput(OutputCaseStatus, string(result.Status))
	}
}

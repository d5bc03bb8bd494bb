package app

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sethvargo/go-githubactions"
	"github.com/thomas-vilte/zendesk-sync/internal/cli/command/labels"
	"github.com/thomas-vilte/zendesk-sync/internal/cli/command/run"
	"github.com/thomas-vilte/zendesk-sync/internal/cli/command/version"
	"github.com/thomas-vilte/zendesk-sync/internal/cli/registry"
	"github.com/thomas-vilte/zendesk-sync/internal/config"
	"github.com/thomas-vilte/zendesk-sync/internal/i18n"
	"github.com/thomas-vilte/zendesk-sync/internal/logger"
	appversion "github.com/thomas-vilte/zendesk-sync/internal/version"
	"github.com/urfave/cli/v3"
)

type Options struct {
	Action       *githubactions.Action
	HTTPClient   *http.Client
	Translations *i18n.Translations
	// Workflow routes logs through workflow commands instead of the
	// terminal handler.
	Workflow bool
	// RunnerDebug is set when the workflow was re-run with debug logging.
	RunnerDebug bool
}

// New builds the root command. Running it without a command runs the sync.
func New(opts Options) (*cli.Command, error) {
	t := opts.Translations
	load := func(cmd *cli.Command) (*config.Config, error) {
		return config.Load(opts.Action, cmd.String("config"))
	}

	runFactory := run.NewRunCommandFactory(opts.Action, opts.HTTPClient)

	reg := registry.NewRegistry(load, t)
	if err := reg.Register("run", runFactory); err != nil {
		return nil, err
	}
	if err := reg.Register("labels", labels.NewLabelsCommandFactory()); err != nil {
		return nil, err
	}
	if err := reg.Register("version", version.NewVersionCommandFactory()); err != nil {
		return nil, err
	}

	return &cli.Command{
		Name:        "zendesk-sync",
		Usage:       t.GetMessage("app_usage", 0, nil),
		Description: t.GetMessage("app_description", 0, nil),
		Version:     appversion.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: t.GetMessage("run.flag_config", 0, nil),
			},
			&cli.StringFlag{
				Name:  "issue-number",
				Usage: t.GetMessage("run.flag_issue_number", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: t.GetMessage("run.flag_debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: t.GetMessage("run.flag_verbose", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logOpts := logger.Options{
				Debug:   cmd.Bool("debug") || opts.RunnerDebug,
				Verbose: cmd.Bool("verbose"),
				Writer:  cmd.Root().ErrWriter,
			}
			if opts.Workflow {
				logOpts.Action = opts.Action
			}
			l := logger.Initialize(logOpts).With("run_id", uuid.NewString())
			return logger.WithLogger(ctx, l), nil
		},
		Action:   runFactory.Action(t, load),
		Commands: reg.CreateCommands(),
	}, nil
}

package version

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/zendesk-sync/internal/cli/registry"
	"github.com/thomas-vilte/zendesk-sync/internal/i18n"
	appversion "github.com/thomas-vilte/zendesk-sync/internal/version"
	"github.com/urfave/cli/v3"
)

type VersionCommandFactory struct{}

func NewVersionCommandFactory() *VersionCommandFactory {
	return &VersionCommandFactory{}
}

func (f *VersionCommandFactory) CreateCommand(t *i18n.Translations, _ registry.ConfigLoader) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: t.GetMessage("version.usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, appversion.FullVersion())
			return err
		},
	}
}

package labels

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/zendesk-sync/internal/cli/registry"
	"github.com/thomas-vilte/zendesk-sync/internal/i18n"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

type statusTables struct {
	Labels  map[string]string `yaml:"label-statuses"`
	Columns map[int64]string  `yaml:"column-statuses"`
}

type LabelsCommandFactory struct{}

func NewLabelsCommandFactory() *LabelsCommandFactory {
	return &LabelsCommandFactory{}
}

func (f *LabelsCommandFactory) CreateCommand(t *i18n.Translations, load registry.ConfigLoader) *cli.Command {
	return &cli.Command{
		Name:  "labels",
		Usage: t.GetMessage("labels.usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			out := statusTables{
				Labels:  make(map[string]string, cfg.LabelStatuses.Len()),
				Columns: make(map[int64]string, cfg.ColumnStatuses.Len()),
			}
			for k, v := range cfg.LabelStatuses.Entries() {
				out.Labels[k] = string(v)
			}
			for k, v := range cfg.ColumnStatuses.Entries() {
				out.Columns[k] = string(v)
			}

			data, err := yaml.Marshal(out)
			if err != nil {
				return fmt.Errorf("error encoding status tables: %w", err)
			}
			_, err = cmd.Root().Writer.Write(data)
			return err
		},
	}
}

package registry

import (
	"fmt"

	"github.com/thomas-vilte/zendesk-sync/internal/config"
	"github.com/thomas-vilte/zendesk-sync/internal/i18n"
	"github.com/urfave/cli/v3"
)

// ConfigLoader resolves the configuration for the command being run. It is
// called lazily so that flags such as --config are already parsed.
type ConfigLoader func(cmd *cli.Command) (*config.Config, error)

type CommandFactory interface {
	CreateCommand(t *i18n.Translations, load ConfigLoader) *cli.Command
}

type Registry struct {
	factories map[string]CommandFactory
	order     []string
	load      ConfigLoader
	t         *i18n.Translations
}

func NewRegistry(load ConfigLoader, t *i18n.Translations) *Registry {
	return &Registry{
		factories: make(map[string]CommandFactory),
		load:      load,
		t:         t,
	}
}

func (r *Registry) Register(name string, factory CommandFactory) error {
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("command factory %q already registered", name)
	}
	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

// CreateCommands builds the commands in registration order.
func (r *Registry) CreateCommands() []*cli.Command {
	commands := make([]*cli.Command, 0, len(r.order))
	for _, name := range r.order {
		commands = append(commands, r.factories[name].CreateCommand(r.t, r.load))
	}
	return commands
}

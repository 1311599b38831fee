package registry

import (
	"fmt"

	"github.com/urfave/cli/v3"

	cfg "github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/i18n"
)

type CommandFactory interface {
	CreateCommand(t *i18n.Translations, cfg *cfg.Config) *cli.Command
}

type Registry struct {
	factories map[string]CommandFactory
	order     []string
	config    *cfg.Config
	t         *i18n.Translations
}

func NewRegistry(cfg *cfg.Config, t *i18n.Translations) *Registry {
	return &Registry{
		factories: make(map[string]CommandFactory),
		config:    cfg,
		t:         t,
	}
}

func (r *Registry) Register(name string, factory CommandFactory) error {
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("command factory '%s' already registered", name)
	}
	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

// CreateCommands materializes the registered factories in registration
// order.
func (r *Registry) CreateCommands() []*cli.Command {
	commands := make([]*cli.Command, 0, len(r.factories))
	for _, name := range r.order {
		commands = append(commands, r.factories[name].CreateCommand(r.t, r.config))
	}
	return commands
}

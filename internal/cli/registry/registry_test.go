package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/i18n"
)

type mockCommandFactory struct {
	name string
}

func (m *mockCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name: m.name,
	}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	cfg := &config.Config{}
	translations, err := i18n.NewTranslations("en")
	assert.NoError(t, err)
	return NewRegistry(cfg, translations)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register new factory successfully", func(t *testing.T) {
		registry := newTestRegistry(t)
		factory := &mockCommandFactory{name: "mock-command"}

		// act
		err := registry.Register("test-command", factory)

		// assert
		assert.NoError(t, err)
		assert.Len(t, registry.factories, 1)
		assert.Contains(t, registry.factories, "test-command")
	})

	t.Run("should return error when registering duplicate factory", func(t *testing.T) {
		// arrange
		registry := newTestRegistry(t)
		factory := &mockCommandFactory{name: "mock-command"}

		// act
		_ = registry.Register("test-command", factory)
		err := registry.Register("test-command", factory)

		// assert
		assert.Error(t, err)
		assert.Len(t, registry.factories, 1)
	})
}

func TestRegistry_CreateCommands(t *testing.T) {
	t.Run("should create commands in registration order", func(t *testing.T) {
		// Arrange
		registry := newTestRegistry(t)

		_ = registry.Register("parse", &mockCommandFactory{name: "parse"})
		_ = registry.Register("evaluate", &mockCommandFactory{name: "evaluate"})
		_ = registry.Register("ticket", &mockCommandFactory{name: "ticket"})

		// Act
		commands := registry.CreateCommands()

		// Assert
		assert.Len(t, commands, 3)
		assert.Equal(t, "parse", commands[0].Name)
		assert.Equal(t, "evaluate", commands[1].Name)
		assert.Equal(t, "ticket", commands[2].Name)
	})

	t.Run("should return empty slice when no factories registered", func(t *testing.T) {
		// Arrange
		registry := newTestRegistry(t)

		// Act
		commands := registry.CreateCommands()

		// Assert
		assert.Empty(t, commands)
	})
}

func TestNewRegistry(t *testing.T) {
	t.Run("should create new registry with empty factories", func(t *testing.T) {
		// Arrange
		cfg := &config.Config{}
		translations, err := i18n.NewTranslations("en")
		assert.NoError(t, err)

		// Act
		registry := NewRegistry(cfg, translations)

		// Assert
		assert.NotNil(t, registry)
		assert.Empty(t, registry.factories)
		assert.Equal(t, cfg, registry.config)
		assert.Equal(t, translations, registry.t)
	})
}

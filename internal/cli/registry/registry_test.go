package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/zendesk-sync/internal/config"
	"github.com/thomas-vilte/zendesk-sync/internal/i18n"
	"github.com/urfave/cli/v3"
)

type mockCommandFactory struct {
	name string
}

func (m *mockCommandFactory) CreateCommand(_ *i18n.Translations, _ ConfigLoader) *cli.Command {
	return &cli.Command{
		Name: m.name,
	}
}

func noConfig(_ *cli.Command) (*config.Config, error) {
	return &config.Config{}, nil
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register new factory successfully", func(t *testing.T) {
		// arrange
		translations, err := i18n.NewTranslations("en")
		require.NoError(t, err)
		registry := NewRegistry(noConfig, translations)

		// act
		err = registry.Register("test-command", &mockCommandFactory{name: "test-command"})

		// assert
		assert.NoError(t, err)
		assert.Len(t, registry.factories, 1)
		assert.Contains(t, registry.factories, "test-command")
	})

	t.Run("should return error when registering duplicate factory", func(t *testing.T) {
		// arrange
		translations, err := i18n.NewTranslations("en")
		require.NoError(t, err)
		registry := NewRegistry(noConfig, translations)
		factory := &mockCommandFactory{name: "test-command"}

		// act
		_ = registry.Register("test-command", factory)
		err = registry.Register("test-command", factory)

		// assert
		assert.Error(t, err)
		assert.Len(t, registry.factories, 1)
	})
}

func TestRegistry_CreateCommands(t *testing.T) {
	t.Run("should create commands in registration order", func(t *testing.T) {
		// Arrange
		translations, err := i18n.NewTranslations("en")
		require.NoError(t, err)
		registry := NewRegistry(noConfig, translations)

		_ = registry.Register("run", &mockCommandFactory{name: "run"})
		_ = registry.Register("labels", &mockCommandFactory{name: "labels"})
		_ = registry.Register("version", &mockCommandFactory{name: "version"})

		// Act
		commands := registry.CreateCommands()

		// Assert
		require.Len(t, commands, 3)
		assert.Equal(t, "run", commands[0].Name)
		assert.Equal(t, "labels", commands[1].Name)
		assert.Equal(t, "version", commands[2].Name)
	})

	t.Run("should return empty slice when no factories registered", func(t *testing.T) {
		// Arrange
		translations, err := i18n.NewTranslations("en")
		require.NoError(t, err)
		registry := NewRegistry(noConfig, translations)

		// Act
		commands := registry.CreateCommands()

		// Assert
		assert.Empty(t, commands)
	})
}

package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/i18n"
)

func setupConfigTest(t *testing.T) (*config.Config, *i18n.Translations, string) {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.json")

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	return cfg, translations, configPath
}

func TestSetLangCommand(t *testing.T) {
	t.Run("should set a supported language", func(t *testing.T) {
		cfg, translations, configPath := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		app := &cli.Command{Commands: []*cli.Command{factory.newSetLangCommand(translations, cfg)}}

		err := app.Run(context.Background(), []string{"config", "set-lang", "--lang", "es"})

		assert.NoError(t, err)
		loaded, err := config.LoadConfig(configPath)
		assert.NoError(t, err)
		assert.Equal(t, "es", loaded.Language)
	})

	t.Run("should fail with unsupported language", func(t *testing.T) {
		cfg, translations, configPath := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		app := &cli.Command{Commands: []*cli.Command{factory.newSetLangCommand(translations, cfg)}}

		err := app.Run(context.Background(), []string{"config", "set-lang", "--lang", "fr"})

		assert.Error(t, err)
		loaded, err := config.LoadConfig(configPath)
		assert.NoError(t, err)
		assert.Equal(t, "en", loaded.Language)
	})
}

func TestSetAPIKeyCommand(t *testing.T) {
	t.Run("should persist a valid key", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		app := &cli.Command{Commands: []*cli.Command{factory.newSetAPIKeyCommand(translations, cfg)}}

		err := app.Run(context.Background(), []string{"config", "set-api-key", "--key", "AIzaSy-test-key-123456"})

		assert.NoError(t, err)
		assert.Equal(t, "AIzaSy-test-key-123456", cfg.GeminiAPIKey)
	})

	t.Run("should reject a too-short key", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		app := &cli.Command{Commands: []*cli.Command{factory.newSetAPIKeyCommand(translations, cfg)}}

		err := app.Run(context.Background(), []string{"config", "set-api-key", "--key", "short"})

		assert.Error(t, err)
	})
}

func TestSetSheetCommand(t *testing.T) {
	t.Run("should extract the spreadsheet ID from a full URL", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		app := &cli.Command{Commands: []*cli.Command{factory.newSetSheetCommand(translations, cfg)}}

		err := app.Run(context.Background(), []string{"config", "set-sheet",
			"--sheet", "https://docs.google.com/spreadsheets/d/1AbC-dEf_123/edit#gid=0"})

		assert.NoError(t, err)
		assert.Equal(t, "1AbC-dEf_123", cfg.SheetID)
	})

	t.Run("should accept a bare ID", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		app := &cli.Command{Commands: []*cli.Command{factory.newSetSheetCommand(translations, cfg)}}

		err := app.Run(context.Background(), []string{"config", "set-sheet", "--sheet", "1AbC-dEf_123"})

		assert.NoError(t, err)
		assert.Equal(t, "1AbC-dEf_123", cfg.SheetID)
	})
}

func TestInitCommand(t *testing.T) {
	t.Run("should write provided values and report what is missing", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		factory := NewConfigCommandFactory()
		app := &cli.Command{Commands: []*cli.Command{factory.newInitCommand(translations, cfg)}}

		err := app.Run(context.Background(), []string{"config", "init",
			"--email", "agent@example.com",
			"--sheet", "1AbC-dEf_123"})

		assert.NoError(t, err)
		assert.Equal(t, "agent@example.com", cfg.UserEmail)
		assert.Equal(t, "1AbC-dEf_123", cfg.SheetID)
	})
}

package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/i18n"
	"github.com/tms-tools/supporthub/internal/infrastructure/sheets"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("config_command_usage", 0, nil),
		Commands: []*cli.Command{
			c.newInitCommand(t, cfg),
			c.newShowCommand(t, cfg),
			c.newSetAPIKeyCommand(t, cfg),
			c.newSetSheetCommand(t, cfg),
			c.newSetLangCommand(t, cfg),
		},
	}
}

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config_init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-key", Usage: "Gemini API key"},
			&cli.StringFlag{Name: "sheet", Usage: "Spreadsheet ID or full URL"},
			&cli.StringFlag{Name: "credentials", Usage: "Service account JSON (inline or a file path)"},
			&cli.StringFlag{Name: "email", Usage: "Your email, recorded as created_by on saved rows"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if key := command.String("api-key"); key != "" {
				cfg.GeminiAPIKey = key
			}
			if sheet := command.String("sheet"); sheet != "" {
				cfg.SheetID = sheets.ExtractSheetID(sheet)
			}
			if creds := command.String("credentials"); creds != "" {
				cfg.ServiceAccountJSON = creds
			}
			if email := command.String("email"); email != "" {
				cfg.UserEmail = email
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("%s\n", t.GetMessage("config_initialized", 0, map[string]interface{}{
				"Path": cfg.PathFile,
			}))
			if missing := cfg.MissingKeys(); len(missing) > 0 {
				fmt.Printf("%s\n", t.GetMessage("config_still_missing", 0, map[string]interface{}{
					"Keys": strings.Join(missing, ", "),
				}))
			}
			return nil
		},
	}
}

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Println(t.GetMessage("current_config", 0, nil))
			fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━\n")

			fmt.Printf("%s\n", t.GetMessage("language_label", 0, map[string]interface{}{"Lang": cfg.Language}))
			fmt.Printf("%s\n", t.GetMessage("model_label", 0, map[string]interface{}{"Model": cfg.GeminiModel}))

			if cfg.GeminiAPIKey == "" {
				fmt.Println(t.GetMessage("api_key_not_set", 0, nil))
			} else {
				fmt.Println(t.GetMessage("api_key_set", 0, nil))
			}

			if cfg.SheetID == "" {
				fmt.Println(t.GetMessage("sheet_not_set", 0, nil))
			} else {
				fmt.Printf("%s\n", t.GetMessage("sheet_label", 0, map[string]interface{}{"SheetID": cfg.SheetID}))
			}

			fmt.Printf("%s\n", t.GetMessage("defaults_label", 0, map[string]interface{}{
				"Product": cfg.DefaultProduct,
				"Module":  cfg.DefaultModule,
				"Locale":  cfg.DefaultLocale,
			}))
			fmt.Printf("%s\n", t.GetMessage("allowed_domains_label", 0, map[string]interface{}{
				"Domains": strings.Join(cfg.AllowedDomains, ", "),
			}))
			return nil
		},
	}
}

func (c *ConfigCommandFactory) newSetAPIKeyCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-api-key",
		Usage: t.GetMessage("config_set_api_key_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "key",
				Aliases:  []string{"k"},
				Usage:    "Gemini API key",
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			apiKey := command.String("key")
			if len(apiKey) < 10 {
				msg := t.GetMessage("invalid_api_key", 0, nil)
				return fmt.Errorf("%s", msg)
			}

			cfg.GeminiAPIKey = apiKey
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("%s\n", t.GetMessage("api_key_configured", 0, nil))
			return nil
		},
	}
}

func (c *ConfigCommandFactory) newSetSheetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-sheet",
		Usage: t.GetMessage("config_set_sheet_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "sheet",
				Aliases:  []string{"s"},
				Usage:    "Spreadsheet ID or full URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "credentials",
				Usage: "Service account JSON (inline or a file path)",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			cfg.SheetID = sheets.ExtractSheetID(command.String("sheet"))
			if creds := command.String("credentials"); creds != "" {
				cfg.ServiceAccountJSON = creds
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("%s\n", t.GetMessage("sheet_configured", 0, map[string]interface{}{"SheetID": cfg.SheetID}))
			return nil
		},
	}
}

func (c *ConfigCommandFactory) newSetLangCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-lang",
		Usage: t.GetMessage("config_set_lang_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lang",
				Aliases:  []string{"l"},
				Usage:    "Interface language",
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			lang := command.String("lang")
			if lang != "en" && lang != "es" {
				msg := t.GetMessage("unsupported_language", 0, nil)
				return fmt.Errorf("%s", msg)
			}

			cfg.Language = lang
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("%s\n", t.GetMessage("language_configured", 0, map[string]interface{}{"Lang": lang}))
			return nil
		},
	}
}

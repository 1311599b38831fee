package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	configcmd "github.com/tms-tools/supporthub/internal/cli/command/config"
	"github.com/tms-tools/supporthub/internal/cli/command/evaluate"
	"github.com/tms-tools/supporthub/internal/cli/command/parse"
	"github.com/tms-tools/supporthub/internal/cli/command/rubric"
	"github.com/tms-tools/supporthub/internal/cli/command/ticket"
	"github.com/tms-tools/supporthub/internal/cli/command/users"
	"github.com/tms-tools/supporthub/internal/cli/registry"
	cfg "github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/i18n"
	"github.com/tms-tools/supporthub/internal/infrastructure/ai/gemini"
	"github.com/tms-tools/supporthub/internal/infrastructure/sheets"
	"github.com/tms-tools/supporthub/internal/logger"
	"github.com/tms-tools/supporthub/internal/version"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}

	logger.Initialize(os.Getenv("SUPPORTHUB_DEBUG") != "", os.Getenv("SUPPORTHUB_VERBOSE") != "")

	judgeProvider := func(ctx context.Context) (ports.Judge, error) {
		if cfgApp.GeminiAPIKey == "" {
			return nil, errors.New(translations.GetMessage("error_missing_api_key", 0, nil))
		}
		return gemini.NewJudge(ctx, cfgApp.GeminiAPIKey, cfgApp.GeminiModel, translations)
	}

	newStore := func(ctx context.Context) (*sheets.Store, error) {
		if cfgApp.SheetID == "" || cfgApp.ServiceAccountJSON == "" {
			return nil, errors.New(translations.GetMessage("error_missing_sheet", 0, nil))
		}
		creds, err := cfgApp.ServiceAccount()
		if err != nil {
			return nil, err
		}
		store, err := sheets.NewStore(ctx, creds, cfgApp.SheetID)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureWorksheets(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
	ticketStoreProvider := func(ctx context.Context) (ports.TicketStore, error) {
		return newStore(ctx)
	}
	userStoreProvider := func(ctx context.Context) (ports.UserStore, error) {
		return newStore(ctx)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("parse", parse.NewParseCommandFactory(parse.StoreProvider(ticketStoreProvider))); err != nil {
		return nil, fmt.Errorf("registering the 'parse' command: %w", err)
	}
	if err := registerCommand.Register("evaluate", evaluate.NewEvaluateCommandFactory(
		evaluate.JudgeProvider(judgeProvider), evaluate.StoreProvider(ticketStoreProvider))); err != nil {
		return nil, fmt.Errorf("registering the 'evaluate' command: %w", err)
	}
	if err := registerCommand.Register("rubric", rubric.NewRubricCommandFactory(
		rubric.JudgeProvider(judgeProvider), rubric.StoreProvider(ticketStoreProvider))); err != nil {
		return nil, fmt.Errorf("registering the 'rubric' command: %w", err)
	}
	if err := registerCommand.Register("ticket", ticket.NewTicketCommandFactory(ticket.StoreProvider(ticketStoreProvider))); err != nil {
		return nil, fmt.Errorf("registering the 'ticket' command: %w", err)
	}
	if err := registerCommand.Register("users", users.NewUsersCommandFactory(users.UserStoreProvider(userStoreProvider))); err != nil {
		return nil, fmt.Errorf("registering the 'users' command: %w", err)
	}
	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, fmt.Errorf("registering the 'config' command: %w", err)
	}
	if err := registerCommand.Register("doctor", configcmd.NewDoctorCommand()); err != nil {
		return nil, fmt.Errorf("registering the 'doctor' command: %w", err)
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:                  "supporthub",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}

package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/cli/input"
	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/i18n"
	"github.com/tms-tools/supporthub/internal/parser"
	"github.com/tms-tools/supporthub/internal/services"
)

// StoreProvider defers spreadsheet-client construction until --save actually
// needs it, so parsing works without persistence credentials.
type StoreProvider func(ctx context.Context) (ports.TicketStore, error)

type ParseCommandFactory struct {
	storeProvider StoreProvider
}

func NewParseCommandFactory(storeProvider StoreProvider) *ParseCommandFactory {
	return &ParseCommandFactory{storeProvider: storeProvider}
}

func (f *ParseCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "parse",
		Aliases: []string{"p"},
		Usage:   t.GetMessage("parse_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   t.GetMessage("parse_input_flag_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: t.GetMessage("parse_save_flag_usage", 0, nil),
			},
		},
		Action: f.createAction(cfg, t),
	}
}

func (f *ParseCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		raw, err := input.ReadText(command.String("input"))
		if err != nil {
			return err
		}
		if input.IsBlank(raw) {
			return fmt.Errorf("%s", t.GetMessage("parse_empty_input", 0, nil))
		}

		parsed := parser.Parse(raw)

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(parsed.Fields()); err != nil {
			return err
		}

		if !command.Bool("save") {
			return nil
		}

		store, err := f.storeProvider(ctx)
		if err != nil {
			return err
		}
		id, err := services.NewIntakeService(store).SaveParsed(ctx, parsed, cfg.UserEmail)
		if err != nil {
			return err
		}
		fmt.Println(t.GetMessage("parse_saved", 0, map[string]interface{}{"ID": id}))
		return nil
	}
}

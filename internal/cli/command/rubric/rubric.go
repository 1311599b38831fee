package rubric

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/cli/input"
	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/i18n"
	"github.com/tms-tools/supporthub/internal/rubric"
	"github.com/tms-tools/supporthub/internal/services"
)

type (
	JudgeProvider func(ctx context.Context) (ports.Judge, error)
	StoreProvider func(ctx context.Context) (ports.TicketStore, error)
)

type RubricCommandFactory struct {
	judgeProvider JudgeProvider
	storeProvider StoreProvider
}

func NewRubricCommandFactory(judgeProvider JudgeProvider, storeProvider StoreProvider) *RubricCommandFactory {
	return &RubricCommandFactory{
		judgeProvider: judgeProvider,
		storeProvider: storeProvider,
	}
}

func (f *RubricCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "rubric",
		Aliases: []string{"r"},
		Usage:   t.GetMessage("rubric_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "Read the draft from a file instead of stdin"},
			&cli.StringFlag{Name: "ticket", Usage: "Ticket ID to link the evaluation to"},
			&cli.StringFlag{Name: "context", Usage: "File with the ticket text used as evaluation context"},
			&cli.StringFlag{Name: "severity", Value: "S2", Usage: "Ticket severity (S0-S3)"},
			&cli.StringFlag{Name: "locale", Value: cfg.DefaultLocale, Usage: "Customer locale"},
			&cli.StringFlag{Name: "product", Value: cfg.DefaultProduct, Usage: "Product under support"},
			&cli.StringFlag{Name: "module", Value: cfg.DefaultModule, Usage: "Product module"},
			&cli.StringFlag{Name: "rubric", Usage: "Rubric YAML file (built-in rubric when omitted)"},
			&cli.BoolFlag{Name: "save", Usage: "Append the result to the evaluations worksheet"},
		},
		Action: f.createAction(cfg, t),
	}
}

func (f *RubricCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		draft, err := input.ReadText(command.String("input"))
		if err != nil {
			return err
		}
		if input.IsBlank(draft) {
			return fmt.Errorf("%s", t.GetMessage("evaluate_empty_draft", 0, nil))
		}

		def, err := loadRubric(command.String("rubric"), cfg)
		if err != nil {
			return err
		}

		ticketText := ""
		if path := command.String("context"); path != "" {
			if ticketText, err = input.ReadText(path); err != nil {
				return err
			}
		}

		judge, err := f.judgeProvider(ctx)
		if err != nil {
			return err
		}

		evaluator := rubric.NewEvaluator(judge)
		result := evaluator.Score(ctx, rubric.Context{
			Ticket:   ticketText,
			Draft:    draft,
			Severity: command.String("severity"),
			Locale:   command.String("locale"),
			Product:  command.String("product"),
			Module:   command.String("module"),
		}, def)

		fmt.Println(t.GetMessage("rubric_result", 0, map[string]interface{}{
			"Score":   result.RawScore,
			"Verdict": result.Verdict,
			"Model":   result.Model,
			"Latency": result.LatencyMS,
		}))
		if result.Rationale != "" {
			fmt.Printf("  %s\n", result.Rationale)
		}
		for _, failure := range result.Failures {
			fmt.Printf("  - %s\n", failure)
		}

		if !command.Bool("save") {
			return nil
		}

		store, err := f.storeProvider(ctx)
		if err != nil {
			return err
		}
		svc := services.NewIntakeService(store)
		if err := svc.SaveEvaluation(ctx, command.String("ticket"), len(draft), def.Version, result); err != nil {
			return err
		}
		fmt.Println(t.GetMessage("rubric_saved", 0, map[string]interface{}{
			"ID": command.String("ticket"),
		}))
		return nil
	}
}

func loadRubric(flagPath string, cfg *config.Config) (rubric.Definition, error) {
	path := flagPath
	if path == "" {
		path = cfg.RubricPath
	}
	if path == "" {
		return rubric.Default(), nil
	}
	return rubric.Load(path)
}

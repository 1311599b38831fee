package evaluate

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/cli/input"
	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/domain/models"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/gate"
	"github.com/tms-tools/supporthub/internal/i18n"
	"github.com/tms-tools/supporthub/internal/services"
	"github.com/tms-tools/supporthub/internal/session"
)

type (
	JudgeProvider func(ctx context.Context) (ports.Judge, error)
	StoreProvider func(ctx context.Context) (ports.TicketStore, error)
)

type EvaluateCommandFactory struct {
	judgeProvider JudgeProvider
	storeProvider StoreProvider
}

func NewEvaluateCommandFactory(judgeProvider JudgeProvider, storeProvider StoreProvider) *EvaluateCommandFactory {
	return &EvaluateCommandFactory{
		judgeProvider: judgeProvider,
		storeProvider: storeProvider,
	}
}

func (f *EvaluateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "evaluate",
		Aliases: []string{"e"},
		Usage:   t.GetMessage("evaluate_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   t.GetMessage("evaluate_input_flag_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "ticket",
				Usage: t.GetMessage("evaluate_ticket_flag_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: t.GetMessage("evaluate_save_flag_usage", 0, nil),
			},
		},
		Action: f.createAction(cfg, t),
	}
}

func (f *EvaluateCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		draft, err := input.ReadText(command.String("input"))
		if err != nil {
			return err
		}
		if input.IsBlank(draft) {
			return fmt.Errorf("%s", t.GetMessage("evaluate_empty_draft", 0, nil))
		}

		judge, err := f.judgeProvider(ctx)
		if err != nil {
			return err
		}

		evaluator := gate.NewEvaluator(judge)
		verdict, rawResponse := evaluator.EvaluateRaw(ctx, draft)

		if !verdict.Accepted {
			fmt.Println(t.GetMessage("evaluate_rejected", 0, nil))
			fmt.Println(t.GetMessage("evaluate_missing_sections", 0, nil))
			for _, section := range verdict.Missing {
				fmt.Printf("  - %s\n", section)
			}
			if command.Bool("save") {
				store, err := f.storeProvider(ctx)
				if err != nil {
					return err
				}
				svc := services.NewIntakeService(store)
				return svc.LogRejection(ctx, command.String("ticket"), cfg.UserEmail, draft, rawResponse, verdict)
			}
			return nil
		}

		fmt.Println(t.GetMessage("evaluate_accepted", 0, map[string]interface{}{
			"Score": verdict.ComplianceScore,
		}))
		printSummary(verdict)

		if !command.Bool("save") {
			return nil
		}

		// One accepted evaluation feeds at most one save.
		workflow, err := session.NewWorkflow(draft, verdict)
		if err != nil {
			return err
		}
		confirmed, err := workflow.Consume()
		if err != nil {
			return err
		}

		store, err := f.storeProvider(ctx)
		if err != nil {
			return err
		}
		svc := services.NewIntakeService(store)

		ticketID := command.String("ticket")
		if ticketID == "" {
			ticketID = services.NewTicketID()
		}
		if err := svc.SaveResolved(ctx, ticketID, cfg.UserEmail, workflow.Draft(), rawResponse, confirmed); err != nil {
			return err
		}
		fmt.Println(t.GetMessage("evaluate_saved", 0, map[string]interface{}{"ID": ticketID}))
		return nil
	}
}

func printSummary(verdict models.GateVerdict) {
	s := verdict.Summary
	fmt.Printf("  Problem:    %s\n", s.Problem)
	fmt.Printf("  Cause:      %s\n", s.Cause)
	fmt.Printf("  Steps:      %s\n", s.Steps)
	fmt.Printf("  Resolution: %s\n", s.Resolution)
	fmt.Printf("  Cross-team: %s\n", s.CrossTeam)
}

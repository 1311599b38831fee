package ticket

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/domain/models"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/i18n"
	"github.com/tms-tools/supporthub/internal/services"
)

type StoreProvider func(ctx context.Context) (ports.TicketStore, error)

type TicketCommandFactory struct {
	storeProvider StoreProvider
}

func NewTicketCommandFactory(storeProvider StoreProvider) *TicketCommandFactory {
	return &TicketCommandFactory{storeProvider: storeProvider}
}

func (f *TicketCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "ticket",
		Usage: t.GetMessage("ticket_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newSaveCommand(t, cfg),
			f.newListCommand(t),
		},
	}
}

func (f *TicketCommandFactory) newSaveCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: t.GetMessage("ticket_save_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Ticket ID (auto-generated when empty)"},
			&cli.StringFlag{Name: "title", Usage: "Ticket title", Required: true},
			&cli.StringFlag{Name: "description", Usage: "Issue description"},
			&cli.StringFlag{Name: "issue-type", Value: "Other", Usage: "Issue type (Access, Sync, Enhancement, Bug, Other)"},
			&cli.StringFlag{Name: "severity", Value: "S2", Usage: "Ticket severity (S0-S3)"},
			&cli.StringFlag{Name: "status", Value: "New", Usage: "Ticket status"},
			&cli.StringFlag{Name: "requester", Aliases: []string{"reporter"}, Usage: "Reporter name or email"},
			&cli.StringFlag{Name: "owner", Usage: "Assigned owner"},
			&cli.StringFlag{Name: "product", Usage: "Product under support (config default when empty)"},
			&cli.StringFlag{Name: "module", Usage: "Product module (config default when empty)"},
			&cli.StringFlag{Name: "locale", Usage: "Customer locale (config default when empty)"},
			&cli.StringFlag{Name: "attachments", Usage: "Attachment filenames, comma-separated"},
			&cli.StringFlag{Name: "notes", Usage: "Free-form notes"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			title := command.String("title")
			if title == "" {
				return fmt.Errorf("%s", t.GetMessage("ticket_title_required", 0, nil))
			}
			severity := strings.ToUpper(command.String("severity"))
			if !validSeverity(severity) {
				return fmt.Errorf("%s", t.GetMessage("ticket_invalid_severity", 0, map[string]interface{}{
					"Severity": severity,
				}))
			}

			store, err := f.storeProvider(ctx)
			if err != nil {
				return err
			}

			svc := services.NewIntakeService(store)
			id, err := svc.SaveTicket(ctx, models.Ticket{
				ID:               command.String("id"),
				Title:            title,
				Description:      command.String("description"),
				IssueType:        command.String("issue-type"),
				Status:           models.TicketStatus(command.String("status")),
				Requester:        command.String("requester"),
				Owner:            command.String("owner"),
				LinksAttachments: joinAttachments(command.String("attachments")),
				Notes: annotateNotes(command.String("notes"), severity,
					orDefault(command.String("product"), cfg.DefaultProduct),
					orDefault(command.String("module"), cfg.DefaultModule),
					orDefault(command.String("locale"), cfg.DefaultLocale)),
				CreatedBy: cfg.UserEmail,
			})
			if err != nil {
				return err
			}
			fmt.Println(t.GetMessage("ticket_saved", 0, map[string]interface{}{"ID": id}))
			return nil
		},
	}
}

func validSeverity(severity string) bool {
	for _, s := range models.Severities {
		if s == severity {
			return true
		}
	}
	return false
}

func joinAttachments(raw string) string {
	var names []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			names = append(names, a)
		}
	}
	return strings.Join(names, ";")
}

// annotateNotes folds the intake fields that have no dedicated worksheet
// column into the notes cell.
func annotateNotes(notes, severity, product, module, locale string) string {
	tag := fmt.Sprintf("[severity=%s product=%s module=%s locale=%s]",
		severity, product, module, locale)
	if notes == "" {
		return tag
	}
	return tag + " " + notes
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (f *TicketCommandFactory) newListCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   t.GetMessage("ticket_list_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Maximum number of tickets to show"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			store, err := f.storeProvider(ctx)
			if err != nil {
				return err
			}

			records, err := services.NewIntakeService(store).RecentTickets(ctx, int(command.Int("limit")))
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println(t.GetMessage("ticket_none", 0, nil))
				return nil
			}

			for _, record := range records {
				fmt.Printf("%-14s %-10s %-12s %s\n",
					record["id"], record["status"], record["issue_type"], record["title"])
			}
			return nil
		},
	}
}

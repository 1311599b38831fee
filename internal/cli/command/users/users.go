package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/domain/models"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/i18n"
)

type UserStoreProvider func(ctx context.Context) (ports.UserStore, error)

var validRoles = []string{"agent", "lead", "admin"}

type UsersCommandFactory struct {
	storeProvider UserStoreProvider
}

func NewUsersCommandFactory(storeProvider UserStoreProvider) *UsersCommandFactory {
	return &UsersCommandFactory{storeProvider: storeProvider}
}

func (f *UsersCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: t.GetMessage("users_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newGetCommand(t),
			f.newSetCommand(t, cfg),
		},
	}
}

func (f *UsersCommandFactory) newGetCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: t.GetMessage("users_get_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "User email", Required: true},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			store, err := f.storeProvider(ctx)
			if err != nil {
				return err
			}
			role, err := store.GetRole(ctx, command.String("email"))
			if err != nil {
				return err
			}
			fmt.Println(t.GetMessage("users_role", 0, map[string]interface{}{
				"Email": command.String("email"),
				"Role":  role,
			}))
			return nil
		},
	}
}

func (f *UsersCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: t.GetMessage("users_set_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "User email", Required: true},
			&cli.StringFlag{Name: "name", Usage: "Display name"},
			&cli.StringFlag{Name: "role", Value: "agent", Usage: "Role (agent, lead, admin)"},
			&cli.BoolFlag{Name: "active", Value: true, Usage: "Whether the user is active"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			email := strings.ToLower(strings.TrimSpace(command.String("email")))
			if !cfg.DomainAllowed(email) {
				return fmt.Errorf("%s", t.GetMessage("users_domain_not_allowed", 0, map[string]interface{}{
					"Email": email,
				}))
			}

			role := strings.ToLower(command.String("role"))
			if !isValidRole(role) {
				return fmt.Errorf("%s", t.GetMessage("users_invalid_role", 0, map[string]interface{}{
					"Role": role,
				}))
			}

			store, err := f.storeProvider(ctx)
			if err != nil {
				return err
			}
			if err := store.UpsertUser(ctx, models.User{
				Email:  email,
				Name:   command.String("name"),
				Role:   role,
				Active: command.Bool("active"),
			}); err != nil {
				return err
			}
			fmt.Println(t.GetMessage("users_saved", 0, map[string]interface{}{"Email": email}))
			return nil
		},
	}
}

func isValidRole(role string) bool {
	for _, r := range validRoles {
		if r == role {
			return true
		}
	}
	return false
}

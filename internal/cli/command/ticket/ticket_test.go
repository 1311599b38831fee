package ticket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tms-tools/supporthub/internal/config"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/i18n"
)

type mockStore struct {
	tickets []map[string]string
	listed  []map[string]string
	listErr error
}

func (m *mockStore) AppendTicket(ctx context.Context, row map[string]string) error {
	m.tickets = append(m.tickets, row)
	return nil
}

func (m *mockStore) AppendLog(ctx context.Context, row map[string]string) error { return nil }

func (m *mockStore) AppendEvaluation(ctx context.Context, row map[string]string) error { return nil }

func (m *mockStore) ListTickets(ctx context.Context, limit int) ([]map[string]string, error) {
	return m.listed, m.listErr
}

func setupTicketTest(t *testing.T) (*mockStore, *cli.Command) {
	t.Helper()
	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	cfg := &config.Config{
		UserEmail:      "agent@example.com",
		DefaultProduct: "TMS",
		DefaultModule:  "Connectors",
		DefaultLocale:  "en",
	}

	store := &mockStore{}
	factory := NewTicketCommandFactory(func(ctx context.Context) (ports.TicketStore, error) {
		return store, nil
	})
	app := &cli.Command{Commands: []*cli.Command{factory.CreateCommand(translations, cfg)}}
	return store, app
}

func TestTicketSave(t *testing.T) {
	t.Run("should save a ticket with generated ID and defaults", func(t *testing.T) {
		store, app := setupTicketTest(t)

		err := app.Run(context.Background(), []string{"supporthub", "ticket", "save",
			"--title", "Customer cannot import TMX",
			"--requester", "maria@example.com",
			"--attachments", "error.log, screenshot.png",
		})

		assert.NoError(t, err)
		require.Len(t, store.tickets, 1)
		row := store.tickets[0]
		assert.Regexp(t, `^TCK-[0-9A-F]{8}$`, row["id"])
		assert.Equal(t, "Customer cannot import TMX", row["title"])
		assert.Equal(t, "maria@example.com", row["requester"])
		assert.Equal(t, "New", row["status"])
		assert.Equal(t, "error.log;screenshot.png", row["links_attachments"])
		assert.Equal(t, "agent@example.com", row["created_by"])
		assert.Contains(t, row["notes"], "severity=S2")
		assert.Contains(t, row["notes"], "product=TMS")
		assert.NotEmpty(t, row["created_at"])
	})

	t.Run("should keep an explicit ID", func(t *testing.T) {
		store, app := setupTicketTest(t)

		err := app.Run(context.Background(), []string{"supporthub", "ticket", "save",
			"--id", "T-40321",
			"--title", "Sync stuck",
			"--severity", "s1",
		})

		assert.NoError(t, err)
		require.Len(t, store.tickets, 1)
		assert.Equal(t, "T-40321", store.tickets[0]["id"])
		assert.Contains(t, store.tickets[0]["notes"], "severity=S1")
	})

	t.Run("should reject an unknown severity", func(t *testing.T) {
		store, app := setupTicketTest(t)

		err := app.Run(context.Background(), []string{"supporthub", "ticket", "save",
			"--title", "Broken import",
			"--severity", "critical",
		})

		assert.Error(t, err)
		assert.Empty(t, store.tickets)
	})
}

func TestTicketList(t *testing.T) {
	t.Run("should list recent tickets without error", func(t *testing.T) {
		store, app := setupTicketTest(t)
		store.listed = []map[string]string{
			{"id": "TCK-1", "status": "New", "issue_type": "Bug", "title": "first"},
			{"id": "TCK-2", "status": "Resolved", "issue_type": "Sync", "title": "second"},
		}

		err := app.Run(context.Background(), []string{"supporthub", "ticket", "list", "--limit", "2"})

		assert.NoError(t, err)
	})

	t.Run("should handle an empty worksheet", func(t *testing.T) {
		_, app := setupTicketTest(t)

		err := app.Run(context.Background(), []string{"supporthub", "ticket", "list"})

		assert.NoError(t, err)
	})
}

func TestAnnotateNotes(t *testing.T) {
	tag := annotateNotes("", "S2", "TMS", "Connectors", "en")
	assert.Equal(t, "[severity=S2 product=TMS module=Connectors locale=en]", tag)

	withNotes := annotateNotes("customer escalated twice", "S0", "TMS", "API", "de")
	assert.Equal(t, "[severity=S0 product=TMS module=API locale=de] customer escalated twice", withNotes)
}

func TestJoinAttachments(t *testing.T) {
	assert.Equal(t, "a.log;b.png", joinAttachments(" a.log , b.png ,, "))
	assert.Equal(t, "", joinAttachments(""))
}

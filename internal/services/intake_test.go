package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tms-tools/supporthub/internal/domain/models"
)

type mockStore struct {
	tickets     []map[string]string
	logs        []map[string]string
	evaluations []map[string]string
	listResult  []map[string]string
}

func (m *mockStore) AppendTicket(_ context.Context, row map[string]string) error {
	m.tickets = append(m.tickets, row)
	return nil
}

func (m *mockStore) AppendLog(_ context.Context, row map[string]string) error {
	m.logs = append(m.logs, row)
	return nil
}

func (m *mockStore) AppendEvaluation(_ context.Context, row map[string]string) error {
	m.evaluations = append(m.evaluations, row)
	return nil
}

func (m *mockStore) ListTickets(_ context.Context, _ int) ([]map[string]string, error) {
	return m.listResult, nil
}

func acceptedVerdict() models.GateVerdict {
	return models.GateVerdict{
		Accepted:        true,
		ComplianceScore: 100,
		Summary: &models.GateSummary{
			Problem:    "import fails",
			Cause:      "bad header",
			Steps:      "reproduced; checked logs",
			Resolution: "regenerated export",
			CrossTeam:  "Connectors team",
		},
	}
}

func TestNewTicketID(t *testing.T) {
	id := NewTicketID()
	assert.Regexp(t, `^TCK-[0-9A-F]{8}$`, id)
	assert.NotEqual(t, id, NewTicketID())
}

func TestSaveParsed(t *testing.T) {
	store := &mockStore{}
	svc := NewIntakeService(store)

	parsed := models.ParsedTicket{
		ID:        "12345",
		Title:     "Cannot sync",
		IssueType: "Sync",
		Status:    "Open",
		Requester: "Jane Roe",
	}

	id, err := svc.SaveParsed(context.Background(), parsed, "agent@example.com")
	require.NoError(t, err)
	assert.Equal(t, "12345", id)

	require.Len(t, store.tickets, 1)
	row := store.tickets[0]
	assert.Equal(t, "Cannot sync", row["title"])
	assert.Equal(t, "Sync", row["issue_type"])
	assert.Equal(t, "agent@example.com", row["created_by"])
	assert.NotEmpty(t, row["created_at"])
}

func TestSaveParsedGeneratesID(t *testing.T) {
	store := &mockStore{}
	svc := NewIntakeService(store)

	id, err := svc.SaveParsed(context.Background(), models.ParsedTicket{Status: "Open"}, "")
	require.NoError(t, err)
	assert.Regexp(t, `^TCK-`, id)
}

func TestSaveResolved(t *testing.T) {
	store := &mockStore{}
	svc := NewIntakeService(store)

	draft := "Problem: import fails. Contact jane@example.com."
	err := svc.SaveResolved(context.Background(), "T-1", "agent@corp.net", draft, `{"ok": true}`, acceptedVerdict())
	require.NoError(t, err)

	require.Len(t, store.tickets, 1)
	ticket := store.tickets[0]
	assert.Equal(t, "T-1", ticket["id"])
	assert.Equal(t, "Resolved", ticket["status"])
	assert.Equal(t, "bad header", ticket["structured_summary_cause"])
	assert.Equal(t, "100", ticket["compliance_score"])

	require.Len(t, store.logs, 1)
	logEntry := store.logs[0]
	assert.Equal(t, "accepted", logEntry["result_status"])
	assert.NotContains(t, logEntry["prompt"], "jane@example.com")
	assert.Contains(t, logEntry["prompt"], "<EMAIL>")
}

func TestSaveResolvedRejectsNonAccepted(t *testing.T) {
	svc := NewIntakeService(&mockStore{})
	err := svc.SaveResolved(context.Background(), "T-1", "a@b.c", "draft", "", models.GateVerdict{Accepted: false})
	assert.Error(t, err)
}

func TestLogRejection(t *testing.T) {
	store := &mockStore{}
	svc := NewIntakeService(store)

	verdict := models.GateVerdict{
		Accepted: false,
		Missing:  []string{"Resolution / Workaround", "Cross-team Involvement"},
	}
	err := svc.LogRejection(context.Background(), "T-2", "a@b.c", "thin draft", "", verdict)
	require.NoError(t, err)

	require.Len(t, store.logs, 1)
	assert.Equal(t, "rejected", store.logs[0]["result_status"])
	assert.Equal(t, "Resolution / Workaround; Cross-team Involvement", store.logs[0]["missing_sections"])
	assert.Empty(t, store.logs[0]["compliance_score"])
}

func TestSaveEvaluation(t *testing.T) {
	store := &mockStore{}
	svc := NewIntakeService(store)

	result := models.RubricResult{
		RawScore:  82.5,
		Verdict:   "PASS",
		Passed:    true,
		Rationale: "covers all criteria",
		Failures:  nil,
		Model:     "gemini-1.5-flash",
		LatencyMS: 1200,
	}
	err := svc.SaveEvaluation(context.Background(), "T-3", 420, "v1", result)
	require.NoError(t, err)

	require.Len(t, store.evaluations, 1)
	row := store.evaluations[0]
	assert.Equal(t, "82.5", row["raw_score"])
	assert.Equal(t, "true", row["pass"])
	assert.Equal(t, "420", row["draft_len"])
	assert.Equal(t, "1200", row["evaluator_latency_ms"])
}

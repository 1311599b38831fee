package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tms-tools/supporthub/internal/domain/models"
)

func acceptedVerdict() models.GateVerdict {
	return models.GateVerdict{
		Accepted:        true,
		ComplianceScore: 100,
		Summary: &models.GateSummary{
			Problem:    "p",
			Cause:      "c",
			Steps:      "s",
			Resolution: "r",
			CrossTeam:  "x",
		},
	}
}

func TestNewWorkflowRequiresAcceptance(t *testing.T) {
	_, err := NewWorkflow("draft", models.GateVerdict{Accepted: false})
	assert.ErrorIs(t, err, ErrNotAccepted)

	_, err = NewWorkflow("draft", models.GateVerdict{Accepted: true})
	assert.ErrorIs(t, err, ErrNotAccepted)
}

func TestWorkflowConsumeOnce(t *testing.T) {
	w, err := NewWorkflow("draft text", acceptedVerdict())
	require.NoError(t, err)
	assert.Equal(t, "draft text", w.Draft())
	assert.False(t, w.CreatedAt().IsZero())

	verdict, err := w.Consume()
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)

	_, err = w.Consume()
	assert.ErrorIs(t, err, ErrAlreadyConsumed)
}

package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/tms-tools/supporthub/internal/domain/errors"
)

type mockJudge struct {
	responses []string
	errs      []error
	calls     int
	lastSys   string
	lastBody  string
}

func (m *mockJudge) Judge(_ context.Context, system, payload string) (string, error) {
	idx := m.calls
	m.calls++
	m.lastSys = system
	m.lastBody = payload
	var err error
	if idx < len(m.errs) {
		err = m.errs[idx]
	}
	var resp string
	if idx < len(m.responses) {
		resp = m.responses[idx]
	}
	return resp, err
}

func (m *mockJudge) ModelName() string { return "mock-model" }

const acceptedJSON = `{
	"ok": true,
	"compliance_score": 100,
	"summary": {
		"problem": "Customer could not import TMX files",
		"cause": "Malformed header in the uploaded file",
		"steps": "Reproduced locally; inspected import logs; validated file header",
		"resolution": "Regenerated the TMX export and re-imported",
		"cross_team": "Connectors team confirmed the parser fix"
	}
}`

func TestEvaluateAccepted(t *testing.T) {
	judge := &mockJudge{responses: []string{acceptedJSON}}
	e := NewEvaluator(judge)

	verdict := e.Evaluate(context.Background(), "full journal text")

	require.True(t, verdict.Accepted)
	require.NotNil(t, verdict.Summary)
	assert.Equal(t, 100, verdict.ComplianceScore)
	assert.Equal(t, "Customer could not import TMX files", verdict.Summary.Problem)
	assert.Empty(t, verdict.Missing)
	assert.Contains(t, judge.lastSys, "Cross-team Involvement")
	assert.Equal(t, "full journal text", judge.lastBody)
}

func TestEvaluateRejected(t *testing.T) {
	judge := &mockJudge{responses: []string{
		`{"ok": false, "message": "Response incomplete", "missing": ["Resolution / Workaround"]}`,
	}}
	e := NewEvaluator(judge)

	verdict := e.Evaluate(context.Background(), "journal without a resolution")

	require.False(t, verdict.Accepted)
	assert.Equal(t, []string{"Resolution / Workaround"}, verdict.Missing)
	assert.Equal(t, "Response incomplete", verdict.Message)
	assert.Nil(t, verdict.Summary)
}

func TestEvaluateSchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "not json", response: "sure, the draft looks fine to me"},
		{name: "missing ok indicator", response: `{"summary": {"problem": "p"}}`},
		{name: "accepted without summary", response: `{"ok": true, "compliance_score": 100}`},
		{
			name: "accepted with incomplete summary",
			response: `{"ok": true, "summary": {
				"problem": "p", "cause": "c", "steps": "s", "resolution": "r", "cross_team": ""
			}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			judge := &mockJudge{responses: []string{tt.response}}
			e := NewEvaluator(judge)

			verdict := e.Evaluate(context.Background(), "draft")

			require.False(t, verdict.Accepted)
			assert.Equal(t, []string{"Unknown"}, verdict.Missing)
			assert.Equal(t, "Model error", verdict.Message)
		})
	}
}

func TestEvaluateRejectionWithoutDetail(t *testing.T) {
	judge := &mockJudge{responses: []string{`{"ok": false}`}}
	e := NewEvaluator(judge)

	verdict := e.Evaluate(context.Background(), "draft")

	require.False(t, verdict.Accepted)
	assert.Equal(t, []string{"Unknown"}, verdict.Missing)
	assert.Equal(t, "Response incomplete", verdict.Message)
}

func TestEvaluateRetryBound(t *testing.T) {
	transportErr := errors.New("transport down")
	judge := &mockJudge{errs: []error{transportErr, transportErr, transportErr}}
	e := NewEvaluator(judge, WithRetryPolicy(2, time.Millisecond))

	verdict := e.Evaluate(context.Background(), "draft")

	assert.Equal(t, 2, judge.calls)
	require.False(t, verdict.Accepted)
	assert.Equal(t, []string{"Unknown"}, verdict.Missing)
}

func TestCallWithRetryReportsAttempts(t *testing.T) {
	transportErr := errors.New("transport down")
	judge := &mockJudge{errs: []error{transportErr, transportErr}}
	e := NewEvaluator(judge, WithRetryPolicy(2, time.Millisecond))

	_, err := e.callWithRetry(context.Background(), "draft")

	require.Error(t, err)
	var unavailable *domainerrors.JudgeUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 2, unavailable.Attempts)
	assert.ErrorIs(t, err, transportErr)
}

func TestEvaluateRecoversOnSecondAttempt(t *testing.T) {
	judge := &mockJudge{
		errs:      []error{errors.New("blip"), nil},
		responses: []string{"", acceptedJSON},
	}
	e := NewEvaluator(judge, WithRetryPolicy(2, time.Millisecond))

	verdict := e.Evaluate(context.Background(), "draft")

	assert.Equal(t, 2, judge.calls)
	assert.True(t, verdict.Accepted)
}

func TestEvaluateRawCarriesResponse(t *testing.T) {
	judge := &mockJudge{responses: []string{acceptedJSON}}
	e := NewEvaluator(judge)

	verdict, raw := e.EvaluateRaw(context.Background(), "draft")

	assert.True(t, verdict.Accepted)
	assert.Equal(t, acceptedJSON, raw)
}

func TestMandatorySectionsOrder(t *testing.T) {
	require.Equal(t, []string{
		"Problem Statement",
		"Root Cause / Findings",
		"Investigation Steps",
		"Resolution / Workaround",
		"Cross-team Involvement",
	}, MandatorySections)
}

// Package gate implements the structure gate applied to draft investigation
// journals. The section-presence judgment is delegated to an LLM collaborator
// bound by a strict JSON contract; this package owns retries, structural
// validation of the response and the automatic-rejection fallback.
package gate

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tms-tools/supporthub/internal/domain/errors"
	"github.com/tms-tools/supporthub/internal/domain/models"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/logger"
)

const (
	defaultMaxAttempts    = 2
	defaultInitialBackoff = time.Second
	maxBackoff            = 4 * time.Second

	fallbackMessage = "Model error"
	acceptedScore   = 100
)

// Evaluator runs one stateless structure-gate check per call.
type Evaluator struct {
	judge          ports.Judge
	maxAttempts    int
	initialBackoff time.Duration
}

type Option func(*Evaluator)

// WithRetryPolicy overrides the attempt bound and initial backoff, mainly
// for tests.
func WithRetryPolicy(attempts int, backoff time.Duration) Option {
	return func(e *Evaluator) {
		if attempts > 0 {
			e.maxAttempts = attempts
		}
		if backoff > 0 {
			e.initialBackoff = backoff
		}
	}
}

func NewEvaluator(judge ports.Judge, opts ...Option) *Evaluator {
	e := &Evaluator{
		judge:          judge,
		maxAttempts:    defaultMaxAttempts,
		initialBackoff: defaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// judgeResponse mirrors the tagged union of the collaborator contract. OK is
// a pointer so that a response without a recognizable success indicator is
// distinguishable from an explicit rejection.
type judgeResponse struct {
	OK              *bool               `json:"ok"`
	Message         string              `json:"message"`
	Missing         []string            `json:"missing"`
	ComplianceScore int                 `json:"compliance_score"`
	Summary         *models.GateSummary `json:"summary"`
}

// Evaluate checks a draft against the mandatory-section contract. It never
// returns an error: transport failures, malformed output and schema
// violations all collapse into the automatic-rejection fallback.
func (e *Evaluator) Evaluate(ctx context.Context, draft string) models.GateVerdict {
	raw, err := e.callWithRetry(ctx, draft)
	if err != nil {
		logger.Warn(ctx, "structure gate judgment unavailable", "error", err)
		return fallbackVerdict()
	}

	verdict, ok := validateResponse(raw)
	if !ok {
		logger.Warn(ctx, "structure gate response failed schema validation")
		return fallbackVerdict()
	}
	return verdict
}

// EvaluateRaw behaves like Evaluate but also returns the raw collaborator
// response for audit logging.
func (e *Evaluator) EvaluateRaw(ctx context.Context, draft string) (models.GateVerdict, string) {
	raw, err := e.callWithRetry(ctx, draft)
	if err != nil {
		logger.Warn(ctx, "structure gate judgment unavailable", "error", err)
		return fallbackVerdict(), ""
	}

	verdict, ok := validateResponse(raw)
	if !ok {
		logger.Warn(ctx, "structure gate response failed schema validation")
		return fallbackVerdict(), raw
	}
	return verdict, raw
}

func (e *Evaluator) callWithRetry(ctx context.Context, draft string) (string, error) {
	var lastErr error
	backoff := e.initialBackoff

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		raw, err := e.judge.Judge(ctx, systemPrompt, draft)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		logger.Debug(ctx, "structure gate attempt failed", "attempt", attempt, "error", err)

		if attempt == e.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return "", &errors.JudgeUnavailableError{Attempts: e.maxAttempts, Err: lastErr}
}

// validateResponse enforces the tagged-union schema structurally. Anything
// that does not match one of the two shapes is reported as invalid so the
// caller falls back to rejection instead of forwarding unvalidated text.
func validateResponse(raw string) (models.GateVerdict, bool) {
	var resp judgeResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &resp); err != nil {
		return models.GateVerdict{}, false
	}
	if resp.OK == nil {
		return models.GateVerdict{}, false
	}

	if !*resp.OK {
		missing := resp.Missing
		if len(missing) == 0 {
			missing = []string{"Unknown"}
		}
		message := resp.Message
		if message == "" {
			message = "Response incomplete"
		}
		return models.GateVerdict{Accepted: false, Message: message, Missing: missing}, true
	}

	if resp.Summary == nil {
		return models.GateVerdict{}, false
	}
	s := resp.Summary
	if s.Problem == "" || s.Cause == "" || s.Steps == "" || s.Resolution == "" || s.CrossTeam == "" {
		return models.GateVerdict{}, false
	}

	// Acceptance is binary: the compliance score is pinned to 100 no matter
	// what the collaborator put in the field.
	return models.GateVerdict{
		Accepted:        true,
		Summary:         s,
		ComplianceScore: acceptedScore,
	}, true
}

func fallbackVerdict() models.GateVerdict {
	return models.GateVerdict{
		Accepted: false,
		Message:  fallbackMessage,
		Missing:  []string{"Unknown"},
	}
}

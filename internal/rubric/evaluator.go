// Package rubric scores draft support responses against a weighted rubric.
// The judgment is delegated to an LLM collaborator; locally this package
// builds the evaluation payload, validates the response shape and coerces it
// into a RubricResult, defaulting to FAIL when the output is unusable.
package rubric

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/tms-tools/supporthub/internal/domain/errors"
	"github.com/tms-tools/supporthub/internal/domain/models"
	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/logger"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = time.Second
	maxBackoff            = 8 * time.Second
)

type Evaluator struct {
	judge          ports.Judge
	maxAttempts    int
	initialBackoff time.Duration
}

type Option func(*Evaluator)

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

// Score evaluates a draft against the rubric. It never returns an error:
// transport failures are retried up to the attempt bound and then reported
// as a FAIL result with a synthetic transport failure entry, and a model
// response that is not usable JSON after best-effort extraction yields a
// FAIL result with a format failure entry.
func (e *Evaluator) Score(ctx context.Context, c Context, def Definition) models.RubricResult {
	payload := buildPayload(c, def.YAML())

	start := time.Now()
	raw, err := e.callWithRetry(ctx, payload)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		logger.Warn(ctx, "rubric judgment unavailable", "error", err)
		return models.RubricResult{
			Verdict:   "FAIL",
			Rationale: "Evaluator unavailable",
			Failures:  []string{"transport: " + err.Error()},
			Model:     e.judge.ModelName(),
			LatencyMS: latency,
		}
	}

	result := parseResult(ctx, raw)
	result.Model = e.judge.ModelName()
	result.LatencyMS = latency
	return result
}

func (e *Evaluator) callWithRetry(ctx context.Context, payload string) (string, error) {
	var lastErr error
	backoff := e.initialBackoff

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		raw, err := e.judge.Judge(ctx, systemPrompt, payload)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		logger.Debug(ctx, "rubric evaluation attempt failed", "attempt", attempt, "error", err)

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

type scorePayload struct {
	RawScore  json.RawMessage `json:"raw_score"`
	Verdict   string          `json:"verdict"`
	Rationale string          `json:"rationale"`
	Failures  []string        `json:"failures"`
}

func parseResult(ctx context.Context, raw string) models.RubricResult {
	text := strings.TrimSpace(raw)

	var payload scorePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		// The model sometimes wraps the object in prose; one best-effort
		// extraction of an embedded JSON object before giving up.
		extracted := extractJSONObject(text)
		if extracted == "" || json.Unmarshal([]byte(extracted), &payload) != nil {
			logger.Warn(ctx, "rubric response was not valid JSON")
			return models.RubricResult{
				Verdict:   "FAIL",
				Rationale: "Non-JSON response",
				Failures:  []string{"format"},
			}
		}
	}

	verdict := strings.ToUpper(strings.TrimSpace(payload.Verdict))
	if verdict == "" {
		verdict = "FAIL"
	}

	return models.RubricResult{
		RawScore:  coerceScore(payload.RawScore),
		Verdict:   verdict,
		Rationale: payload.Rationale,
		Failures:  payload.Failures,
		Passed:    verdict == "PASS",
	}
}

// coerceScore accepts the score as a JSON number or a numeric string.
func coerceScore(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// extractJSONObject returns the substring spanning the first '{' to the last
// '}', or the empty string when no such span exists.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

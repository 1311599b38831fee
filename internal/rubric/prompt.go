package rubric

import "fmt"

const systemPrompt = `You are a STRICT support-response evaluator for a Translation Management System (TMS) vendor.
Score the proposed draft resolution against a rubric with clear criteria and weights.
Output ONLY a JSON object matching this schema:

{
  "raw_score": 0-100,
  "verdict": "PASS" | "FAIL",
  "rationale": "string",
  "failures": ["criterion1: reason", ...]
}

Rules:
- If reproduction steps or root cause are missing -> automatic FAIL.
- If any suggested step violates data-security or customer policy -> automatic FAIL.
- If the draft omits customer communications or SLA handling for S0/S1 -> heavy penalty.
- Fail if hallucinations (fabricated logs/IDs) are detected.
Be concise, objective, and harsh.`

// Context carries the six deterministic inputs of one scoring call.
type Context struct {
	Ticket   string
	Draft    string
	Severity string
	Locale   string
	Product  string
	Module   string
}

// buildPayload composes the user payload from the evaluation context and the
// rubric document. Same inputs, same payload.
func buildPayload(c Context, rubricYAML string) string {
	return fmt.Sprintf(`### Context
- Severity: %s
- Locale: %s
- Product: %s
- Module: %s

### Ticket
%s

### Draft Response to Evaluate
%s

### Rubric (YAML)
%s`, c.Severity, c.Locale, c.Product, c.Module, c.Ticket, c.Draft, rubricYAML)
}

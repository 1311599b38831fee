package ports

import "context"

// Judge is the delegated LLM judgment collaborator. Implementations carry a
// fixed system instruction per call and return the raw model text; callers
// own retries, schema validation and fallback verdicts.
type Judge interface {
	Judge(ctx context.Context, systemInstruction, payload string) (string, error)
	ModelName() string
}

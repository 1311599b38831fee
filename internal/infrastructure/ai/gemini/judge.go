// Package gemini adapts the Gemini API to the ports.Judge collaborator
// interface used by the structure gate and the rubric evaluator.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tms-tools/supporthub/internal/domain/ports"
	"github.com/tms-tools/supporthub/internal/i18n"
)

const DefaultModel = "gemini-1.5-flash"

var _ ports.Judge = (*Judge)(nil)

type Judge struct {
	client *genai.Client
	model  string
}

func NewJudge(ctx context.Context, apiKey, model string, trans *i18n.Translations) (*Judge, error) {
	if apiKey == "" {
		msg := trans.GetMessage("error_missing_api_key", 0, nil)
		return nil, fmt.Errorf("%s", msg)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Judge{client: client, model: model}, nil
}

// Judge sends one system-instructed payload and returns the model text with
// markdown fences stripped. Judgment is deterministic-leaning: low
// temperature, JSON response MIME type.
func (j *Judge) Judge(ctx context.Context, systemInstruction, payload string) (string, error) {
	model := j.client.GenerativeModel(j.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	model.SetTemperature(0.1)
	model.SetTopP(0.3)
	model.SetMaxOutputTokens(1024)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(payload))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return stripFences(formatResponse(resp)), nil
}

func (j *Judge) ModelName() string {
	return j.model
}

func (j *Judge) Close() error {
	return j.client.Close()
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					formattedContent.WriteString(string(text))
				}
			}
		}
	}
	return formattedContent.String()
}

// stripFences drops a surrounding ```json ... ``` block when the model wraps
// its output despite the JSON MIME type.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

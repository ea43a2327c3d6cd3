// Package chooser implements the advisory fallback selector on top of the
// Anthropic Messages API. The model ranks the candidate URLs by relevance to
// the unavailable primary; the caller stays responsible for validating that
// the answer is actually one of the candidates.
package chooser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Chooser picks a fallback URL via an LLM call.
type Chooser struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates a Chooser using the given API key and model.
func New(apiKey, model string, maxTokens int64, logger *slog.Logger) *Chooser {
	return &Chooser{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
		log:       logger.With("adapter", "chooser"),
	}
}

// Choose asks the model to pick the most relevant candidate given why the
// primary URL is unavailable. The returned URL is whatever the model answered;
// membership in candidates is checked by the caller.
func (c *Chooser) Choose(ctx context.Context, primaryURL string, candidates []string, reason string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("chooser: no candidates")
	}

	prompt := buildPrompt(primaryURL, candidates, reason)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chooser: api call: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("chooser: empty response")
	}

	chosen, err := parseResponse(msg.Content[0].Text)
	if err != nil {
		return "", fmt.Errorf("chooser: %w", err)
	}

	c.log.DebugContext(ctx, "fallback chosen",
		slog.String("primary", primaryURL),
		slog.String("chosen", chosen),
	)

	return chosen, nil
}

// buildPrompt creates the selection prompt for one unavailable primary URL.
func buildPrompt(primaryURL string, candidates []string, reason string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The primary URL %s is unavailable because %s.\n", primaryURL, reason)
	sb.WriteString("From the following list of fallback URLs, choose the most relevant one:\n\n")
	for _, u := range candidates {
		fmt.Fprintf(&sb, "- %s\n", u)
	}
	sb.WriteString(`
Output ONLY a valid JSON object matching this exact schema:
{"chosenUrl": "<one URL copied verbatim from the list>"}

Rules:
- The chosen URL must be one of the listed fallback URLs, character for character
- Output ONLY the JSON, no markdown, no explanations`)
	return sb.String()
}

// parseResponse extracts the chosen URL from the model output. The model is
// instructed to answer with bare JSON, but a JSON object embedded in prose is
// tolerated.
func parseResponse(s string) (string, error) {
	jsonStr, err := extractJSON(s)
	if err != nil {
		return "", err
	}

	var out struct {
		ChosenURL string `json:"chosenUrl"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return "", fmt.Errorf("decode response json: %w", err)
	}
	if out.ChosenURL == "" {
		return "", fmt.Errorf("response json has no chosenUrl")
	}

	return out.ChosenURL, nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

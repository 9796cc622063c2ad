package enhance

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used for description enhancement.
const DefaultModel = "gemini-2.0-flash"

const enhancePrompt = `You are writing for a trades and engineering job board.
Rewrite the following job description to be clear and complete while staying
strictly factual. Do not invent requirements, pay, or benefits that are not
in the original. Keep it under 200 words. Return only the rewritten
description, no preamble.

Job title: %s

Original description:
%s`

// GeminiEnhancer is an Enhancer backed by Google Gemini.
type GeminiEnhancer struct {
	client *genai.Client
	model  string
}

// NewGeminiEnhancer creates a Gemini-backed enhancer. model may be empty
// to use DefaultModel.
func NewGeminiEnhancer(ctx context.Context, apiKey, model string) (*GeminiEnhancer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiEnhancer{client: client, model: model}, nil
}

// Enhance rewrites a job description. On any failure the original
// description is returned along with the error so callers can degrade.
func (e *GeminiEnhancer) Enhance(ctx context.Context, title, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return description, nil
	}

	model := e.client.GenerativeModel(e.model)
	model.SetTemperature(0.3)

	prompt := fmt.Sprintf(enhancePrompt, title, description)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return description, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return description, err
	}
	if cleaned := cleanResponse(text); cleaned != "" {
		return cleaned, nil
	}
	return description, nil
}

// Close releases the underlying client.
func (e *GeminiEnhancer) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// extractText pulls the text parts out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

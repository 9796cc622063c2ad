// Package enhance rewrites terse job descriptions through an injected
// enhancement strategy. The strategy is constructor-injected so the
// pipeline never depends on where an implementation lives.
package enhance

import (
	"context"
	"strings"
)

// Enhancer is the description enhancement strategy. Implementations must
// return the original description unchanged when they cannot improve it,
// never an empty string.
type Enhancer interface {
	Enhance(ctx context.Context, title, description string) (string, error)
}

// Noop returns descriptions unchanged. Used when no LLM is configured.
type Noop struct{}

// Enhance returns the description as-is.
func (Noop) Enhance(_ context.Context, _ string, description string) (string, error) {
	return description, nil
}

// cleanResponse strips markdown code fences and surrounding whitespace
// from an LLM response.
func cleanResponse(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```markdown")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

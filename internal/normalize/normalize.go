// Package normalize cleans, splits, and filters free-text skill phrases
// extracted from job postings before they are matched against the taxonomy.
package normalize

import (
	"regexp"
	"strings"
)

// MinSkillLength is the minimum length of a normalized skill phrase.
// Anything shorter is treated as "no skill".
const MinSkillLength = 2

// qualifierWords are posting-speak adjectives that carry no skill content
// when they lead a phrase ("excellent communication skills").
var qualifierWords = map[string]bool{
	"excellent":    true,
	"strong":       true,
	"proven":       true,
	"demonstrated": true,
	"good":         true,
	"outstanding":  true,
	"solid":        true,
	"superior":     true,
}

var (
	// Everything except letters, digits, whitespace, hyphens and the "/"
	// and "," separators consumed by Split is noise.
	rePunct  = regexp.MustCompile(`[^\p{L}\p{N}\s/,-]+`)
	reSpaces = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a raw skill phrase: lower-case, punctuation
// stripped (internal hyphens survive, as do the conjunction separators
// Split breaks on), whitespace collapsed, and leading qualifier
// adjectives removed. The second return value is false when the phrase
// normalizes to nothing usable.
//
// Normalize is pure and idempotent: Normalize(Normalize(p)) == Normalize(p).
func Normalize(phrase string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(phrase))
	if s == "" {
		return "", false
	}

	s = rePunct.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	// Hyphens are only meaningful inside a token ("self-motivated").
	tokens := strings.Fields(s)
	cleaned := tokens[:0]
	for _, tok := range tokens {
		tok = strings.Trim(tok, "-")
		if tok != "" {
			cleaned = append(cleaned, tok)
		}
	}

	// Drop leading qualifier adjectives ("excellent strong communication").
	// Looping keeps Normalize idempotent when qualifiers stack.
	for len(cleaned) > 1 && qualifierWords[cleaned[0]] {
		cleaned = cleaned[1:]
	}

	s = strings.Join(cleaned, " ")
	// Separators alone carry no skill content.
	if len(strings.Trim(s, "/, ")) < MinSkillLength {
		return "", false
	}
	return s, true
}

package normalize

import "strings"

// compoundWhitelist lists multi-part skill names that read like conjunctions
// but describe a single skill. Phrases here are never split.
var compoundWhitelist = map[string]bool{
	"reading and writing":         true,
	"health and safety":           true,
	"plumbing and pipefitting":    true,
	"heating and cooling":         true,
	"shipping and receiving":      true,
	"occupational health and safety": true,
}

// splitSeparators are the top-level conjunctions a compound phrase is
// split on. The surrounding spaces on "and" keep words like "sandblasting"
// intact.
var splitSeparators = []string{" and ", "/", ","}

// Split breaks a compound skill phrase into atomic candidates, splitting on
// conjunctions unless the whole phrase is a whitelisted compound skill.
// The result preserves order, contains no empty elements, and always has at
// least one element when the input is non-empty.
func Split(phrase string) []string {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil
	}
	if compoundWhitelist[strings.ToLower(phrase)] {
		return []string{phrase}
	}

	parts := []string{phrase}
	for _, sep := range splitSeparators {
		var next []string
		for _, p := range parts {
			if compoundWhitelist[strings.ToLower(strings.TrimSpace(p))] {
				next = append(next, p)
				continue
			}
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{phrase}
	}
	return out
}

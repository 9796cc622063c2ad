package normalize

import (
	"regexp"
	"strings"
)

const (
	// maxSkillLength is the longest candidate still plausibly a skill name.
	maxSkillLength = 40
	// maxSkillWords caps the word count; longer phrases are sentence fragments.
	maxSkillWords = 5
)

// taskVerbs lead instruction-style phrases copied from duty lists
// ("maintain equipment", "delegate tasks to team members"). A candidate
// starting with one of these is a task, not a skill.
var taskVerbs = map[string]bool{
	"maintain":    true,
	"organize":    true,
	"develop":     true,
	"coordinate":  true,
	"supervise":   true,
	"monitor":     true,
	"delegate":    true,
	"ensure":      true,
	"perform":     true,
	"manage":      true,
	"oversee":     true,
	"conduct":     true,
	"prepare":     true,
	"assist":      true,
	"provide":     true,
	"complete":    true,
	"follow":      true,
	"implement":   true,
	"review":      true,
	"schedule":    true,
	"inspect":     true,
	"report":      true,
	"work":        true,
}

// rePassiveFragment catches passive-voice task fragments that survive the
// other filters ("equipment that has been serviced").
var rePassiveFragment = regexp.MustCompile(`that (has|have|had) been`)

// IsValid reports whether a candidate phrase is a plausible skill name.
// The filters favor precision over recall: dropping a real skill is
// acceptable, keeping a sentence fragment pollutes the cache.
func IsValid(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}

	lower := strings.ToLower(candidate)
	words := strings.Fields(lower)

	if len(words) > 0 && taskVerbs[words[0]] {
		return false
	}
	if len(candidate) > maxSkillLength {
		return false
	}
	if len(words) > maxSkillWords {
		return false
	}
	if rePassiveFragment.MatchString(lower) {
		return false
	}
	return true
}

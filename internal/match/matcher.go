// Package match scores candidate skill phrases against taxonomy entries
// fetched through a remote lookup, selecting the best match above a
// configurable threshold.
package match

import (
	"context"
	"strings"

	"github.com/martin/skillsource/internal/normalize"
	"github.com/martin/skillsource/internal/taxonomy"
)

// PriorityOccupations are the trade and engineering O*NET-SOC codes most
// relevant to the job board's domain. They are searched first and their
// matches are boosted.
var PriorityOccupations = []string{
	"17-2071.00", // Electrical Engineers
	"17-2112.00", // Industrial Engineers
	"17-2141.00", // Mechanical Engineers
	"47-1011.00", // First-Line Supervisors of Construction Trades
	"47-2031.00", // Carpenters
	"47-2061.00", // Construction Laborers
	"47-2073.00", // Operating Engineers
	"47-2111.00", // Electricians
	"47-2152.00", // Plumbers, Pipefitters, and Steamfitters
	"49-1011.00", // First-Line Supervisors of Mechanics
	"49-3023.00", // Automotive Service Technicians
	"49-9021.00", // HVAC Mechanics and Installers
	"49-9041.00", // Industrial Machinery Mechanics
	"49-9071.00", // Maintenance and Repair Workers
	"51-1011.00", // First-Line Supervisors of Production Workers
	"51-4041.00", // Machinists
	"51-4121.00", // Welders, Cutters, Solderers, and Brazers
}

// softSkillFallbacks are single-word soft skills whose bare keyword search
// often returns nothing; retrying with a " skills" suffix usually does.
var softSkillFallbacks = map[string]bool{
	"communication": true,
	"teamwork":      true,
	"leadership":    true,
	"organization":  true,
	"adaptability":  true,
	"dependability": true,
}

// Config holds the matcher's tuning parameters. Threshold and
// PriorityBoost are empirically chosen and deliberately configurable.
type Config struct {
	// Threshold is the minimum score for a match to count.
	Threshold float64
	// PriorityBoost multiplies scores from priority occupations. The
	// boosted score is clamped to 1.0.
	PriorityBoost float64
	// MaxOccupations caps how many occupations are searched per candidate.
	MaxOccupations int
	// EarlyExitScore stops the occupation loop once a priority-occupation
	// match reaches it, saving remote calls.
	EarlyExitScore float64
	// PriorityCodes overrides PriorityOccupations when non-nil.
	PriorityCodes []string
}

// DefaultConfig returns the tuning used in production.
func DefaultConfig() Config {
	return Config{
		Threshold:      0.35,
		PriorityBoost:  1.3,
		MaxOccupations: 8,
		EarlyExitScore: 0.85,
	}
}

// Matcher finds the best taxonomy entry for a candidate skill phrase.
type Matcher struct {
	lookup   taxonomy.RemoteLookup
	cfg      Config
	priority map[string]bool
}

// New creates a Matcher over the given remote lookup. Zero-valued config
// fields fall back to DefaultConfig.
func New(lookup taxonomy.RemoteLookup, cfg Config) *Matcher {
	def := DefaultConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.PriorityBoost <= 0 {
		cfg.PriorityBoost = def.PriorityBoost
	}
	if cfg.MaxOccupations <= 0 {
		cfg.MaxOccupations = def.MaxOccupations
	}
	if cfg.EarlyExitScore <= 0 {
		cfg.EarlyExitScore = def.EarlyExitScore
	}

	codes := cfg.PriorityCodes
	if codes == nil {
		codes = PriorityOccupations
	}
	priority := make(map[string]bool, len(codes))
	for _, code := range codes {
		priority[code] = true
	}

	return &Matcher{lookup: lookup, cfg: cfg, priority: priority}
}

// Match returns the best taxonomy entry for candidate, or nil when nothing
// scores above the threshold. Per-occupation lookup failures degrade to
// "no skills from this occupation"; only terminal errors (auth) propagate.
func (m *Matcher) Match(ctx context.Context, candidate string) (*taxonomy.Entry, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil, nil
	}

	occupations, err := m.search(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if len(occupations) == 0 {
		return nil, nil
	}

	ordered := m.orderOccupations(occupations)

	var best *taxonomy.Entry
	var bestScore float64
	for _, occ := range ordered {
		skills, err := m.lookup.SkillsFor(ctx, occ.Code)
		if err != nil {
			if taxonomy.IsTerminal(err) {
				return nil, err
			}
			// Treat as no skills from this occupation.
			continue
		}

		isPriority := m.priority[occ.Code]
		for _, skill := range skills {
			if !normalize.IsValid(skill.Name) {
				continue
			}
			score := Score(candidate, skill.Name)
			if isPriority {
				score *= m.cfg.PriorityBoost
				if score > 1.0 {
					score = 1.0
				}
			}
			if score >= m.cfg.Threshold && score > bestScore {
				bestScore = score
				best = &taxonomy.Entry{
					ID:          skill.ID,
					Name:        skill.Name,
					Description: skill.Description,
					Occupation:  occ,
				}
			}
		}

		if isPriority && bestScore > m.cfg.EarlyExitScore {
			break
		}
	}

	return best, nil
}

// search runs the keyword search, falling back to "<candidate> skills" for
// known soft-skill words when the bare query returns nothing.
func (m *Matcher) search(ctx context.Context, candidate string) ([]taxonomy.Occupation, error) {
	occupations, err := m.lookup.Search(ctx, candidate)
	if err != nil {
		if taxonomy.IsTerminal(err) {
			return nil, err
		}
		occupations = nil
	}
	if len(occupations) > 0 {
		return occupations, nil
	}

	if !softSkillFallbacks[strings.ToLower(candidate)] {
		return nil, nil
	}
	occupations, err = m.lookup.Search(ctx, candidate+" skills")
	if err != nil {
		if taxonomy.IsTerminal(err) {
			return nil, err
		}
		return nil, nil
	}
	return occupations, nil
}

// orderOccupations puts priority occupations first and truncates the list
// to the configured cap.
func (m *Matcher) orderOccupations(occupations []taxonomy.Occupation) []taxonomy.Occupation {
	ordered := make([]taxonomy.Occupation, 0, len(occupations))
	for _, occ := range occupations {
		if m.priority[occ.Code] {
			ordered = append(ordered, occ)
		}
	}
	for _, occ := range occupations {
		if !m.priority[occ.Code] {
			ordered = append(ordered, occ)
		}
	}
	if len(ordered) > m.cfg.MaxOccupations {
		ordered = ordered[:m.cfg.MaxOccupations]
	}
	return ordered
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/martin/skillsource/internal/cache"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSkillsToShow is the number of sample skills displayed per section
	maxSkillsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBuildSummary outputs a human-readable summary of a cache build.
func (p *Printer) PrintBuildSummary(snap *cache.Snapshot) {
	if snap == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Build:     %s\n", snap.BuildID))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", snap.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills:    %d\n", snap.Stats.TotalSkills))
	sb.WriteString(fmt.Sprintf("Matched:   %d\n", snap.Stats.Matched))
	sb.WriteString(fmt.Sprintf("Unmatched: %d\n", snap.Stats.Unmatched))
	sb.WriteString(fmt.Sprintf("Rate:      %s", snap.Stats.MatchRate))

	p.printBox("Skill Cache Build", sb.String())
}

// PrintUnmatched lists a sample of skills that found no taxonomy entry.
func (p *Printer) PrintUnmatched(snap *cache.Snapshot) {
	if snap == nil {
		return
	}

	var unmatched []string
	for key, rec := range snap.Cache {
		if rec.Taxonomy == nil {
			unmatched = append(unmatched, key)
		}
	}
	if len(unmatched) == 0 {
		return
	}
	// Map iteration order is random; sort so the sample is stable.
	sort.Strings(unmatched)

	var sb strings.Builder
	shown := unmatched
	if len(shown) > maxSkillsToShow {
		shown = shown[:maxSkillsToShow]
	}
	for _, skill := range shown {
		sb.WriteString(fmt.Sprintf("- %s\n", skill))
	}
	if len(unmatched) > maxSkillsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(unmatched)-maxSkillsToShow))
	}

	p.printBox(fmt.Sprintf("Unmatched Skills (%d)", len(unmatched)), strings.TrimRight(sb.String(), "\n"))
}

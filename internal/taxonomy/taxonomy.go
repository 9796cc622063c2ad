// Package taxonomy provides access to the O*NET occupational taxonomy:
// domain types, the remote lookup capability, and an HTTP client with
// throttling, retries, and response caching.
package taxonomy

import (
	"context"
	"errors"
	"fmt"
)

// Occupation is an O*NET-SOC occupation returned by a keyword search.
type Occupation struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Skill is one skill element associated with an occupation.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Entry is a standardized taxonomy entry: a skill plus the occupation it
// was sourced from. Identity is ID. Entries are immutable once created.
type Entry struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Occupation  Occupation `json:"occupation"`
}

// RemoteLookup is the capability consumed by the matcher: keyword search
// over occupations plus per-occupation skill retrieval. Implementations
// call the real taxonomy service; tests substitute fakes.
type RemoteLookup interface {
	Search(ctx context.Context, keyword string) ([]Occupation, error)
	SkillsFor(ctx context.Context, occupationCode string) ([]Skill, error)
}

// Error describes a failed taxonomy service call. Retryable errors are
// transient (network, timeout, 5xx); terminal errors (auth) require
// operator intervention and abort batch builds.
type Error struct {
	Op        string
	URL       string
	Message   string
	Retryable bool
	Terminal  bool
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsTerminal reports whether err is a taxonomy error that must surface to
// the batch caller instead of degrading to "no match".
func IsTerminal(err error) bool {
	var terr *Error
	if !errors.As(err, &terr) {
		return false
	}
	return terr.Terminal
}

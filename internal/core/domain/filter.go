package domain

import (
	"fmt"
	"strings"
	"time"
)

// Filter selects a subset of fragments. All set fields combine with
// logical AND; nil fields impose no constraint. The same semantics are
// shared by listing, timeline and graph views so every consumer agrees
// on meaning.
type Filter struct {
	// Project matches Fragment.Project exactly. A fragment with no
	// project never matches a set filter.
	Project *string

	// SourceType matches the capture channel exactly.
	SourceType *SourceType

	// Since is an inclusive lower bound on CapturedAt.
	Since *time.Time

	// Until is an inclusive upper bound on CapturedAt. When parsed from
	// a date without a time component, the bound is end of that day.
	Until *time.Time

	// Query restricts to fragments whose content, project or topics
	// contain every query token, case-insensitively.
	Query string
}

// Matches reports whether the fragment satisfies every set constraint.
func (f Filter) Matches(fr Fragment) bool {
	if f.Project != nil {
		if fr.Project == nil || *fr.Project != *f.Project {
			return false
		}
	}
	if f.SourceType != nil && fr.SourceType != *f.SourceType {
		return false
	}
	if f.Since != nil && fr.CapturedAt.Before(*f.Since) {
		return false
	}
	if f.Until != nil && fr.CapturedAt.After(*f.Until) {
		return false
	}
	if f.Query != "" && !matchesQuery(fr, f.Query) {
		return false
	}
	return true
}

// matchesQuery reports whether every lowercased query token appears as
// a substring of the content, the project, or any topic.
func matchesQuery(fr Fragment, query string) bool {
	content := strings.ToLower(fr.Content)
	project := ""
	if fr.Project != nil {
		project = strings.ToLower(*fr.Project)
	}
	topics := make([]string, len(fr.Topics))
	for i, t := range fr.Topics {
		topics[i] = strings.ToLower(t)
	}

	for _, token := range Tokenize(query) {
		if strings.Contains(content, token) || strings.Contains(project, token) {
			continue
		}
		found := false
		for _, topic := range topics {
			if strings.Contains(topic, token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Time bound layouts accepted at the CLI and API edges.
const (
	dateLayout = "2006-01-02"
)

// ParseSince parses a lower time bound. Accepts a bare date
// ("2024-01-10", meaning start of day) or RFC 3339.
func ParseSince(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time bound %q", ErrValidation, s)
	}
	return t, nil
}

// ParseUntil parses an upper time bound. A bare date expands to the end
// of that day (23:59:59.999) so the bound stays inclusive; RFC 3339
// values are taken as given.
func ParseUntil(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return EndOfDay(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time bound %q", ErrValidation, s)
	}
	return t, nil
}

// EndOfDay returns 23:59:59.999 on the day of t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999*int(time.Millisecond), t.Location())
}

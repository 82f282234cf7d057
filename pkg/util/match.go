package util

import "strings"

// MatchMode selects how a candidate name is compared with a query.
type MatchMode int

const (
	// MatchContains accepts candidates that contain the query.
	MatchContains MatchMode = iota
	// MatchEither accepts candidates that contain the query or are contained in it.
	MatchEither
)

// ContainsFold reports whether sub is within s, ignoring case.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Matches reports whether candidate matches query under mode.
func Matches(candidate, query string, mode MatchMode) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	c := strings.ToLower(candidate)
	if strings.Contains(c, q) {
		return true
	}
	return mode == MatchEither && c != "" && strings.Contains(q, c)
}

// BestMatch returns the index of the candidate that best matches query, or -1.
//
// Ranking: an exact case-insensitive match wins; otherwise the matching
// candidate whose length is closest to the query's; remaining ties go to the
// earliest candidate. Callers iterating maps must pass sorted keys.
func BestMatch(candidates []string, query string, mode MatchMode) int {
	q := strings.TrimSpace(query)
	best, bestDist := -1, 0
	for i, c := range candidates {
		if !Matches(c, q, mode) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(c), q) {
			return i
		}
		d := len(c) - len(q)
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

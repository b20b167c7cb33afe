package geonames

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestInputLen limits query length before any name scanning happens.
// Levenshtein cost grows with input length, so excessively long queries are
// truncated rather than scanned in full.
const maxSuggestInputLen = 256

// maxFuzzyDistance caps the edit distance for fuzzy suggestions to keep the
// full-index scan from matching everything.
const maxFuzzyDistance = 3

// Suggest returns up to limit indexed names that literally start with
// prefix. Matching is case-sensitive and the order is whatever the index
// traversal produces; results are truncated at limit, not ranked.
func (s *Service) Suggest(prefix string, limit int) ([]string, error) {
	prefix, err := checkSuggestArgs(prefix, limit)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, limit)
	for name := range s.ix.byName {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
			if len(names) == limit {
				break
			}
		}
	}
	return names, nil
}

// SuggestFuzzy behaves like Suggest, then fills any remaining slots with
// names within maxDist edits of the query. Literal prefix matches always
// come first and are never reordered; the fuzzy pass is purely additive.
func (s *Service) SuggestFuzzy(prefix string, limit, maxDist int) ([]string, error) {
	names, err := s.Suggest(prefix, limit)
	if err != nil {
		return nil, err
	}
	if maxDist <= 0 || len(names) == limit {
		return names, nil
	}
	if maxDist > maxFuzzyDistance {
		maxDist = maxFuzzyDistance
	}
	if runes := []rune(prefix); len(runes) > maxSuggestInputLen {
		prefix = string(runes[:maxSuggestInputLen])
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for name := range s.ix.byName {
		if seen[name] || !fuzzyMatch(prefix, name, maxDist) {
			continue
		}
		names = append(names, name)
		if len(names) == limit {
			break
		}
	}
	return names, nil
}

func checkSuggestArgs(prefix string, limit int) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: prefix must not be empty", ErrInvalidArgument)
	}
	if limit <= 0 || limit > MaxPageSize {
		return "", fmt.Errorf("%w: limit must be in (0, %d]", ErrInvalidArgument, MaxPageSize)
	}
	if runes := []rune(prefix); len(runes) > maxSuggestInputLen {
		prefix = string(runes[:maxSuggestInputLen])
	}
	return prefix, nil
}

// fuzzyMatch reports whether candidate is within maxDist edits of query,
// case-insensitively.
func fuzzyMatch(query, candidate string, maxDist int) bool {
	dist := levenshtein.ComputeDistance(
		strings.ToLower(query),
		strings.ToLower(candidate),
	)
	return dist <= maxDist
}

// Package intent implements the query intent classifier and its associated
// scoring weight profiles, spec §4.5.
package intent

import (
	"regexp"
	"sort"
	"strings"
)

// Intent is one of the four recognized query intents.
type Intent string

const (
	Semantic   Intent = "semantic"
	Episodic   Intent = "episodic"
	Procedural Intent = "procedural"
	Decision   Intent = "decision"
)

// rule is one entry of the fixed ordered rule table: a regex pattern
// associated with the intent it votes for.
type rule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// rules is evaluated in order for every query; order only matters for
// determinism of iteration, since every matching rule casts one vote.
var rules = []rule{
	{Episodic, regexp.MustCompile(`(?i)\b(remember|recall|last time|yesterday|previously|before|happened|when did|used to)\b`)},
	{Episodic, regexp.MustCompile(`(?i)\bwhat (did|happened)\b`)},
	{Procedural, regexp.MustCompile(`(?i)\bhow (do|to|can|should) i\b`)},
	{Procedural, regexp.MustCompile(`(?i)\b(steps|process|guide|tutorial|procedure|walkthrough)\b`)},
	{Decision, regexp.MustCompile(`(?i)\bshould i\b`)},
	{Decision, regexp.MustCompile(`(?i)\b(decide|decision|choice|choose|which (one|option)|trade[- ]?off)\b`)},
	{Semantic, regexp.MustCompile(`(?i)\bwhat is\b`)},
	{Semantic, regexp.MustCompile(`(?i)\b(define|meaning|concept|explain)\b`)},
}

// Classification is the classifier's output for one query.
type Classification struct {
	Intent     Intent
	Confidence float64
	Entities   []string
}

// Classify selects the intent with the most matching rules among the fixed
// ordered table, defaulting to Semantic on a tie (including zero matches),
// and extracts entities by substring-matching the query against known
// titles, preferring longer matches.
func Classify(query string, knownTitles []string) Classification {
	counts := map[Intent]int{}
	for _, r := range rules {
		if r.pattern.MatchString(query) {
			counts[r.intent]++
		}
	}

	best := Semantic
	bestCount := 0
	for _, i := range []Intent{Semantic, Episodic, Procedural, Decision} {
		if counts[i] > bestCount {
			best = i
			bestCount = counts[i]
		}
	}
	for _, i := range []Intent{Episodic, Procedural, Decision} {
		if i != best && bestCount > 0 && counts[i] == bestCount {
			best = Semantic
		}
	}

	var confidence float64
	switch {
	case bestCount >= 2:
		confidence = 1.0
	case bestCount == 1:
		confidence = 0.7
	default:
		confidence = 0.5
	}

	return Classification{
		Intent:     best,
		Confidence: confidence,
		Entities:   extractEntities(query, knownTitles),
	}
}

// extractEntities finds known titles mentioned (case-insensitively) in the
// query, preferring longer matches and never reporting a title whose span
// is already covered by a longer match.
func extractEntities(query string, knownTitles []string) []string {
	lower := strings.ToLower(query)
	titles := append([]string(nil), knownTitles...)
	sort.Slice(titles, func(i, j int) bool { return len(titles[i]) > len(titles[j]) })

	taken := make([]bool, len(lower))
	var found []string
	for _, title := range titles {
		needle := strings.ToLower(title)
		if needle == "" {
			continue
		}
		start := 0
		for {
			idx := strings.Index(lower[start:], needle)
			if idx < 0 {
				break
			}
			s := start + idx
			e := s + len(needle)
			if !anyTaken(taken, s, e) {
				mark(taken, s, e)
				found = append(found, title)
				break
			}
			start = s + 1
		}
	}
	return found
}

func anyTaken(taken []bool, s, e int) bool {
	for i := s; i < e; i++ {
		if taken[i] {
			return true
		}
	}
	return false
}

func mark(taken []bool, s, e int) {
	for i := s; i < e; i++ {
		taken[i] = true
	}
}

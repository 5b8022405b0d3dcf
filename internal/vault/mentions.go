package vault

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold() // Unicode-aware case folding, per SPEC_FULL §A.

// Mention is a single, non-overlapping occurrence of a known title inside a
// body of text.
type Mention struct {
	Title      string // the canonical title that matched
	Start, End int    // byte offsets into the scanned body
}

// DetectMentions scans body for occurrences of any of titles, longest-first,
// matched case-insensitively with word-boundary semantics and a
// slug-flexible inner pattern: interior dashes match dash-or-whitespace and
// vice versa. Matches already inside [[ ]] wikilink tokens are skipped, and
// matches never overlap (§4.1).
func DetectMentions(body string, titles []string) []Mention {
	if body == "" || len(titles) == 0 {
		return nil
	}

	ordered := make([]string, len(titles))
	copy(ordered, titles)
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })

	linked := linkedSpans(body)
	folded := foldCaser.String(body)

	taken := make([]bool, len(body))
	var mentions []Mention

	for _, title := range ordered {
		if strings.TrimSpace(title) == "" {
			continue
		}
		pattern := slugFlexiblePattern(title)
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(folded, -1) {
			start, end := loc[0], loc[1]
			if overlaps(taken, start, end) || insideAny(linked, start, end) {
				continue
			}
			mark(taken, start, end)
			mentions = append(mentions, Mention{Title: title, Start: start, End: end})
		}
	}

	sort.Slice(mentions, func(i, j int) bool { return mentions[i].Start < mentions[j].Start })
	return mentions
}

// slugFlexiblePattern builds a case-folded, word-bounded regex for title
// where interior '-' matches '-' or whitespace and vice versa.
func slugFlexiblePattern(title string) string {
	title = foldCaser.String(title)
	var b strings.Builder
	b.WriteString(`\b`)
	for _, r := range title {
		switch r {
		case '-', ' ':
			b.WriteString(`[-\s]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`\b`)
	return b.String()
}

func overlaps(taken []bool, start, end int) bool {
	for i := start; i < end && i < len(taken); i++ {
		if taken[i] {
			return true
		}
	}
	return false
}

func mark(taken []bool, start, end int) {
	for i := start; i < end && i < len(taken); i++ {
		taken[i] = true
	}
}

type span struct{ start, end int }

// linkedSpans returns the byte ranges (in the original body) covered by
// [[...]] tokens, so mention detection can skip them.
func linkedSpans(body string) []span {
	var out []span
	for _, loc := range wikilinkRe.FindAllStringIndex(body, -1) {
		out = append(out, span{loc[0], loc[1]})
	}
	return out
}

func insideAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if start >= s.start && end <= s.end {
			return true
		}
	}
	return false
}

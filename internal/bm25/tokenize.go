// Package bm25 implements the field-weighted inverted index and Okapi
// BM25 scoring of spec §4.6.
package bm25

import (
	"strings"
	"unicode"
)

// stopwords is a fixed English stopword list dropped during tokenization.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true,
	"will": true, "with": true, "this": true, "but": true, "or": true,
	"not": true, "they": true, "you": true, "their": true, "have": true,
	"had": true, "can": true, "if": true, "so": true, "we": true, "i": true,
}

// Tokenize lowercases, splits on non-alphanumeric runs, and drops tokens
// shorter than two characters and stopwords.
func Tokenize(s string) []string {
	var toks []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := b.String()
		b.Reset()
		if len(tok) < 2 || stopwords[tok] {
			return
		}
		toks = append(toks, tok)
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return toks
}

package bm25

import (
	"math"
	"sort"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

// Params tunes the weighted bag construction and the Okapi formula.
type Params struct {
	TitleBoost       float64 // default 3.0
	DescriptionBoost float64 // default 2.0
	K1               float64 // default 1.2
	B                float64 // default 0.75
}

// DefaultParams matches spec §4.6's documented defaults.
func DefaultParams() Params {
	return Params{TitleBoost: 3.0, DescriptionBoost: 2.0, K1: 1.2, B: 0.75}
}

// Index is the inverted index term -> doc -> weighted frequency, plus the
// per-document length and the corpus average needed by the BM25 formula.
type Index struct {
	postings map[string]map[string]float64
	docLen   map[string]float64
	avgLen   float64
	n        int
}

// Build constructs the index from a set of notes. Title tokens contribute
// TitleBoost copies to the bag, description tokens DescriptionBoost
// copies, body tokens one copy each; document length is the weighted
// token count.
func Build(notes []*models.Note, p Params) *Index {
	idx := &Index{
		postings: make(map[string]map[string]float64),
		docLen:   make(map[string]float64),
	}
	var totalLen float64
	for _, n := range notes {
		bag := make(map[string]float64)
		addWeighted(bag, Tokenize(n.Title), p.TitleBoost)
		addWeighted(bag, Tokenize(n.Description), p.DescriptionBoost)
		addWeighted(bag, Tokenize(n.Body), 1.0)

		var length float64
		for term, weight := range bag {
			length += weight
			if idx.postings[term] == nil {
				idx.postings[term] = make(map[string]float64)
			}
			idx.postings[term][n.Title] = weight
		}
		idx.docLen[n.Title] = length
		totalLen += length
		idx.n++
	}
	if idx.n > 0 {
		idx.avgLen = totalLen / float64(idx.n)
	}
	return idx
}

func addWeighted(bag map[string]float64, tokens []string, weight float64) {
	for _, t := range tokens {
		bag[t] += weight
	}
}

// Hit is one scored document.
type Hit struct {
	Title string
	Score float64
}

// Score runs Okapi BM25 for a query over every document containing at
// least one query term, returning hits sorted by descending score.
func (idx *Index) Score(query string, p Params) []Hit {
	terms := Tokenize(query)
	scores := make(map[string]float64)
	for _, term := range terms {
		docs, ok := idx.postings[term]
		if !ok {
			continue
		}
		idf := idx.idf(len(docs))
		for title, tf := range docs {
			dl := idx.docLen[title]
			norm := 1 - p.B + p.B*dl/idx.avgLen
			if idx.avgLen == 0 {
				norm = 1
			}
			tfNorm := tf * (p.K1 + 1) / (tf + p.K1*norm)
			scores[title] += idf * tfNorm
		}
	}

	hits := make([]Hit, 0, len(scores))
	for title, score := range scores {
		hits = append(hits, Hit{Title: title, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits
}

// idf is ln((N - n + 0.5)/(n + 0.5) + 1), always non-negative.
func (idx *Index) idf(docsWithTerm int) float64 {
	n := float64(docsWithTerm)
	nDocs := float64(idx.n)
	return math.Log((nDocs-n+0.5)/(n+0.5) + 1)
}

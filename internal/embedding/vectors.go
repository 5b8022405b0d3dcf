package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

// DefaultCommunityDim is the dimension of the community projection per §4.4.
const DefaultCommunityDim = 16

// communityPrimes is the fixed table of small primes used to decorrelate
// the alternating sine/cosine community projection bins.
var communityPrimes = []float64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
	59, 61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131,
}

// Vectors is the five-vector representation of one note.
type Vectors struct {
	Title     []float32
	Desc      []float32
	Body      []float32
	Type      []float32
	Community []float32
}

// NoteContext carries the graph-derived facts vector building needs beyond
// the note's own text: its community assignment and the total community
// count (for the projection denominator).
type NoteContext struct {
	CommunityID    int
	CommunityCount int
	OutgoingLinks  []string
}

// BuildVectors computes the five per-note vectors of §4.4 using the given
// embedder for the three text spaces. communityDim sizes the community
// projection (engine.community_dims, §6); DefaultCommunityDim is used when
// it is not positive.
func BuildVectors(ctx context.Context, e Embedder, n *models.Note, nc NoteContext, communityDim int) (Vectors, error) {
	if communityDim <= 0 {
		communityDim = DefaultCommunityDim
	}
	title, err := e.Embed(ctx, n.Title)
	if err != nil {
		return Vectors{}, fmt.Errorf("embedding: title vector: %w", err)
	}
	descText := n.Description
	if strings.TrimSpace(descText) == "" {
		descText = n.Title
	}
	desc, err := e.Embed(ctx, descText)
	if err != nil {
		return Vectors{}, fmt.Errorf("embedding: description vector: %w", err)
	}
	body, err := e.Embed(ctx, EnrichedBody(n, nc.OutgoingLinks))
	if err != nil {
		return Vectors{}, fmt.Errorf("embedding: body vector: %w", err)
	}
	return Vectors{
		Title:     title,
		Desc:      desc,
		Body:      body,
		Type:      TypeVector(n.Type),
		Community: CommunityVector(nc.CommunityID, nc.CommunityCount, communityDim),
	}, nil
}

// EnrichedBody builds the text embedded for the body space: an optional
// "[TYPE] [projects]" prefix line, then title, description, and up to 10
// outgoing link targets as "Connected: a, b, c".
func EnrichedBody(n *models.Note, outgoing []string) string {
	var b strings.Builder
	if n.Type != "" || len(n.Project) > 0 {
		fmt.Fprintf(&b, "[%s] [%s]\n", n.Type, strings.Join(n.Project, " "))
	}
	b.WriteString(n.Title)
	if n.Description != "" {
		b.WriteString("\n")
		b.WriteString(n.Description)
	}
	if len(outgoing) > 0 {
		links := outgoing
		if len(links) > 10 {
			links = links[:10]
		}
		b.WriteString("\nConnected: ")
		b.WriteString(strings.Join(links, ", "))
	}
	return b.String()
}

// TypeVector one-hot encodes a note's type over models.AllTypes (dim 6).
func TypeVector(t models.Type) []float32 {
	v := make([]float32, len(models.AllTypes))
	for i, known := range models.AllTypes {
		if known == t {
			v[i] = 1
			break
		}
	}
	return v
}

// CommunityVector is the deterministic low-dimensional projection of a
// community ID: alternating sine/cosine of community_id * prime_d /
// total_communities. Notes with no community assignment (count == 0) get
// the zero vector, which the composite scorer treats as "no community
// signal" (§4.5).
func CommunityVector(communityID, totalCommunities, dim int) []float32 {
	v := make([]float32, dim)
	if totalCommunities <= 0 {
		return v
	}
	for d := 0; d < dim; d++ {
		prime := communityPrimes[d%len(communityPrimes)]
		theta := float64(communityID) * prime / float64(totalCommunities)
		if d%2 == 0 {
			v[d] = float32(math.Sin(theta))
		} else {
			v[d] = float32(math.Cos(theta))
		}
	}
	return v
}

package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/graph"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

// BuildParams tunes a build pass.
type BuildParams struct {
	Workers      int  // default 4
	Force        bool // recompute even when the content hash is unchanged
	CommunityDim int  // engine.community_dims (§6); DefaultCommunityDim if <= 0
}

// BuildResult summarizes one build pass.
type BuildResult struct {
	Embedded int
	Skipped  int
	Failed   int
}

// Builder drives the incremental embedding build protocol of §4.4: graph
// metrics are computed once up front so community assignments are
// available to every note's community vector, work is fanned out across a
// bounded worker pool, and store writes are serialized through a single
// writer goroutine (sqlite accepts only one writer at a time). Each
// successfully built note is also added to ann, so the ANN prefilter of
// §4.5 has a populated index to query once the corpus grows past
// composite.ANNThreshold.
type Builder struct {
	embedder Embedder
	store    *Store
	ann      ANNIndex
	logger   *slog.Logger
}

// NewBuilder wires an embedder, a store, and an ANN prefilter index into a
// build pipeline. ann may be nil, in which case the build skips indexing
// and composite scoring falls back to scoring every note directly.
func NewBuilder(embedder Embedder, store *Store, ann ANNIndex, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{embedder: embedder, store: store, ann: ann, logger: logger}
}

type buildJob struct {
	note     *models.Note
	hash     string
	outgoing []string
}

type buildOutcome struct {
	title string
	vec   Vectors
	hash  string
	err   error
}

// Build runs one pass over notes, using g for community assignments and
// link enrichment.
func (b *Builder) Build(ctx context.Context, notes []*models.Note, g *graph.Graph, p BuildParams) (BuildResult, error) {
	if p.Workers <= 0 {
		p.Workers = 4
	}

	comm, commCount := g.Communities()

	jobs := make([]buildJob, 0, len(notes))
	var result BuildResult
	for _, n := range notes {
		hash := ContentHash(n.Title, n.Description, n.Body)
		if !p.Force {
			stored, ok, err := b.store.Hash(n.Title)
			if err != nil {
				return result, fmt.Errorf("embedding: build: %w", err)
			}
			if ok && stored == hash {
				result.Skipped++
				b.indexExisting(ctx, n.Title)
				continue
			}
		}
		jobs = append(jobs, buildJob{note: n, hash: hash, outgoing: n.Links})
	}

	if len(jobs) == 0 {
		return result, nil
	}

	outcomes := make(chan buildOutcome, len(jobs))
	grp, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, p.Workers)

	for _, j := range jobs {
		j := j
		grp.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}

			id, _ := g.ID(j.note.Title)
			nc := NoteContext{
				CommunityID:    commIDFor(comm, id),
				CommunityCount: commCount,
				OutgoingLinks:  j.outgoing,
			}
			vec, err := BuildVectors(gctx, b.embedder, j.note, nc, p.CommunityDim)
			outcomes <- buildOutcome{title: j.note.Title, vec: vec, hash: j.hash, err: err}
			return nil
		})
	}

	go func() {
		_ = grp.Wait()
		close(outcomes)
	}()

	now := time.Now()
	for oc := range outcomes {
		if oc.err != nil {
			result.Failed++
			b.logger.Warn("embedding: build failed", slog.String("title", oc.title), slog.String("error", oc.err.Error()))
			continue
		}
		if err := b.store.Upsert(oc.title, oc.vec, oc.hash, now); err != nil {
			result.Failed++
			b.logger.Warn("embedding: store write failed", slog.String("title", oc.title), slog.String("error", err.Error()))
			continue
		}
		b.indexVector(ctx, oc.title, oc.vec.Body)
		result.Embedded++
	}

	return result, nil
}

// indexExisting re-adds an unchanged note's already-persisted body vector to
// ann, since ann is rebuilt fresh alongside the engine while the store
// persists across runs.
func (b *Builder) indexExisting(ctx context.Context, title string) {
	if b.ann == nil {
		return
	}
	rec, err := b.store.Get(title)
	if err != nil || rec == nil {
		return
	}
	b.indexVector(ctx, title, rec.Vectors.Body)
}

func (b *Builder) indexVector(ctx context.Context, title string, bodyVec []float32) {
	if b.ann == nil {
		return
	}
	if err := b.ann.Add(ctx, title, bodyVec); err != nil {
		b.logger.Warn("embedding: ann index add failed", slog.String("title", title), slog.String("error", err.Error()))
	}
}

func commIDFor(comm []int, id int) int {
	if id < 0 || id >= len(comm) {
		return 0
	}
	return comm[id]
}

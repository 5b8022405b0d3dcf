package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/apperr"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/bm25"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/composite"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/embedding"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/fusion"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/intent"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/vault"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/vitality"
)

// QueryRanked runs the full retrieval pipeline of §4.5-§4.7: classify the
// query's intent, score it against the composite, keyword, and graph
// signals, fuse them with score-weighted RRF, inject exploration picks,
// and log the served list to the propensity ledger.
func (e *Engine) QueryRanked(ctx context.Context, query string, limit int) (RankedResult, error) {
	limit = e.limitOrDefault(limit)

	c, err := e.loadCorpus()
	if err != nil {
		return RankedResult{}, err
	}
	if len(c.notes) == 0 {
		return RankedResult{Intent: string(intent.Semantic), Warning: apperr.Warnf("empty_corpus", "vault contains no notes").Error()}, nil
	}

	titles := vault.Titles(c.notes)
	cls := intent.Classify(query, titles)

	var warning string
	if err := e.ensureEmbeddingIndex(ctx, c, false); err != nil {
		warning = fmt.Sprintf("embedding index build failed: %v", err)
		e.logger.Warn("engine: cold-start index build failed", slog.String("error", err.Error()))
	}

	pool := limit * e.cfg.Retrieval.CandidateMultiplier

	compositeHits, err := e.compositeSignal(ctx, c, query, cls, pool)
	if err != nil {
		warning = appendWarning(warning, apperr.Warnf("embedding_unavailable", "composite signal unavailable: %v", err).Error())
		e.logger.Warn("engine: composite signal failed, falling back to keyword+graph", slog.String("error", err.Error()))
		compositeHits = nil
	}

	keywordHits := e.keywordSignal(c, query, pool)
	graphHits := e.graphSignal(c, cls, pool)

	fused := fusion.Fuse(compositeHits, keywordHits, graphHits, e.fusionWeights(), e.cfg.Retrieval.RRFK)
	if len(fused) > limit {
		fused = fused[:limit]
	}

	served := fusion.Inject(fused, titles, e.cfg.Retrieval.ExplorationBudget, nil)

	if e.propLog != nil {
		if err := e.propLog.Append(query, string(cls.Intent), served); err != nil {
			e.logger.Warn("engine: propensity log append failed", slog.String("error", err.Error()))
		}
	}

	return RankedResult{Intent: string(cls.Intent), Results: toResults(served), Warning: warning}, nil
}

// QuerySimilar runs the composite signal alone, with no keyword/graph
// fusion or exploration injection.
func (e *Engine) QuerySimilar(ctx context.Context, query string, limit int) ([]Result, error) {
	limit = e.limitOrDefault(limit)

	c, err := e.loadCorpus()
	if err != nil {
		return nil, err
	}
	if len(c.notes) == 0 {
		return nil, nil
	}

	titles := vault.Titles(c.notes)
	cls := intent.Classify(query, titles)

	if err := e.ensureEmbeddingIndex(ctx, c, false); err != nil {
		e.logger.Warn("engine: cold-start index build failed", slog.String("error", err.Error()))
	}

	hits, err := e.compositeSignal(ctx, c, query, cls, limit)
	if err != nil {
		return nil, fmt.Errorf("engine: similar query: %w", err)
	}
	out := make([]Result, 0, len(hits))
	for _, h := range hits {
		out = append(out, Result{Title: h.Title, Score: h.Score})
	}
	return out, nil
}

// QueryImportant ranks notes by graph authority (damped PageRank-style
// walk), descending.
func (e *Engine) QueryImportant(limit int) ([]Result, error) {
	limit = e.limitOrDefault(limit)

	c, err := e.loadCorpus()
	if err != nil {
		return nil, err
	}
	authority := c.g.Authority(e.cfg.Graph.PagerankAlpha)
	results := make([]Result, c.g.N())
	for id := 0; id < c.g.N(); id++ {
		results[id] = Result{Title: c.g.Title(id), Score: authority[id]}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// QueryFading returns notes whose vitality is at or below threshold,
// ascending (the most-fading notes first).
func (e *Engine) QueryFading(threshold float64, limit int) ([]Result, error) {
	limit = e.limitOrDefault(limit)
	if threshold <= 0 {
		threshold = 0.3
	}

	c, err := e.loadCorpus()
	if err != nil {
		return nil, err
	}
	vp := e.vitalityParams()
	bridges := c.g.Bridges(e.cfg.Graph.HubDegreeMultiplier)
	now := time.Now()

	var results []Result
	for id := 0; id < c.g.N(); id++ {
		n := e.noteByTitle(c.notes, c.g.Title(id))
		if n == nil {
			continue
		}
		v := vitality.Score(vitality.Input{
			Note:               n,
			AgeDays:            n.AgeDays(now),
			InDegree:           c.g.InDegree(id),
			IsBridge:           bridges[id],
			DaysSinceNewInLink: -1,
		}, vp)
		if v <= threshold {
			results = append(results, Result{Title: n.Title, Score: v})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score < results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// QueryOrphans lists notes with no incoming links.
func (e *Engine) QueryOrphans() ([]string, error) {
	c, err := e.loadCorpus()
	if err != nil {
		return nil, err
	}
	return c.g.Orphans(), nil
}

// QueryDangling lists link targets that name no existing note.
func (e *Engine) QueryDangling() ([]string, error) {
	c, err := e.loadCorpus()
	if err != nil {
		return nil, err
	}
	return c.g.DanglingTargets(), nil
}

// QueryBacklinks lists the notes linking to title.
func (e *Engine) QueryBacklinks(title string) ([]string, error) {
	c, err := e.loadCorpus()
	if err != nil {
		return nil, err
	}
	return c.g.Backlinks(title), nil
}

// QueryCrossProject lists notes that bridge more than one project.
func (e *Engine) QueryCrossProject() ([]string, error) {
	c, err := e.loadCorpus()
	if err != nil {
		return nil, err
	}
	return c.g.CrossProject(), nil
}

// IndexBuild runs one embedding build pass, forcing a full recompute when
// force is true.
func (e *Engine) IndexBuild(ctx context.Context, force bool) (IndexBuildResult, error) {
	start := time.Now()
	c, err := e.loadCorpus()
	if err != nil {
		return IndexBuildResult{}, err
	}
	res, err := e.builder.Build(ctx, c.notes, c.g, embedding.BuildParams{Workers: 4, Force: force, CommunityDim: e.cfg.Engine.CommunityDims})
	if err != nil {
		return IndexBuildResult{}, fmt.Errorf("engine: index build: %w", err)
	}
	return IndexBuildResult{
		Indexed:  res.Embedded,
		Skipped:  res.Skipped,
		Failed:   res.Failed,
		Total:    len(c.notes),
		Duration: time.Since(start),
	}, nil
}

// GraphMetrics reports corpus-wide link-graph statistics.
func (e *Engine) GraphMetrics() (GraphMetricsReport, error) {
	c, err := e.loadCorpus()
	if err != nil {
		return GraphMetricsReport{}, err
	}
	edges := 0
	for id := 0; id < c.g.N(); id++ {
		edges += c.g.OutDegree(id)
	}
	_, components := c.g.Components()
	return GraphMetricsReport{
		NoteCount:      c.g.N(),
		EdgeCount:      edges,
		OrphanCount:    len(c.g.Orphans()),
		DanglingCount:  len(c.g.DanglingTargets()),
		BridgeCount:    len(c.g.Bridges(e.cfg.Graph.HubDegreeMultiplier)),
		ComponentCount: components,
	}, nil
}

// GraphCommunities groups notes into their detected communities.
func (e *Engine) GraphCommunities() ([]CommunityReport, error) {
	c, err := e.loadCorpus()
	if err != nil {
		return nil, err
	}
	assign, count := c.g.Communities()
	groups := make([][]string, count)
	for id, comm := range assign {
		groups[comm] = append(groups[comm], c.g.Title(id))
	}
	out := make([]CommunityReport, 0, count)
	for id, titles := range groups {
		out = append(out, CommunityReport{ID: id, Titles: titles})
	}
	return out, nil
}

func (e *Engine) limitOrDefault(limit int) int {
	if limit <= 0 {
		return e.cfg.Retrieval.DefaultLimit
	}
	return limit
}

func (e *Engine) fusionWeights() fusion.Weights {
	return fusion.Weights{
		Composite: e.cfg.Retrieval.SignalWeights.Composite,
		Keyword:   e.cfg.Retrieval.SignalWeights.Keyword,
		Graph:     e.cfg.Retrieval.SignalWeights.Graph,
	}
}

func (e *Engine) vitalityParams() vitality.Params {
	return vitality.Params{
		ActrDecay: e.cfg.Vitality.ActrDecay,
		Rates: vitality.Rates{
			Self:  e.cfg.Vitality.MetabolicRates.Self,
			Notes: e.cfg.Vitality.MetabolicRates.Notes,
			Ops:   e.cfg.Vitality.MetabolicRates.Ops,
		},
		AccessSaturationK:   e.cfg.Vitality.AccessSaturationK,
		StructuralBoostPer:  e.cfg.Vitality.StructuralBoostPer,
		StructuralBoostCap:  e.cfg.Vitality.StructuralBoostCap,
		RevivalDecayRate:    e.cfg.Vitality.RevivalDecayRate,
		RevivalWindowDays:   e.cfg.Vitality.RevivalWindowDays,
		BridgeVitalityFloor: e.cfg.Graph.BridgeVitalityFloor,
	}
}

func appendWarning(existing, next string) string {
	if existing == "" {
		return next
	}
	return existing + "; " + next
}

func toResults(served []fusion.Served) []Result {
	out := make([]Result, len(served))
	for i, s := range served {
		out[i] = Result{Title: s.Title, Score: s.Score, Explored: s.Explored}
	}
	return out
}

func (e *Engine) keywordSignal(c *corpus, query string, limit int) []fusion.SignalHit {
	idx := bm25.Build(c.notes, e.bm25Params())
	hits := idx.Score(query, e.bm25Params())
	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]fusion.SignalHit, len(hits))
	for i, h := range hits {
		out[i] = fusion.SignalHit{Title: h.Title, Score: h.Score}
	}
	return out
}

func (e *Engine) bm25Params() bm25.Params {
	return bm25.Params{
		TitleBoost:       e.cfg.BM25.TitleBoost,
		DescriptionBoost: e.cfg.BM25.DescriptionBoost,
		K1:               e.cfg.BM25.K1,
		B:                e.cfg.BM25.B,
	}
}

// graphSignal runs a personalized walk seeded by the query's extracted
// entities, so the graph's structural signal reflects relevance to the
// query rather than corpus-wide importance; with no entities it falls
// back to the uniform-teleport walk.
func (e *Engine) graphSignal(c *corpus, cls intent.Classification, limit int) []fusion.SignalHit {
	walk := c.g.PersonalizedWalk(e.cfg.Graph.PagerankAlpha, cls.Entities, 20)
	hits := make([]fusion.SignalHit, c.g.N())
	for id := 0; id < c.g.N(); id++ {
		hits[id] = fusion.SignalHit{Title: c.g.Title(id), Score: walk[id]}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func (e *Engine) compositeSignal(ctx context.Context, c *corpus, query string, cls intent.Classification, limit int) ([]fusion.SignalHit, error) {
	facts, err := e.noteFacts(c)
	if err != nil {
		return nil, err
	}
	candidates, err := composite.Score(ctx, e.embedder, query, cls, facts, e.ann, limit, e.cfg.Engine.PiecewiseBins)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrEmbeddingUnavailable, err)
	}
	out := make([]fusion.SignalHit, len(candidates))
	for i, cand := range candidates {
		out[i] = fusion.SignalHit{Title: cand.Title, Score: cand.Score}
	}
	return out, nil
}

// noteFacts assembles composite.NoteFacts for every note that currently
// has a persisted embedding; notes whose embedding build failed are
// simply absent from the composite candidate pool (§7's degrade-gracefully
// contract), not treated as a hard error.
func (e *Engine) noteFacts(c *corpus) ([]composite.NoteFacts, error) {
	records, err := e.store.All()
	if err != nil {
		return nil, fmt.Errorf("engine: read embedding store: %w", err)
	}
	byTitle := make(map[string]*models.Note, len(c.notes))
	for _, n := range c.notes {
		byTitle[n.Title] = n
	}

	authority := c.g.Authority(e.cfg.Graph.PagerankAlpha)
	maxAuthority := 0.0
	for _, a := range authority {
		if a > maxAuthority {
			maxAuthority = a
		}
	}
	bridges := c.g.Bridges(e.cfg.Graph.HubDegreeMultiplier)
	vp := e.vitalityParams()
	now := time.Now()

	facts := make([]composite.NoteFacts, 0, len(records))
	for _, rec := range records {
		n, ok := byTitle[rec.Title]
		if !ok {
			continue
		}
		id, ok := c.g.ID(rec.Title)
		if !ok {
			continue
		}
		v := vitality.Score(vitality.Input{
			Note:               n,
			AgeDays:            n.AgeDays(now),
			InDegree:           c.g.InDegree(id),
			IsBridge:           bridges[id],
			DaysSinceNewInLink: -1,
		}, vp)

		facts = append(facts, composite.NoteFacts{
			Title:          rec.Title,
			Vectors:        rec.Vectors,
			DaysSinceIndex: now.Sub(rec.IndexedAt).Hours() / 24,
			Vitality:       v,
			Pagerank:       authority[id],
			MaxPagerank:    maxAuthority,
		})
	}
	return facts, nil
}

// ensureEmbeddingIndex implements §4.7's cold-start handling: if the
// embedding store has no rows yet, a synchronous build runs before the
// composite signal is consulted.
func (e *Engine) ensureEmbeddingIndex(ctx context.Context, c *corpus, force bool) error {
	records, err := e.store.All()
	if err != nil {
		return fmt.Errorf("read embedding store: %w", err)
	}
	if len(records) > 0 && !force {
		return nil
	}
	_, err = e.builder.Build(ctx, c.notes, c.g, embedding.BuildParams{Workers: 4, Force: force, CommunityDim: e.cfg.Engine.CommunityDims})
	return err
}

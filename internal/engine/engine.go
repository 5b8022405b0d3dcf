// Package engine wires the corpus reader, link graph, vitality scorer,
// embedding index, keyword index, intent classifier, composite scorer,
// fusion stage, and propensity log into the operation set of spec §6.
package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/embedding"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/graph"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/propensity"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/vault"
)

// Engine is the top-level retrieval core: a handle on the vault, its
// derived indices, and the config that tunes every signal.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	provider vault.Provider
	reader   *vault.Reader

	embedder embedding.Embedder
	store    *embedding.Store
	ann      embedding.ANNIndex
	builder  *embedding.Builder

	propLog *propensity.Log
}

// New constructs an Engine from a validated Config, opening the embedding
// store and propensity log as durable handles. Close releases them.
func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	notesDir := filepath.Join(cfg.Vault.Path, "notes")
	if err := os.MkdirAll(notesDir, 0o755); err != nil {
		return nil, fmt.Errorf("engine: create notes dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Engine.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("engine: create engine state dir: %w", err)
	}

	provider, err := vault.NewFS(notesDir)
	if err != nil {
		return nil, fmt.Errorf("engine: open vault: %w", err)
	}
	reader := vault.NewReader(provider, logger)

	store, err := embedding.OpenStore(cfg.Engine.DBPath)
	if err != nil {
		return nil, fmt.Errorf("engine: open embedding store: %w", err)
	}

	base, err := embedding.NewEmbedder(cfg.Engine.EmbeddingModel, cfg.Engine.EmbeddingDims)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("engine: construct embedder: %w", err)
	}
	cached, err := embedding.NewModelCache(base, 4096)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("engine: wrap embedder cache: %w", err)
	}

	var ann embedding.ANNIndex
	chromemIdx, err := embedding.NewChromemIndex("ori-mnemos")
	if err != nil {
		logger.Warn("engine: chromem ANN index unavailable, using exact fallback", slog.String("error", err.Error()))
		ann = embedding.NewFallbackIndex()
	} else {
		ann = chromemIdx
	}

	builder := embedding.NewBuilder(cached, store, ann, logger)

	e := &Engine{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		reader:   reader,
		embedder: cached,
		store:    store,
		ann:      ann,
		builder:  builder,
	}

	if cfg.IPS.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.IPS.LogPath), 0o755); err != nil {
			store.Close()
			return nil, fmt.Errorf("engine: create propensity log dir: %w", err)
		}
		plog, err := propensity.Open(cfg.IPS.LogPath)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("engine: open propensity log: %w", err)
		}
		e.propLog = plog
	}

	return e, nil
}

// Close releases the engine's durable handles.
func (e *Engine) Close() error {
	var errs []error
	if e.propLog != nil {
		if err := e.propLog.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := e.store.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("engine: close: %v", errs)
	}
	return nil
}

// corpus is one consistent snapshot of the vault and its derived graph,
// read fresh for every operation so edits on disk are always reflected.
type corpus struct {
	notes []*models.Note
	g     *graph.Graph
}

func (e *Engine) loadCorpus() (*corpus, error) {
	notes, err := e.reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("engine: read vault: %w", err)
	}
	return &corpus{notes: notes, g: graph.Build(notes)}, nil
}

func (e *Engine) noteByTitle(notes []*models.Note, title string) *models.Note {
	for _, n := range notes {
		if n.Title == title {
			return n
		}
	}
	return nil
}

// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/engine"
)

// Run constructs the engine from the configured options and executes the
// configured Action, printing its result as JSON to stdout.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	if app.action == nil {
		return fmt.Errorf("action is required")
	}

	cfg := app.config

	logger := app.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
	}
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("engine_db_path", cfg.Engine.DBPath),
		slog.String("log_level", cfg.App.LogLevel.String()))

	eng, err := engine.New(toEngineConfig(cfg), logger)
	if err != nil {
		return fmt.Errorf("construct engine: %w", err)
	}
	defer func() {
		if err := eng.Close(); err != nil {
			logger.Warn("engine close failed", slog.String("error", err.Error()))
		}
	}()

	result, err := app.action(ctx, eng)
	if err != nil {
		return fmt.Errorf("run action: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// toEngineConfig maps the application config onto the engine's own config
// shape, keeping the engine package free of a dependency back on internal.
func toEngineConfig(cfg *Config) engine.Config {
	return engine.Config{
		Vault: engine.VaultConfig{Path: cfg.Vault.Path},
		Engine: engine.EngineConfig{
			EmbeddingModel: cfg.Engine.EmbeddingModel,
			EmbeddingDims:  cfg.Engine.EmbeddingDims,
			PiecewiseBins:  cfg.Engine.PiecewiseBins,
			CommunityDims:  cfg.Engine.CommunityDims,
			DBPath:         cfg.Engine.DBPath,
		},
		Retrieval: engine.RetrievalConfig{
			DefaultLimit:        cfg.Retrieval.DefaultLimit,
			CandidateMultiplier: cfg.Retrieval.CandidateMultiplier,
			RRFK:                cfg.Retrieval.RRFK,
			SignalWeights: engine.SignalWeightsConfig{
				Composite: cfg.Retrieval.SignalWeights.Composite,
				Keyword:   cfg.Retrieval.SignalWeights.Keyword,
				Graph:     cfg.Retrieval.SignalWeights.Graph,
			},
			ExplorationBudget: cfg.Retrieval.ExplorationBudget,
		},
		BM25: engine.BM25Config{
			K1:               cfg.BM25.K1,
			B:                cfg.BM25.B,
			TitleBoost:       cfg.BM25.TitleBoost,
			DescriptionBoost: cfg.BM25.DescriptionBoost,
		},
		Graph: engine.GraphConfig{
			PagerankAlpha:       cfg.Graph.PagerankAlpha,
			BridgeVitalityFloor: cfg.Graph.BridgeVitalityFloor,
			HubDegreeMultiplier: cfg.Graph.HubDegreeMultiplier,
		},
		Vitality: engine.VitalityConfig{
			ActrDecay: cfg.Vitality.ActrDecay,
			MetabolicRates: engine.MetabolicRatesConfig{
				Self:  cfg.Vitality.MetabolicRates.Self,
				Notes: cfg.Vitality.MetabolicRates.Notes,
				Ops:   cfg.Vitality.MetabolicRates.Ops,
			},
			AccessSaturationK:  cfg.Vitality.AccessSaturationK,
			StructuralBoostPer: cfg.Vitality.StructuralBoostPer,
			StructuralBoostCap: cfg.Vitality.StructuralBoostCap,
			RevivalDecayRate:   cfg.Vitality.RevivalDecayRate,
			RevivalWindowDays:  cfg.Vitality.RevivalWindowDays,
		},
		IPS: engine.IPSConfig{
			Enabled: cfg.IPS.Enabled,
			Epsilon: cfg.IPS.Epsilon,
			LogPath: cfg.IPS.LogPath,
		},
	}
}

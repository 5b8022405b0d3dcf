// Package internal wires the engine's configuration and construction.
package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Vault     VaultConfig       `yaml:"vault"`
	Engine    EngineConfig      `yaml:"engine"`
	Retrieval RetrievalConfig   `yaml:"retrieval"`
	BM25      BM25Config        `yaml:"bm25"`
	Graph     GraphConfig       `yaml:"graph"`
	Vitality  VitalityConfig    `yaml:"vitality"`
	IPS       IPSConfig         `yaml:"ips"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Retrieval.Validate(); err != nil {
		return err
	}
	if err := c.BM25.Validate(); err != nil {
		return err
	}
	if err := c.Graph.Validate(); err != nil {
		return err
	}
	if err := c.Vitality.Validate(); err != nil {
		return err
	}
	return c.IPS.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error { return nil }

// VaultConfig holds the path to the Markdown vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// EngineConfig holds the embedding and encoding tunables of §6.
type EngineConfig struct {
	EmbeddingModel string `yaml:"embedding_model"`
	EmbeddingDims  int    `yaml:"embedding_dims"`
	PiecewiseBins  int    `yaml:"piecewise_bins"`
	CommunityDims  int    `yaml:"community_dims"`
	DBPath         string `yaml:"db_path"`
}

// Validate validates the engine configuration.
func (c *EngineConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.EmbeddingDims, validation.Min(1)),
		validation.Field(&c.PiecewiseBins, validation.Min(1)),
		validation.Field(&c.CommunityDims, validation.Min(1)),
		validation.Field(&c.DBPath, validation.Required),
	)
}

// SignalWeightsConfig mirrors fusion.Weights for YAML/env loading.
type SignalWeightsConfig struct {
	Composite float64 `yaml:"composite"`
	Keyword   float64 `yaml:"keyword"`
	Graph     float64 `yaml:"graph"`
}

// RetrievalConfig holds the fusion and candidate-generation tunables.
type RetrievalConfig struct {
	DefaultLimit        int                 `yaml:"default_limit"`
	CandidateMultiplier int                 `yaml:"candidate_multiplier"`
	RRFK                int                 `yaml:"rrf_k"`
	SignalWeights       SignalWeightsConfig `yaml:"signal_weights"`
	ExplorationBudget   float64             `yaml:"exploration_budget"`
}

// Validate validates the retrieval configuration.
func (c *RetrievalConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultLimit, validation.Min(1)),
		validation.Field(&c.CandidateMultiplier, validation.Min(1)),
		validation.Field(&c.RRFK, validation.Min(0)),
		validation.Field(&c.ExplorationBudget, validation.Min(0.0), validation.Max(1.0)),
	)
}

// BM25Config holds the Okapi BM25 tunables.
type BM25Config struct {
	K1               float64 `yaml:"k1"`
	B                float64 `yaml:"b"`
	TitleBoost       float64 `yaml:"title_boost"`
	DescriptionBoost float64 `yaml:"description_boost"`
}

// Validate validates the BM25 configuration.
func (c *BM25Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.K1, validation.Min(0.0)),
		validation.Field(&c.B, validation.Min(0.0), validation.Max(1.0)),
	)
}

// GraphConfig holds link-graph metric tunables.
type GraphConfig struct {
	PagerankAlpha       float64 `yaml:"pagerank_alpha"`
	BridgeVitalityFloor float64 `yaml:"bridge_vitality_floor"`
	HubDegreeMultiplier float64 `yaml:"hub_degree_multiplier"`
}

// Validate validates the graph configuration.
func (c *GraphConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PagerankAlpha, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.BridgeVitalityFloor, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.HubDegreeMultiplier, validation.Min(0.0)),
	)
}

// MetabolicRatesConfig mirrors vitality.Rates for YAML/env loading.
type MetabolicRatesConfig struct {
	Self  float64 `yaml:"self"`
	Notes float64 `yaml:"notes"`
	Ops   float64 `yaml:"ops"`
}

// VitalityConfig holds the vitality-scoring tunables.
type VitalityConfig struct {
	ActrDecay          float64              `yaml:"actr_decay"`
	MetabolicRates     MetabolicRatesConfig `yaml:"metabolic_rates"`
	AccessSaturationK  float64              `yaml:"access_saturation_k"`
	StructuralBoostPer float64              `yaml:"structural_boost_per_link"`
	StructuralBoostCap int                  `yaml:"structural_boost_cap"`
	RevivalDecayRate   float64              `yaml:"revival_decay_rate"`
	RevivalWindowDays  int                  `yaml:"revival_window_days"`
}

// Validate validates the vitality configuration.
func (c *VitalityConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ActrDecay, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.AccessSaturationK, validation.Min(0.0)),
		validation.Field(&c.StructuralBoostCap, validation.Min(0)),
		validation.Field(&c.RevivalWindowDays, validation.Min(0)),
	)
}

// IPSConfig holds the propensity (inverse propensity scoring) log
// tunables.
type IPSConfig struct {
	Enabled bool    `yaml:"enabled"`
	Epsilon float64 `yaml:"epsilon"`
	LogPath string  `yaml:"log_path"`
}

// Validate validates the IPS configuration.
func (c *IPSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogPath, validation.Required),
		validation.Field(&c.Epsilon, validation.Min(0.0), validation.Max(1.0)),
	)
}

// NewDefaultConfig returns a new Config with the defaults documented in
// spec §6.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{LogLevel: slog.LevelInfo},
		Vault: VaultConfig{
			Path: "./vault",
		},
		Engine: EngineConfig{
			EmbeddingModel: "hash",
			EmbeddingDims:  128,
			PiecewiseBins:  8,
			CommunityDims:  16,
			DBPath:         "./vault/.ori/embeddings.db",
		},
		Retrieval: RetrievalConfig{
			DefaultLimit:        10,
			CandidateMultiplier: 5,
			RRFK:                60,
			SignalWeights:       SignalWeightsConfig{Composite: 2.0, Keyword: 1.0, Graph: 1.5},
			ExplorationBudget:   0.10,
		},
		BM25: BM25Config{K1: 1.2, B: 0.75, TitleBoost: 3.0, DescriptionBoost: 2.0},
		Graph: GraphConfig{
			PagerankAlpha:       0.85,
			BridgeVitalityFloor: 0.5,
			HubDegreeMultiplier: 2.0,
		},
		Vitality: VitalityConfig{
			ActrDecay:          0.5,
			MetabolicRates:     MetabolicRatesConfig{Self: 0.1, Notes: 1.0, Ops: 3.0},
			AccessSaturationK:  10,
			StructuralBoostPer: 0.1,
			StructuralBoostCap: 10,
			RevivalDecayRate:   0.2,
			RevivalWindowDays:  14,
		},
		IPS: IPSConfig{
			Enabled: true,
			Epsilon: 0.01,
			LogPath: "./vault/ops/access.jsonl",
		},
	}
}

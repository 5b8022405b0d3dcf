package engine

// Config is the subset of the application configuration the engine needs
// to construct itself and tune its signals. It mirrors the shape of the
// top-level application config without importing it, so the engine stays
// independent of the CLI/config layer that constructs it.
type Config struct {
	Vault     VaultConfig
	Engine    EngineConfig
	Retrieval RetrievalConfig
	BM25      BM25Config
	Graph     GraphConfig
	Vitality  VitalityConfig
	IPS       IPSConfig
}

type VaultConfig struct {
	Path string
}

type EngineConfig struct {
	EmbeddingModel string
	EmbeddingDims  int
	PiecewiseBins  int
	CommunityDims  int
	DBPath         string
}

type SignalWeightsConfig struct {
	Composite float64
	Keyword   float64
	Graph     float64
}

type RetrievalConfig struct {
	DefaultLimit        int
	CandidateMultiplier int
	RRFK                int
	SignalWeights       SignalWeightsConfig
	ExplorationBudget   float64
}

type BM25Config struct {
	K1               float64
	B                float64
	TitleBoost       float64
	DescriptionBoost float64
}

type GraphConfig struct {
	PagerankAlpha       float64
	BridgeVitalityFloor float64
	HubDegreeMultiplier float64
}

type MetabolicRatesConfig struct {
	Self  float64
	Notes float64
	Ops   float64
}

type VitalityConfig struct {
	ActrDecay          float64
	MetabolicRates     MetabolicRatesConfig
	AccessSaturationK  float64
	StructuralBoostPer float64
	StructuralBoostCap int
	RevivalDecayRate   float64
	RevivalWindowDays  int
}

type IPSConfig struct {
	Enabled bool
	Epsilon float64
	LogPath string
}

package internal

import "testing"

func TestNewDefaultConfig_Validates(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestVaultConfig_EmptyPathFails(t *testing.T) {
	cfg := VaultConfig{Path: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty vault path should fail validation")
	}
}

func TestEngineConfig_MissingDBPathFails(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Engine.DBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing db_path should fail validation")
	}
}

func TestRetrievalConfig_BudgetOutOfRangeFails(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Retrieval.ExplorationBudget = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("exploration_budget > 1 should fail validation")
	}
}

func TestBM25Config_NegativeK1Fails(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.BM25.K1 = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative k1 should fail validation")
	}
}

func TestGraphConfig_AlphaOutOfRangeFails(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Graph.PagerankAlpha = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("pagerank_alpha > 1 should fail validation")
	}
}

func TestIPSConfig_DisabledSkipsValidation(t *testing.T) {
	cfg := IPSConfig{Enabled: false, LogPath: "", Epsilon: -1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled IPS config should skip validation: %v", err)
	}
}

func TestIPSConfig_EnabledRequiresLogPath(t *testing.T) {
	cfg := IPSConfig{Enabled: true, LogPath: "", Epsilon: 0.01}
	if err := cfg.Validate(); err == nil {
		t.Fatal("enabled IPS config with empty log_path should fail")
	}
}

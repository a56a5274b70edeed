package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			configYAML: `
server:
  addr: ":9000"
github:
  base_url: "https://github.example.com/api/v3"
  token: "t0ken"
  request_timeout: 10s
rules:
  complexity_threshold: 6
  max_line_length: 100
  doc_lookahead: 2
evaluator:
  workers: 4
summarizer:
  provider: "ollama"
  model: "qwen2.5-coder"
  base_url: "http://localhost:11434"
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Addr != ":9000" {
					t.Errorf("expected addr :9000, got %s", cfg.Server.Addr)
				}
				if cfg.GitHub.BaseURL != "https://github.example.com/api/v3" {
					t.Errorf("unexpected base_url %s", cfg.GitHub.BaseURL)
				}
				if cfg.GitHub.RequestTimeout != 10*time.Second {
					t.Errorf("expected 10s timeout, got %s", cfg.GitHub.RequestTimeout)
				}
				if cfg.Rules.ComplexityThreshold != 6 {
					t.Errorf("expected threshold 6, got %d", cfg.Rules.ComplexityThreshold)
				}
				if cfg.Evaluator.Workers != 4 {
					t.Errorf("expected 4 workers, got %d", cfg.Evaluator.Workers)
				}
				if cfg.Summarizer.Provider != "ollama" {
					t.Errorf("expected ollama provider, got %s", cfg.Summarizer.Provider)
				}
			},
		},
		{
			name:       "empty config gets defaults",
			configYAML: `{}`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Addr != ":8080" {
					t.Errorf("expected default addr, got %s", cfg.Server.Addr)
				}
				if cfg.GitHub.BaseURL != "https://api.github.com" {
					t.Errorf("expected default base_url, got %s", cfg.GitHub.BaseURL)
				}
				if cfg.Rules.ComplexityThreshold != 10 {
					t.Errorf("expected default threshold 10, got %d", cfg.Rules.ComplexityThreshold)
				}
				if cfg.Rules.MaxLineLength != 120 {
					t.Errorf("expected default max line length 120, got %d", cfg.Rules.MaxLineLength)
				}
				if cfg.Rules.DocLookahead != 3 {
					t.Errorf("expected default lookahead 3, got %d", cfg.Rules.DocLookahead)
				}
				if cfg.Evaluator.Workers <= 0 {
					t.Errorf("expected positive default workers, got %d", cfg.Evaluator.Workers)
				}
			},
		},
		{
			name:        "invalid yaml",
			configYAML:  "server: [not: a: mapping",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile, err := os.CreateTemp("", "config_test_*.yaml")
			if err != nil {
				t.Fatalf("Failed to create temp file: %v", err)
			}
			defer os.Remove(tmpFile.Name())

			if _, err := tmpFile.WriteString(tt.configYAML); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			tmpFile.Close()

			cfg, err := LoadConfig(tmpFile.Name())

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr == "" || cfg.GitHub.BaseURL == "" {
		t.Error("Default() left required fields empty")
	}
}

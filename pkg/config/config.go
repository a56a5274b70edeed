package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	GitHub     GitHubConfig     `yaml:"github"`
	Rules      RulesConfig      `yaml:"rules"`
	Evaluator  EvaluatorConfig  `yaml:"evaluator"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type GitHubConfig struct {
	BaseURL string `yaml:"base_url"`
	// Token falls back to the GITHUB_TOKEN environment variable when empty.
	Token          string        `yaml:"token"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// RulesConfig holds the tunable constants of the heuristic rules. The
// algorithm shape never changes with these, only its thresholds.
type RulesConfig struct {
	ComplexityThreshold int `yaml:"complexity_threshold"`
	MaxLineLength       int `yaml:"max_line_length"`
	DocLookahead        int `yaml:"doc_lookahead"`
	// Disabled lists issue kinds whose rules are skipped entirely,
	// e.g. "style_violation".
	Disabled []string `yaml:"disabled"`
}

type EvaluatorConfig struct {
	Workers int `yaml:"workers"`
}

// SummarizerConfig configures the optional LLM paraphrase of the report
// summary. When Provider is empty the templated summary is used as is.
type SummarizerConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
}

// Default returns the configuration used when no file is given. The
// service must be able to run with zero configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

// LoadConfig reads a YAML config file and fills defaults for anything the
// file leaves unset.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.fillDefaults()
	return &cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.GitHub.BaseURL == "" {
		c.GitHub.BaseURL = "https://api.github.com"
	}
	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if c.GitHub.RequestTimeout <= 0 {
		c.GitHub.RequestTimeout = 30 * time.Second
	}
	if c.Rules.ComplexityThreshold <= 0 {
		c.Rules.ComplexityThreshold = 10
	}
	if c.Rules.MaxLineLength <= 0 {
		c.Rules.MaxLineLength = 120
	}
	if c.Rules.DocLookahead <= 0 {
		c.Rules.DocLookahead = 3
	}
	if c.Evaluator.Workers <= 0 {
		c.Evaluator.Workers = runtime.NumCPU()
	}
}

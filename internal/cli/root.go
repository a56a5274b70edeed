package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avandres/prreview/internal/agent"
	"github.com/avandres/prreview/internal/github"
	"github.com/avandres/prreview/internal/lang"
	"github.com/avandres/prreview/internal/llm"
	"github.com/avandres/prreview/internal/report"
	"github.com/avandres/prreview/internal/review"
	"github.com/avandres/prreview/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "prreview",
	Short: "Heuristic pull request reviewer",
	Long: `prreview fetches the changed files of a GitHub pull request, runs a set
of heuristic checks over the added lines and produces a scored review report.

Run "prreview serve" to expose the reviewer as an HTTP service, or
"prreview review" for a one-shot review printed to stdout.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
}

func initConfig() {
	if cfgFile == "" {
		cfg = config.Default()
		return
	}
	loaded, err := config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
}

// buildAgent wires the review pipeline from the loaded configuration. The
// returned cleanup releases the evaluator worker pool.
func buildAgent() (*agent.ReviewAgent, func(), error) {
	registry := lang.NewRegistry()
	engine, err := review.NewEngine(cfg.Rules, cfg.Evaluator.Workers, registry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create review engine: %w", err)
	}

	fetcher := github.NewClient(cfg.GitHub.BaseURL, cfg.GitHub.Token, cfg.GitHub.RequestTimeout)

	var provider llm.Provider
	if cfg.Summarizer.Provider != "" {
		provider, err = llm.NewProvider(llm.ProviderConfig{
			Type:    llm.ProviderType(cfg.Summarizer.Provider),
			Model:   cfg.Summarizer.Model,
			BaseURL: cfg.Summarizer.BaseURL,
			APIKey:  cfg.Summarizer.APIKey,
		})
		if err != nil {
			engine.Close()
			return nil, nil, fmt.Errorf("failed to create summarizer: %w", err)
		}
	}

	return agent.New(fetcher, engine, report.NewAssembler(provider)), engine.Close, nil
}

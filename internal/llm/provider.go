package llm

import "context"

// Provider is a single-shot text generator used to paraphrase report
// summaries. Implementations must be safe for concurrent use.
type Provider interface {
	GetModel() string
	Generate(ctx context.Context, prompt string) (string, error)
}

var SupportedProviders = []string{"ollama", "openai"}

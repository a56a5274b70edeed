package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)

		err := json.NewEncoder(w).Encode(ollamaResponse{Response: "paraphrased summary", Done: true})
		require.NoError(t, err)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "test-model")
	result, err := provider.Generate(context.Background(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "paraphrased summary", result)
}

func TestOllamaProvider_GenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "test-model")
	_, err := provider.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestOpenAIProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		resp := openAIResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		}{})
		resp.Choices[0].Message.Role = "assistant"
		resp.Choices[0].Message.Content = "plain english summary"
		resp.Choices[0].FinishReason = "stop"

		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.URL, "test-model", "sk-test")
	result, err := provider.Generate(context.Background(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "plain english summary", result)
}

func TestOpenAIProvider_GenerateNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(openAIResponse{}))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.URL, "test-model", "")
	_, err := provider.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      ProviderConfig
		expectError bool
	}{
		{"ollama", ProviderConfig{Type: ProviderOllama, Model: "m", BaseURL: "http://x"}, false},
		{"openai", ProviderConfig{Type: ProviderOpenAI, Model: "m", BaseURL: "http://x"}, false},
		{"unknown", ProviderConfig{Type: "bedrock"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if tt.expectError {
				require.Error(t, err)
				for _, name := range SupportedProviders {
					assert.Contains(t, err.Error(), name)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "m", provider.GetModel())
		})
	}
}

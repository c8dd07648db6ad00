// Package llm constructs the language model the agent reasons with.
package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashgraph-online/hedera-agent-go/pkg/shared"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultOllamaModel = "llama3.1"
)

var ErrUnsupportedProvider = errors.New("unsupported llm provider")

type Config struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	// APIKey falls back to OPENAI_API_KEY for the openai provider.
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// NormalizeProvider lowercases the provider name; empty selects openai.
func NormalizeProvider(provider string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(provider))
	switch normalized {
	case "":
		return ProviderOpenAI, nil
	case ProviderOpenAI, ProviderOllama:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedProvider, provider)
	}
}

// ModelName returns the configured model or the provider default.
func (c Config) ModelName() string {
	if model := strings.TrimSpace(c.Model); model != "" {
		return model
	}
	if provider, _ := NormalizeProvider(c.Provider); provider == ProviderOllama {
		return DefaultOllamaModel
	}
	return DefaultOpenAIModel
}

// New returns a model for the configured provider. No request is made.
func New(config Config) (llms.Model, error) {
	provider, err := NormalizeProvider(config.Provider)
	if err != nil {
		return nil, err
	}

	switch provider {
	case ProviderOllama:
		options := []ollama.Option{ollama.WithModel(config.ModelName())}
		if baseURL := strings.TrimSpace(config.BaseURL); baseURL != "" {
			options = append(options, ollama.WithServerURL(baseURL))
		}
		model, err := ollama.New(options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama model: %w", err)
		}
		return model, nil
	default:
		apiKey := strings.TrimSpace(config.APIKey)
		if apiKey == "" {
			apiKey = shared.FirstNonEmptyEnv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is required for the openai provider", shared.ErrMissingCredentials)
		}

		options := []openai.Option{
			openai.WithModel(config.ModelName()),
			openai.WithToken(apiKey),
		}
		if baseURL := strings.TrimSpace(config.BaseURL); baseURL != "" {
			options = append(options, openai.WithBaseURL(baseURL))
		}
		model, err := openai.New(options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai model: %w", err)
		}
		return model, nil
	}
}

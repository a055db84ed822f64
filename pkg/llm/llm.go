// Package llm wraps the chat-completion providers the recipe pipeline can
// call. Each provider sends exactly one request per Complete call.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

const (
	ProviderAzure    = "azure"
	ProviderOpenAI   = "openai"
	ProviderDisabled = "disabled"
)

var ErrNotConfigured = errors.New("llm provider is not configured")

type (
	Message struct {
		Role    string
		Content string
	}

	ChatRequest struct {
		Messages    []Message
		MaxTokens   int32
		Temperature float32
	}

	ChatResponse struct {
		Choices []string
	}

	ChatCompleter interface {
		Name() string
		Complete(ctx context.Context, req ChatRequest) (ChatResponse, error)
	}

	Config struct {
		Provider        string
		AzureEndpoint   string
		AzureAPIKey     string
		AzureDeployment string
		OpenAIAPIKey    string
		OpenAIBaseURL   string
		OpenAIModel     string
	}
)

// FirstContent is the first choice, or "" when the provider sent none.
func (r ChatResponse) FirstContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0]
}

// New picks the provider named in cfg. A provider with missing credentials
// becomes a disabled completer so the caller can still serve fallbacks.
func New(cfg Config) (ChatCompleter, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderAzure:
		if cfg.AzureEndpoint == "" || cfg.AzureAPIKey == "" || cfg.AzureDeployment == "" {
			return Disabled("azure credentials missing"), nil
		}
		return NewAzure(cfg.AzureEndpoint, cfg.AzureAPIKey, cfg.AzureDeployment)
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return Disabled("openai api key missing"), nil
		}
		return NewLangChain(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	case ProviderDisabled:
		return Disabled("disabled by configuration"), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

type disabled struct {
	reason string
}

// Disabled returns a completer that always fails with ErrNotConfigured.
func Disabled(reason string) ChatCompleter {
	return disabled{reason: reason}
}

func (d disabled) Name() string { return ProviderDisabled }

func (d disabled) Complete(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	return ChatResponse{}, fmt.Errorf("%w: %s", ErrNotConfigured, d.reason)
}

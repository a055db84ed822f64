package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// LangChain talks to any OpenAI-compatible endpoint through langchaingo.
type LangChain struct {
	client *openai.LLM
	model  string
}

func NewLangChain(token, baseURL, model string) (*LangChain, error) {
	opts := []openai.Option{openai.WithToken(token)}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &LangChain{client: client, model: model}, nil
}

func (l *LangChain) Name() string { return ProviderOpenAI }

func (l *LangChain) Complete(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	content := make([]llms.MessageContent, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			content = append(content, llms.TextParts(schema.ChatMessageTypeSystem, msg.Content))
		case RoleUser:
			content = append(content, llms.TextParts(schema.ChatMessageTypeHuman, msg.Content))
		default:
			return ChatResponse{}, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	opts := []llms.CallOption{
		llms.WithMaxTokens(int(req.MaxTokens)),
		llms.WithTemperature(float64(req.Temperature)),
	}
	if l.model != "" {
		opts = append(opts, llms.WithModel(l.model))
	}

	resp, err := l.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("openai completion: %w", err)
	}
	if resp == nil {
		return ChatResponse{}, nil
	}

	out := ChatResponse{Choices: make([]string, 0, len(resp.Choices))}
	for _, choice := range resp.Choices {
		if choice == nil {
			out.Choices = append(out.Choices, "")
			continue
		}
		out.Choices = append(out.Choices, choice.Content)
	}
	return out, nil
}

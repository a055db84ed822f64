package llm

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

type Azure struct {
	client         *azopenai.Client
	deploymentName string
}

func NewAzure(endpoint, apiKey, deploymentName string) (*Azure, error) {
	client, err := azopenai.NewClientWithKeyCredential(endpoint, azcore.NewKeyCredential(apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("create azure openai client: %w", err)
	}
	return &Azure{client: client, deploymentName: deploymentName}, nil
}

func (a *Azure) Name() string { return ProviderAzure }

func (a *Azure) Complete(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	messages := make([]azopenai.ChatRequestMessageClassification, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			messages = append(messages, &azopenai.ChatRequestSystemMessage{
				Content: azopenai.NewChatRequestSystemMessageContent(msg.Content),
			})
		case RoleUser:
			messages = append(messages, &azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(msg.Content),
			})
		default:
			return ChatResponse{}, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	resp, err := a.client.GetChatCompletions(ctx, azopenai.ChatCompletionsOptions{
		Messages:       messages,
		MaxTokens:      to.Ptr(req.MaxTokens),
		Temperature:    to.Ptr(req.Temperature),
		DeploymentName: to.Ptr(a.deploymentName),
	}, nil)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("azure openai completion: %w", err)
	}

	out := ChatResponse{Choices: make([]string, 0, len(resp.Choices))}
	for _, choice := range resp.Choices {
		if choice.Message == nil || choice.Message.Content == nil {
			out.Choices = append(out.Choices, "")
			continue
		}
		out.Choices = append(out.Choices, *choice.Message.Content)
	}
	return out, nil
}

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sashabaranov/go-openai"
)

// AzureOpenAIClient talks to an Azure OpenAI deployment. The deployment
// name doubles as the model name on the wire.
type AzureOpenAIClient struct {
	client     *openai.Client
	deployment string
}

func NewAzureOpenAIClient() (*AzureOpenAIClient, error) {
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	deployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT")
	if apiKey == "" || endpoint == "" {
		slog.Error("Azure OpenAI backend selected but not configured",
			"have_api_key", apiKey != "", "have_endpoint", endpoint != "")
		return nil, fmt.Errorf("AZURE_OPENAI_API_KEY and AZURE_OPENAI_ENDPOINT must be set")
	}
	if deployment == "" {
		deployment = "gpt-4o-mini"
		slog.Warn("AZURE_OPENAI_DEPLOYMENT not set, defaulting to gpt-4o-mini")
	}

	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	if version := os.Getenv("AZURE_OPENAI_API_VERSION"); version != "" {
		cfg.APIVersion = version
	}

	slog.Info("Initializing Azure OpenAI client", "endpoint", endpoint, "deployment", deployment)
	return &AzureOpenAIClient{
		client:     openai.NewClientWithConfig(cfg),
		deployment: deployment,
	}, nil
}

// Generate implements the LLMClient interface
func (a *AzureOpenAIClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	slog.Debug("Generating text via Azure OpenAI", "deployment", a.deployment)
	req := chatCompletionRequest(a.deployment, prompt, params)

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Error("Azure OpenAI API call failed", "error", err)
		return "", fmt.Errorf("Azure OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		slog.Warn("Azure OpenAI returned no choices or empty content")
		return "", fmt.Errorf("Azure OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

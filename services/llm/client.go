package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopK        *int     `json:"top_k"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// LLMClient defines the standard interface for any LLM backend
type LLMClient interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// NewClientFromEnv constructs the backend named by LLM_BACKEND_TYPE
// ("openai" or "azure"; defaults to "openai").
func NewClientFromEnv() (LLMClient, error) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_BACKEND_TYPE")))
	switch backend {
	case "", "openai":
		return NewOpenAIClient()
	case "azure":
		return NewAzureOpenAIClient()
	default:
		return nil, fmt.Errorf("unknown LLM_BACKEND_TYPE %q", backend)
	}
}

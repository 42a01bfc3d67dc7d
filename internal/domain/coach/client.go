package coach

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter is the slice of the OpenAI client the coach needs. The
// concrete client is built once at startup and injected; tests swap in a
// fake.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ClientConfig carries the model settings resolved from configuration.
type ClientConfig struct {
	Model       string
	Temperature float32
}

// NewOpenAIClient builds the shared OpenAI client. BaseURL is optional and
// lets the coach point at a compatible local server.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	if baseURL == "" {
		return openai.NewClient(apiKey)
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return openai.NewClientWithConfig(cfg)
}

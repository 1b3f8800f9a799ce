package llm

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ollamaBackend is the self-hosted chat-model backend.
type ollamaBackend struct {
	baseURL   string
	modelName string

	once  sync.Once
	chat  model.BaseChatModel
	initE error
}

func newOllamaBackend(cfg Config) *ollamaBackend {
	return &ollamaBackend{baseURL: cfg.OllamaBaseURL, modelName: cfg.OllamaModel}
}

func (b *ollamaBackend) Name() string { return BackendOllama }

func (b *ollamaBackend) chatModel(ctx context.Context) (model.BaseChatModel, error) {
	b.once.Do(func() {
		b.chat, b.initE = ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: b.baseURL,
			Model:   b.modelName,
		})
	})
	return b.chat, b.initE
}

// Generate sends one request to Ollama using a proper system turn.
func (b *ollamaBackend) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	chatModel, err := b.chatModel(ctx)
	if err != nil {
		return "", fmt.Errorf("create ollama model: %w", err)
	}

	prompt := req.Prompt
	if req.Format == FormatJSON {
		prompt += jsonOnlyInstruction
	}

	var messages []*schema.Message
	if req.SystemPrompt != "" {
		messages = append(messages, schema.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, schema.UserMessage(prompt))

	resp, err := chatModel.Generate(ctx, messages,
		model.WithTemperature(float32(req.Temperature)),
		model.WithMaxTokens(req.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return resp.Content, nil
}

// CheckConnection probes the Ollama tags endpoint, which answers quickly
// whether or not a model is loaded.
func (b *ollamaBackend) CheckConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

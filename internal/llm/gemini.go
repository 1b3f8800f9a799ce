package llm

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// jsonOnlyInstruction is appended to prompts when the caller requested
// strict JSON and the backend has no native JSON output mode.
const jsonOnlyInstruction = "\n\nReturn your response as valid JSON only, no additional text or markdown."

// geminiBackend is the hosted chat-model backend. The Eino chat model is
// created once, on first use.
type geminiBackend struct {
	apiKey    string
	modelName string

	once  sync.Once
	chat  model.BaseChatModel
	initE error
}

func newGeminiBackend(cfg Config) *geminiBackend {
	return &geminiBackend{apiKey: cfg.GeminiAPIKey, modelName: cfg.GeminiModel}
}

func (b *geminiBackend) Name() string { return BackendGemini }

func (b *geminiBackend) chatModel(ctx context.Context) (model.BaseChatModel, error) {
	b.once.Do(func() {
		if b.apiKey == "" {
			b.initE = fmt.Errorf("gemini API key is required")
			return
		}
		// The Gemini extension reads credentials from the environment.
		_ = os.Setenv("GOOGLE_API_KEY", b.apiKey)
		_ = os.Setenv("GEMINI_API_KEY", b.apiKey)

		b.chat, b.initE = gemini.NewChatModel(ctx, &gemini.Config{
			Model: b.modelName,
		})
	})
	return b.chat, b.initE
}

// Generate sends one request to Gemini. System instructions are folded into
// the user prompt; Gemini treats a separate system turn unreliably across
// model versions.
func (b *geminiBackend) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	chatModel, err := b.chatModel(ctx)
	if err != nil {
		return "", fmt.Errorf("create gemini model: %w", err)
	}

	prompt := req.Prompt
	if req.SystemPrompt != "" {
		prompt = req.SystemPrompt + "\n\n" + prompt
	}
	if req.Format == FormatJSON {
		prompt += jsonOnlyInstruction
	}

	messages := []*schema.Message{
		schema.UserMessage(prompt),
	}

	resp, err := chatModel.Generate(ctx, messages,
		model.WithTemperature(float32(req.Temperature)),
		model.WithMaxTokens(req.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Content, nil
}

// CheckConnection verifies the hosted backend with a tiny bounded
// generation; there is no cheaper reachability probe for Gemini.
func (b *geminiBackend) CheckConnection(ctx context.Context) bool {
	out, err := b.Generate(ctx, GenerationRequest{
		Prompt:       "Hello",
		SystemPrompt: "You are a helpful assistant. Respond with 'OK'.",
		Temperature:  DefaultTemperature,
		MaxTokens:    8,
	})
	return err == nil && out != ""
}

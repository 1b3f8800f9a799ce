// Package llm provides the generation gateway: a fallback chain over one or
// more chat-model backends (CloudWeGo Eino) with a process-wide kill switch.
// Callers must treat an empty result as "unavailable", never as an answer.
package llm

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// GenerationRequest describes a single generation call. It is request
// scoped and never persisted.
type GenerationRequest struct {
	Prompt       string
	SystemPrompt string
	Temperature  float64 // 0 means the configured default
	MaxTokens    int     // 0 means the configured default
	Format       string  // "" or FormatJSON
}

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// Generator is the capability consumed by the classifier, task extractor
// and plan generator. The Gateway satisfies it; tests substitute stubs.
type Generator interface {
	// Generate returns generated text, or "" when no backend could serve
	// the request. It never returns an error.
	Generate(ctx context.Context, req GenerationRequest) string

	// CheckConnection reports whether any backend is currently reachable.
	CheckConnection(ctx context.Context) bool
}

// Backend is one concrete text-generation provider in the fallback chain.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	CheckConnection(ctx context.Context) bool
}

// Config holds the immutable gateway configuration. Pass it explicitly into
// New; nothing here is read from process-wide state after construction.
type Config struct {
	GeminiAPIKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string

	Temperature float64
	MaxTokens   int

	KillSwitch     bool
	RequestTimeout time.Duration
	RetryBaseDelay time.Duration
	MaxRetries     int
}

func (c Config) withDefaults() Config {
	if c.GeminiModel == "" {
		c.GeminiModel = DefaultGeminiModel
	}
	if c.OllamaBaseURL == "" {
		c.OllamaBaseURL = DefaultOllamaURL
	}
	if c.OllamaModel == "" {
		c.OllamaModel = DefaultOllamaModel
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}

// Gateway iterates an ordered backend chain until one produces output.
// All fields are immutable after construction except the kill switch.
type Gateway struct {
	cfg      Config
	backends []Backend
	kill     atomic.Bool
}

// New builds a Gateway with the standard chain: hosted Gemini first (when an
// API key is configured), self-hosted Ollama second.
func New(cfg Config) *Gateway {
	cfg = cfg.withDefaults()

	var backends []Backend
	if cfg.GeminiAPIKey != "" {
		backends = append(backends, newGeminiBackend(cfg))
	}
	backends = append(backends, newOllamaBackend(cfg))

	return NewWithBackends(cfg, backends...)
}

// NewWithBackends builds a Gateway over an explicit backend chain, tried in
// the given order.
func NewWithBackends(cfg Config, backends ...Backend) *Gateway {
	cfg = cfg.withDefaults()
	g := &Gateway{cfg: cfg, backends: backends}
	g.kill.Store(cfg.KillSwitch)
	return g
}

// SetKillSwitch toggles the process-wide generation kill switch. It takes
// effect on the next call.
func (g *Gateway) SetKillSwitch(on bool) {
	g.kill.Store(on)
}

// Generate tries each backend in order and returns the first non-empty
// result. Transient failures are retried per backend with linear backoff;
// quota, auth and model-not-found failures skip straight to the next
// backend. Returns "" when the kill switch is active or every backend is
// exhausted.
func (g *Gateway) Generate(ctx context.Context, req GenerationRequest) string {
	if g.kill.Load() {
		slog.Warn("generation kill switch is active, aborting")
		return ""
	}

	if req.Temperature <= 0 {
		req.Temperature = g.cfg.Temperature
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = g.cfg.MaxTokens
	}

	for _, backend := range g.backends {
		out, ok := g.generateWithRetry(ctx, backend, req)
		if ok {
			return out
		}
	}
	return ""
}

func (g *Gateway) generateWithRetry(ctx context.Context, backend Backend, req GenerationRequest) (string, bool) {
	for attempt := 0; attempt <= g.cfg.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
		out, err := backend.Generate(attemptCtx, req)
		cancel()

		if err == nil {
			out = strings.TrimSpace(out)
			if out != "" {
				return out, true
			}
			slog.Warn("backend returned empty response", "backend", backend.Name())
			return "", false
		}

		switch classifyError(err) {
		case errQuota:
			slog.Warn("backend quota or rate limit exceeded, falling through",
				"backend", backend.Name(), "error", err)
			return "", false
		case errAuth:
			slog.Warn("backend auth failure, falling through",
				"backend", backend.Name(), "error", err)
			return "", false
		case errNotFound:
			slog.Warn("backend model not found, falling through",
				"backend", backend.Name(), "error", err)
			return "", false
		default:
			if attempt < g.cfg.MaxRetries {
				slog.Debug("backend transient failure, retrying",
					"backend", backend.Name(), "attempt", attempt+1, "error", err)
				if !sleepCtx(ctx, time.Duration(attempt+1)*g.cfg.RetryBaseDelay) {
					return "", false
				}
				continue
			}
			slog.Warn("backend failed after retries",
				"backend", backend.Name(), "error", err)
			return "", false
		}
	}
	return "", false
}

// Chat runs a multi-turn conversation through the fallback chain. Each
// backend gets a single attempt; the kill switch applies.
func (g *Gateway) Chat(ctx context.Context, messages []Message) string {
	if g.kill.Load() {
		return ""
	}

	var system, prompt strings.Builder
	for _, m := range messages {
		switch m.Role {
		case "system":
			if system.Len() > 0 {
				system.WriteString("\n")
			}
			system.WriteString(m.Content)
		default:
			if prompt.Len() > 0 {
				prompt.WriteString("\n")
			}
			prompt.WriteString(m.Role + ": " + m.Content)
		}
	}

	req := GenerationRequest{
		Prompt:       prompt.String(),
		SystemPrompt: system.String(),
		Temperature:  g.cfg.Temperature,
		MaxTokens:    g.cfg.MaxTokens,
	}
	for _, backend := range g.backends {
		attemptCtx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
		out, err := backend.Generate(attemptCtx, req)
		cancel()
		if err == nil && strings.TrimSpace(out) != "" {
			return strings.TrimSpace(out)
		}
		if err != nil {
			slog.Debug("chat backend failed", "backend", backend.Name(), "error", err)
		}
	}
	return ""
}

// CheckConnection reports whether any backend in the chain is reachable.
// The kill switch makes the gateway report unavailable without probing.
func (g *Gateway) CheckConnection(ctx context.Context) bool {
	if g.kill.Load() {
		return false
	}
	for _, backend := range g.backends {
		probeCtx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
		ok := backend.CheckConnection(probeCtx)
		cancel()
		if ok {
			return true
		}
	}
	return false
}

// sleepCtx sleeps for d or until ctx is done; reports false on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

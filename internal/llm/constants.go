package llm

import "time"

// Backend name constants
const (
	// BackendGemini represents the hosted Google Gemini backend
	BackendGemini = "gemini"

	// BackendOllama represents the self-hosted Ollama backend
	BackendOllama = "ollama"
)

// FormatJSON asks a backend for strict JSON output. Backends without a
// native JSON mode get an explicit instruction appended to the prompt.
const FormatJSON = "json"

const (
	// DefaultGeminiModel is the default hosted chat model
	DefaultGeminiModel = "gemini-1.5-flash"

	// DefaultOllamaModel is the default self-hosted chat model
	DefaultOllamaModel = "llama3.1"

	// DefaultOllamaURL is the default URL for the Ollama server
	DefaultOllamaURL = "http://localhost:11434"

	// DefaultTemperature is used when a request does not set one
	DefaultTemperature = 0.7

	// DefaultMaxTokens bounds generation length when a request does not
	DefaultMaxTokens = 2048
)

const (
	// DefaultRequestTimeout bounds a single generation attempt
	DefaultRequestTimeout = 120 * time.Second

	// DefaultProbeTimeout bounds a connectivity probe
	DefaultProbeTimeout = 5 * time.Second

	// DefaultRetryBaseDelay is multiplied by the attempt number between
	// retries of transient failures
	DefaultRetryBaseDelay = time.Second

	// DefaultMaxRetries is the number of additional attempts after the
	// first failure of a single backend
	DefaultMaxRetries = 2
)

// Package config loads application configuration from Viper and the
// environment and hands it to components as immutable values. Precedence:
// explicit viper config > environment variables > defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"dayplan/internal/llm"
)

// PlannerConfig holds scheduling defaults for the plan generator.
type PlannerConfig struct {
	DayStartHour      int     // first slot of the day, default 9
	DayStartMinute    int     // default 0
	TimeRealityFactor float64 // duration multiplier, default 1.2
}

// Config is the complete application configuration.
type Config struct {
	LLM         llm.Config
	Planner     PlannerConfig
	HistoryFile string // sqlite completion-history database path
}

// Load assembles configuration for the whole pipeline. It never prompts;
// interactive key entry belongs to the CLI layer.
func Load() (Config, error) {
	_ = viper.BindEnv("llm.geminiApiKey", "GEMINI_API_KEY")
	_ = viper.BindEnv("llm.geminiModel", "GEMINI_MODEL")
	_ = viper.BindEnv("llm.ollamaBaseURL", "OLLAMA_BASE_URL")
	_ = viper.BindEnv("llm.ollamaModel", "OLLAMA_MODEL")
	_ = viper.BindEnv("llm.killSwitch", "AI_KILL_SWITCH")

	llmCfg := llm.Config{
		GeminiAPIKey:  viper.GetString("llm.geminiApiKey"),
		GeminiModel:   viper.GetString("llm.geminiModel"),
		OllamaBaseURL: viper.GetString("llm.ollamaBaseURL"),
		OllamaModel:   viper.GetString("llm.ollamaModel"),
		Temperature:   viper.GetFloat64("llm.temperature"),
		MaxTokens:     viper.GetInt("llm.maxTokens"),
		KillSwitch:    viper.GetBool("llm.killSwitch"),
	}
	if secs := viper.GetInt("llm.requestTimeoutSeconds"); secs > 0 {
		llmCfg.RequestTimeout = time.Duration(secs) * time.Second
	}

	planner, err := loadPlanner()
	if err != nil {
		return Config{}, err
	}

	historyFile := viper.GetString("history.file")
	if historyFile == "" {
		historyFile = "dayplan_history.db"
	}

	return Config{
		LLM:         llmCfg,
		Planner:     planner,
		HistoryFile: historyFile,
	}, nil
}

func loadPlanner() (PlannerConfig, error) {
	planner := PlannerConfig{
		DayStartHour:      9,
		DayStartMinute:    0,
		TimeRealityFactor: 1.2,
	}

	if start := viper.GetString("plan.dayStart"); start != "" {
		t, err := time.Parse("15:04", start)
		if err != nil {
			return PlannerConfig{}, fmt.Errorf("invalid plan.dayStart %q: %w", start, err)
		}
		planner.DayStartHour = t.Hour()
		planner.DayStartMinute = t.Minute()
	}
	if f := viper.GetFloat64("plan.timeRealityFactor"); f > 0 {
		planner.TimeRealityFactor = f
	}
	return planner, nil
}

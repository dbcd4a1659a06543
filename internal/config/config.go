// Package config provides service configuration loaded from environment
// variables and the agent configuration loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LLMProvider selects the inference backend.
type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
	ProviderOpenAI LLMProvider = "openai"
)

// Config holds all service configuration.
type Config struct {
	LogLevel    string
	OTelEnabled bool

	// API server settings.
	APIPort     string
	CORSOrigins []string

	// AgentConfigPath points at the YAML agent configuration. Empty means defaults.
	AgentConfigPath string

	LLMProvider LLMProvider
	LLMModel    string
	LLMAPIKey   string
	LLMBaseURL  string
	LLMRPS      float64
	LLMBurst    int

	// MaxParallel bounds concurrent pipelines per request.
	MaxParallel int
	// SessionBudget caps components generated per session; 0 disables the cap.
	SessionBudget int

	TemporalAddress   string
	TemporalNamespace string
}

// LoadDotEnv loads a .env file from the working directory when one exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load .env: %w", err)
	}
	return nil
}

// LoadFromEnv reads configuration from environment variables with sensible defaults.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		LogLevel:          envOr("LOG_LEVEL", "info"),
		APIPort:           envOr("API_PORT", "8080"),
		CORSOrigins:       parseCORSOrigins(os.Getenv("API_CORS_ORIGINS")),
		AgentConfigPath:   os.Getenv("NGUI_CONFIG_PATH"),
		LLMProvider:       LLMProvider(envOr("NGUI_LLM_PROVIDER", string(ProviderGemini))),
		LLMModel:          envOr("NGUI_LLM_MODEL", "gemini-2.5-flash"),
		LLMAPIKey:         os.Getenv("NGUI_LLM_API_KEY"),
		LLMBaseURL:        os.Getenv("NGUI_LLM_BASE_URL"),
		TemporalAddress:   envOr("TEMPORAL_ADDRESS", "localhost:7233"),
		TemporalNamespace: envOr("TEMPORAL_NAMESPACE", "default"),
	}

	var err error
	if cfg.OTelEnabled, err = envBool("OTEL_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.LLMRPS, err = envFloat("NGUI_LLM_RPS", 2); err != nil {
		return Config{}, err
	}
	if cfg.LLMBurst, err = envInt("NGUI_LLM_BURST", 4); err != nil {
		return Config{}, err
	}
	if cfg.MaxParallel, err = envInt("NGUI_MAX_PARALLEL", 4); err != nil {
		return Config{}, err
	}
	if cfg.SessionBudget, err = envInt("NGUI_SESSION_BUDGET", 0); err != nil {
		return Config{}, err
	}

	switch cfg.LLMProvider {
	case ProviderGemini:
	case ProviderOpenAI:
		if cfg.LLMBaseURL == "" {
			return Config{}, fmt.Errorf("config: NGUI_LLM_BASE_URL required for provider openai")
		}
	default:
		return Config{}, fmt.Errorf("config: invalid NGUI_LLM_PROVIDER %q (must be gemini or openai)", cfg.LLMProvider)
	}
	if cfg.LLMRPS <= 0 {
		return Config{}, fmt.Errorf("config: NGUI_LLM_RPS must be positive, got %v", cfg.LLMRPS)
	}
	if cfg.MaxParallel < 1 {
		return Config{}, fmt.Errorf("config: NGUI_MAX_PARALLEL must be at least 1, got %d", cfg.MaxParallel)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func parseCORSOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(o); t != "" {
			origins = append(origins, t)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

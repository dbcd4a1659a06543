package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 4, cfg.MaxParallel)
	assert.Equal(t, 2.0, cfg.LLMRPS)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "localhost:7233", cfg.TemporalAddress)
}

func TestLoadFromEnv_OpenAIValid(t *testing.T) {
	clearEnv(t)
	t.Setenv("NGUI_LLM_PROVIDER", "openai")
	t.Setenv("NGUI_LLM_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("NGUI_LLM_MODEL", "llama3.2")
	t.Setenv("API_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "llama3.2", cfg.LLMModel)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadFromEnv_OpenAIMissingBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("NGUI_LLM_PROVIDER", "openai")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NGUI_LLM_BASE_URL")
}

func TestLoadFromEnv_InvalidProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("NGUI_LLM_PROVIDER", "invalid")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid NGUI_LLM_PROVIDER")
}

func TestLoadFromEnv_InvalidNumbers(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{key: "NGUI_MAX_PARALLEL", value: "many", want: "invalid NGUI_MAX_PARALLEL"},
		{key: "NGUI_MAX_PARALLEL", value: "0", want: "at least 1"},
		{key: "NGUI_LLM_RPS", value: "-1", want: "must be positive"},
		{key: "OTEL_ENABLED", value: "maybe", want: "invalid OTEL_ENABLED"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := LoadFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, LoadDotEnv())
}

func TestLoadDotEnvReadsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/.env", []byte("NGUI_LLM_MODEL=from-dotenv\n"), 0o600))
	t.Chdir(dir)

	require.NoError(t, LoadDotEnv())
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.LLMModel)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL", "OTEL_ENABLED", "API_PORT", "API_CORS_ORIGINS", "NGUI_CONFIG_PATH",
		"NGUI_LLM_PROVIDER", "NGUI_LLM_MODEL", "NGUI_LLM_API_KEY", "NGUI_LLM_BASE_URL",
		"NGUI_LLM_RPS", "NGUI_LLM_BURST", "NGUI_MAX_PARALLEL", "NGUI_SESSION_BUDGET",
		"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE",
	} {
		// t.Setenv saves the current value and restores it on cleanup.
		// Setting to "" then unsetting ensures the key is absent during the test.
		orig, wasSet := os.LookupEnv(key)
		if wasSet {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, "./data", config.Storage.Badger.Path)
	assert.Equal(t, 2000, config.Memo.DraftTokens)
	assert.Equal(t, 2500, config.Memo.ReviewTokens)
	assert.Equal(t, 4000, config.Extract.MaxDocumentChars)
	assert.Equal(t, int64(32<<20), config.Extract.MaxUploadBytes)
	assert.Equal(t, "30s", config.Drive.RequestTimeout)
	assert.Equal(t, "./pages", config.Pages.Dir)
	assert.Equal(t, LLMProviderClaude, config.LLM.DefaultProvider)
}

func TestLoadFromFilesOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memoro.toml")
	content := `
[server]
port = 9090

[llm]
default_provider = "gemini"

[gemini]
api_key = "test-key"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, LLMProviderGemini, config.LLM.DefaultProvider)
	assert.Equal(t, "test-key", config.Gemini.APIKey)
	// Untouched settings keep their defaults
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, "./data", config.Storage.Badger.Path)
}

func TestLoadFromFilesLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")
	require.NoError(t, os.WriteFile(first, []byte("[server]\nport = 9090\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("[server]\nport = 9191\n"), 0644))

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 9191, config.Server.Port)
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MEMORO_SERVER_PORT", "7070")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("MEMORO_DRIVE_ACCESS_TOKEN", "ya29.test")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "sk-ant-test", config.Claude.APIKey)
	assert.Equal(t, "ya29.test", config.Drive.AccessToken)
}

func TestEnvPrefixedKeyWinsOverProviderNative(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-native")
	t.Setenv("MEMORO_CLAUDE_API_KEY", "sk-ant-prefixed")

	config, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-prefixed", config.Claude.APIKey)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 6060, "0.0.0.0")
	assert.Equal(t, 6060, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	// Zero values leave the config untouched
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 6060, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"claude provider requires key",
			func(c *Config) {},
			"Anthropic API key is required",
		},
		{
			"gemini provider requires key",
			func(c *Config) { c.LLM.DefaultProvider = LLMProviderGemini },
			"Gemini API key is required",
		},
		{
			"unknown provider rejected",
			func(c *Config) {
				c.LLM.DefaultProvider = "openai"
				c.Claude.APIKey = "sk-ant-test"
			},
			"invalid llm.default_provider",
		},
		{
			"port out of range",
			func(c *Config) {
				c.Claude.APIKey = "sk-ant-test"
				c.Server.Port = 70000
			},
			"invalid server port",
		},
		{
			"valid claude config",
			func(c *Config) { c.Claude.APIKey = "sk-ant-test" },
			"",
		},
		{
			"valid gemini config",
			func(c *Config) {
				c.LLM.DefaultProvider = LLMProviderGemini
				c.Gemini.APIKey = "test-key"
			},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewDefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

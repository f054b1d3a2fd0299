package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.ListenAddr())
	assert.Equal(t, "rules", cfg.LLM.Provider)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "es", cfg.LLM.Locale)
	assert.Equal(t, CatalogSourceSeed, cfg.Catalog.Source)
	assert.Equal(t, 0.6, cfg.Catalog.AcceptanceThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.RabbitMQ.URL.IsSet())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":9000"
llm:
  provider: openai
  timeout: 5s
openai:
  api_key: sk-from-file
  model: gpt-4o-mini
catalog:
  source: file
  path: /etc/procurement/catalog.yaml
  acceptance_threshold: 0.7
log:
  format: console
`)
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("TRACING_STDOUT", "1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.ListenAddr())
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "sk-from-env", cfg.OpenAI.APIKey.Value())
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, 0.7, cfg.Catalog.AcceptanceThreshold)
	assert.True(t, cfg.Database.RunMigrations)
	assert.True(t, cfg.Tracing.Stdout)
	assert.Equal(t, "console", cfg.Log.Format)

	ec := cfg.ExtractorConfig()
	assert.Equal(t, "sk-from-env", ec.OpenAI.APIKey)
	assert.Equal(t, 45*time.Second, ec.Timeout)
}

func TestPortFallback(t *testing.T) {
	t.Setenv("PORT", "3000")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.HTTP.ListenAddr())

	t.Setenv("HTTP_ADDR", "127.0.0.1:4000")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", cfg.HTTP.ListenAddr())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		env     map[string]string
		wantErr string
	}{
		"unknown provider":      {env: map[string]string{"LLM_PROVIDER": "llama"}, wantErr: "llm.provider"},
		"unsupported locale":    {env: map[string]string{"REPLY_LOCALE": "de"}, wantErr: "llm.locale"},
		"unknown source":        {env: map[string]string{"CATALOG_SOURCE": "redis"}, wantErr: "catalog.source"},
		"file without path":     {env: map[string]string{"CATALOG_SOURCE": "file"}, wantErr: "catalog.path"},
		"postgres without dsn":  {env: map[string]string{"CATALOG_SOURCE": "postgres"}, wantErr: "database.dsn"},
		"threshold above one":   {env: map[string]string{"CATALOG_ACCEPTANCE_THRESHOLD": "1.5"}, wantErr: "acceptance_threshold"},
		"negative threshold":    {env: map[string]string{"CATALOG_ACCEPTANCE_THRESHOLD": "-0.1"}, wantErr: "acceptance_threshold"},
		"unknown log format":    {env: map[string]string{"LOG_FORMAT": "xml"}, wantErr: "log.format"},
		"stub alias is allowed": {env: map[string]string{"LLM_PROVIDER": "STUB"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("sk-live-123")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "Secret([REDACTED])", fmt.Sprintf("%#v", s))
	assert.Equal(t, "sk-live-123", s.Value())

	raw, err := json.Marshal(struct{ Key Secret }{Key: s})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "sk-live-123")

	assert.Equal(t, "", Secret("").String())
	assert.False(t, Secret("").IsSet())
}

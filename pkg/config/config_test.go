package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 5000
  frontend_origins:
    - https://app.example.com
database:
  url: postgres://db.example.com:5432/crm
ai:
  crm_url: https://crm-ai.example.com
  insight_url: https://insight-ai.example.com
storage:
  url: https://blobs.example.com
  api_key: key123
`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.FrontendOrigins)
	assert.Equal(t, "postgres://db.example.com:5432/crm", cfg.Database.URL)
	assert.Equal(t, "https://crm-ai.example.com", cfg.AI.CRMURL)
	assert.Equal(t, "https://insight-ai.example.com", cfg.AI.InsightURL)
	assert.Equal(t, "https://blobs.example.com", cfg.Storage.URL)
	assert.Equal(t, "key123", cfg.Storage.APIKey)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://env:5432/crm")
	t.Setenv("FRONTEND_URLS", "https://a.example.com, https://b.example.com")
	t.Setenv("AI_SERVICE_CRM_URL", "https://crm.env")
	t.Setenv("AI_SERVICE_INSIGHT_URL", "https://insight.env")
	t.Setenv("STORAGE_URL", "https://blobs.env")
	t.Setenv("STORAGE_API_KEY", "envkey")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "postgres://env:5432/crm", cfg.Database.URL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.FrontendOrigins)
	assert.Equal(t, "https://crm.env", cfg.AI.CRMURL)
	assert.Equal(t, "https://insight.env", cfg.AI.InsightURL)
	assert.Equal(t, "https://blobs.env", cfg.Storage.URL)
	assert.Equal(t, "envkey", cfg.Storage.APIKey)
}

func TestApplyEnvIgnoresInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := Default()
	before := cfg.Server.Port
	cfg.ApplyEnv()

	assert.Equal(t, before, cfg.Server.Port)
}

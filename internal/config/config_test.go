package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  basePath: /bundle
upstream:
  url: http://origin.internal:8080
parser:
  tempDir: /var/spool/httpmulti
limits:
  maxParts: 16
  maxBodyBytes: 1048576
logging:
  level: debug
metrics:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/bundle", cfg.Server.BasePath)
	assert.Equal(t, "http://origin.internal:8080", cfg.Upstream.URL)
	assert.Equal(t, "/var/spool/httpmulti", cfg.Parser.TempDir)
	assert.Equal(t, 16, cfg.Limits.MaxParts)
	assert.Equal(t, int64(1048576), cfg.Limits.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
upstream:
  url: http://origin.internal:8080
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/multi", cfg.Server.BasePath)
	assert.Equal(t, 100, cfg.Limits.MaxParts)
	assert.Equal(t, int64(64<<20), cfg.Limits.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Server.TLS.Enabled)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_UPSTREAM_URL", "https://origin.example.com")

	path := writeConfig(t, `
upstream:
  url: ${TEST_UPSTREAM_URL}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://origin.example.com", cfg.Upstream.URL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_MissingUpstream(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.url is required")
}

func TestLoad_UpstreamSchemeRequired(t *testing.T) {
	path := writeConfig(t, `
upstream:
  url: origin.internal:8080
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.url must be http or https")
}

func TestLoad_TLSRequiresCertAndKey(t *testing.T) {
	path := writeConfig(t, `
server:
  tls:
    enabled: true
upstream:
  url: http://origin.internal:8080
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.tls.certFile")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, `
upstream:
  url: http://origin.internal:8080
logging:
  level: loud
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestLoad_NegativeLimits(t *testing.T) {
	path := writeConfig(t, `
upstream:
  url: http://origin.internal:8080
limits:
  maxParts: -1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limits.maxParts")
}

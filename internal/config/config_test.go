package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Listen)
	assert.Equal(t, "/settings.csv", c.Settings.Path)
	assert.Equal(t, "settings.csv", c.Settings.File)
	assert.Equal(t, 10*time.Second, c.Settings.Timeout)
	assert.Equal(t, 50, c.HistoryLimit)
	assert.NoError(t, c.Validate())
}

func TestParse_TableDefaults(t *testing.T) {
	c, err := Parse([]string{"--settings-format", "table"})
	require.NoError(t, err)
	assert.Equal(t, "/settings.txt", c.Settings.Path)
	assert.Equal(t, "settings.txt", c.Settings.File)
}

func TestParse_File(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
log_level: debug
history_limit: 5
tenant_domain: contoso.onmicrosoft.com
subscriptions:
  primary: 11111111-aaaa
  secondary: 22222222-bbbb
settings:
  url: http://settings.internal
  path: config/settings.csv
  timeout: 3s
`)
	c, err := Parse([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Listen)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 5, c.HistoryLimit)
	assert.Equal(t, "contoso.onmicrosoft.com", c.TenantDomain)
	assert.Equal(t, "11111111-aaaa", c.Subscriptions.Primary)
	assert.Equal(t, "22222222-bbbb", c.Subscriptions.Secondary)
	assert.Equal(t, "http://settings.internal", c.Settings.URL)
	assert.Equal(t, "/config/settings.csv", c.Settings.Path)
	assert.Empty(t, c.Settings.File, "no local file when a URL is configured")
	assert.Equal(t, 3*time.Second, c.Settings.Timeout)
}

func TestParse_FlagsBeatFile(t *testing.T) {
	path := writeConfig(t, "listen: \":9090\"\ntenant_domain: from-file\n")
	c, err := Parse([]string{"--config", path, "--listen", ":7070"})
	require.NoError(t, err)
	assert.Equal(t, ":7070", c.Listen)
	assert.Equal(t, "from-file", c.TenantDomain)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv(EnvTenantDomain, "env.onmicrosoft.com")
	t.Setenv(EnvPrimarySubscription, "env-primary")
	path := writeConfig(t, "tenant_domain: from-file\nsubscriptions:\n  primary: file-primary\n")

	c, err := Parse([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "env.onmicrosoft.com", c.TenantDomain)
	assert.Equal(t, "env-primary", c.Subscriptions.Primary)
	assert.Equal(t, "env-primary", c.Subscriptions.Secondary, "secondary defaults to primary")
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = Parse([]string{"--config", writeConfig(t, "listen: [unterminated")})
	assert.Error(t, err)

	_, err = Parse([]string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := &Config{Settings: SettingsConfig{URL: "ftp://example.com"}}
	assert.Error(t, c.Validate())

	c = &Config{Settings: SettingsConfig{URL: "https://example.com", Watch: true}}
	assert.Error(t, c.Validate(), "watch needs a local file")

	c = &Config{Settings: SettingsConfig{File: "settings.csv", Watch: true}}
	assert.NoError(t, c.Validate())
}

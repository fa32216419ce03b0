package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func noEnv(string) string { return "" }

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", noEnv)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.ArgoCD.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadFileOverlay(t *testing.T) {
	path := writeConfig(t, `
[server]
listen_addr = ":9090"

[argocd]
url = "https://argocd.example.com"
token = "argo-token"
insecure_tls = true
timeout_seconds = 10

[github]
token = "ghp-test"
username = "acme"

[cluster]
apps_domain = "apps.cluster.example.com"

[log]
level = "debug"
json = false
`)

	cfg, err := Load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins, "undefined keys keep defaults")
	assert.Equal(t, "https://argocd.example.com", cfg.ArgoCD.URL)
	assert.Equal(t, "argo-token", cfg.ArgoCD.Token)
	assert.True(t, cfg.ArgoCD.InsecureTLS)
	assert.Equal(t, 10*time.Second, cfg.ArgoCD.Timeout)
	assert.Equal(t, "ghp-test", cfg.GitHub.Token)
	assert.Equal(t, "acme", cfg.GitHub.Username)
	assert.Equal(t, "apps.cluster.example.com", cfg.Cluster.AppsDomain)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[argocd]
url = "https://argocd.example.com"
`)

	cfg, err := Load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "https://argocd.example.com", cfg.ArgoCD.URL)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.ArgoCD.Timeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[argocd]
url = "https://file.example.com"
insecure_tls = false

[log]
level = "info"
`)

	env := map[string]string{
		"ARGOCD_URL":         "https://env.example.com",
		"ARGOCD_TOKEN":       "env-token",
		"ARGOCD_DISABLE_TLS": "yes",
		"GITHUB_TOKEN":       "env-ghp",
		"GITHUB_USERNAME":    "env-user",
		"APPS_DOMAIN":        "apps.env.example.com",
		"LOG_LEVEL":          "debug",
	}
	cfg, err := Load(path, func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.ArgoCD.URL)
	assert.Equal(t, "env-token", cfg.ArgoCD.Token)
	assert.True(t, cfg.ArgoCD.InsecureTLS)
	assert.Equal(t, "env-ghp", cfg.GitHub.Token)
	assert.Equal(t, "env-user", cfg.GitHub.Username)
	assert.Equal(t, "apps.env.example.com", cfg.Cluster.AppsDomain)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"), noEnv)
	assert.Error(t, err)
}

func TestTruthy(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", "on", " TRUE "} {
		assert.True(t, Truthy(v), v)
	}
	for _, v := range []string{"false", "0", "no", "off", ""} {
		assert.False(t, Truthy(v), v)
	}
}

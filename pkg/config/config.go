package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	ListenAddr  string
	CORSOrigins []string
}

// ArgoCDConfig holds CD controller connection settings.
type ArgoCDConfig struct {
	URL         string
	Token       string
	InsecureTLS bool
	Timeout     time.Duration
}

// GitHubConfig holds repository host credentials.
type GitHubConfig struct {
	Token    string
	Username string
	APIURL   string
}

// ClusterConfig holds target cluster settings.
type ClusterConfig struct {
	// AppsDomain is the wildcard application domain of the cluster,
	// used to derive per-device route hosts.
	AppsDomain string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	JSON  bool
}

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig
	ArgoCD  ArgoCDConfig
	GitHub  GitHubConfig
	Cluster ClusterConfig
	Log     LogConfig
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  ":8080",
			CORSOrigins: []string{"*"},
		},
		ArgoCD: ArgoCDConfig{
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  true,
		},
	}
}

// fileConfig is the on-disk TOML key mapping.
type fileConfig struct {
	Server struct {
		ListenAddr  string   `toml:"listen_addr"`
		CORSOrigins []string `toml:"cors_origins"`
	} `toml:"server"`
	ArgoCD struct {
		URL            string `toml:"url"`
		Token          string `toml:"token"`
		InsecureTLS    bool   `toml:"insecure_tls"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"argocd"`
	GitHub struct {
		Token    string `toml:"token"`
		Username string `toml:"username"`
		APIURL   string `toml:"api_url"`
	} `toml:"github"`
	Cluster struct {
		AppsDomain string `toml:"apps_domain"`
	} `toml:"cluster"`
	Log struct {
		Level string `toml:"level"`
		JSON  bool   `toml:"json"`
	} `toml:"log"`
}

// Load builds the configuration from defaults, an optional TOML file and
// finally environment variables, in increasing order of precedence. An empty
// path skips the file layer.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return Config{}, fmt.Errorf("loading config %s: %w", path, err)
		}
		overlay(&cfg, raw, meta)
	}

	applyEnv(&cfg, getenv)
	return cfg, nil
}

// overlay copies only keys the file actually defines onto cfg.
func overlay(cfg *Config, raw fileConfig, meta toml.MetaData) {
	if meta.IsDefined("server", "listen_addr") {
		cfg.Server.ListenAddr = strings.TrimSpace(raw.Server.ListenAddr)
	}
	if meta.IsDefined("server", "cors_origins") {
		cfg.Server.CORSOrigins = raw.Server.CORSOrigins
	}
	if meta.IsDefined("argocd", "url") {
		cfg.ArgoCD.URL = strings.TrimSpace(raw.ArgoCD.URL)
	}
	if meta.IsDefined("argocd", "token") {
		cfg.ArgoCD.Token = strings.TrimSpace(raw.ArgoCD.Token)
	}
	if meta.IsDefined("argocd", "insecure_tls") {
		cfg.ArgoCD.InsecureTLS = raw.ArgoCD.InsecureTLS
	}
	if meta.IsDefined("argocd", "timeout_seconds") {
		cfg.ArgoCD.Timeout = time.Duration(raw.ArgoCD.TimeoutSeconds) * time.Second
	}
	if meta.IsDefined("github", "token") {
		cfg.GitHub.Token = strings.TrimSpace(raw.GitHub.Token)
	}
	if meta.IsDefined("github", "username") {
		cfg.GitHub.Username = strings.TrimSpace(raw.GitHub.Username)
	}
	if meta.IsDefined("github", "api_url") {
		cfg.GitHub.APIURL = strings.TrimSpace(raw.GitHub.APIURL)
	}
	if meta.IsDefined("cluster", "apps_domain") {
		cfg.Cluster.AppsDomain = strings.TrimSpace(raw.Cluster.AppsDomain)
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "json") {
		cfg.Log.JSON = raw.Log.JSON
	}
}

// applyEnv overrides cfg with the environment variables the service honors.
func applyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := getenv("ARGOCD_URL"); v != "" {
		cfg.ArgoCD.URL = v
	}
	if v := getenv("ARGOCD_TOKEN"); v != "" {
		cfg.ArgoCD.Token = v
	}
	if v := getenv("ARGOCD_DISABLE_TLS"); v != "" {
		cfg.ArgoCD.InsecureTLS = Truthy(v)
	}
	if v := getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := getenv("GITHUB_USERNAME"); v != "" {
		cfg.GitHub.Username = v
	}
	if v := getenv("APPS_DOMAIN"); v != "" {
		cfg.Cluster.AppsDomain = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Truthy reports whether a flag-like string ("true", "1", "yes", "on",
// any case) enables a feature. It is shared by the env overlay and the
// form-encoded API flags.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

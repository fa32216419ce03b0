// Package config loads service configuration from three layers: built-in
// defaults, an optional TOML file, and environment variables. Later layers
// win, and file keys that are absent never clobber defaults.
package config

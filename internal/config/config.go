// Package config loads the demonstration CLI's settings from flags, an
// optional YAML file, and the environment, mirroring the viper-backed
// config layer of the pack's application-shaped repos.
package config

import "github.com/spf13/viper"

// Config is the CLI's resolved settings, built from a *viper.Viper after
// flags, file, and environment have all been layered in.
type Config struct {
	LogLevel  string
	LogFormat string
	MaxDepth  int
	Format    string
	Prefix    string
}

// New builds a Config from v, which the caller has already populated with
// defaults, a config file (if any), flags, and environment variables.
func New(v *viper.Viper) *Config {
	return &Config{
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		MaxDepth:  v.GetInt("highlight.max_depth"),
		Format:    v.GetString("highlight.format"),
		Prefix:    v.GetString("highlight.prefix"),
	}
}

// SetDefaults installs this CLI's default settings onto v before a config
// file or flags are layered on top.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("highlight.max_depth", 8)
	v.SetDefault("highlight.format", "custom-elements")
	v.SetDefault("highlight.prefix", "a")
}

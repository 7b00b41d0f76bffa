package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from environment variables and an optional
// config.yaml found in the working directory or /etc/snipster.
func Load() (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	// Environment variables: SNIPSTER_DATABASE_TYPE, SNIPSTER_GIST_TOKEN, ...
	v.SetEnvPrefix("SNIPSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	v.AddConfigPath(".")
	v.AddConfigPath("/etc/snipster")
	v.SetConfigName("config")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "snippets.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_idle_time", 300)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// Rate limiting defaults (API surface only)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.per_second", 20)
	v.SetDefault("server.rate_limit.burst", 40)

	// Code execution collaborator (Piston-compatible)
	v.SetDefault("execute.url", "https://emkc.org/api/v2/piston/execute")
	v.SetDefault("execute.version", "*")
	v.SetDefault("execute.timeout", "30s")

	// Gist hosting collaborator (GitHub-compatible)
	v.SetDefault("gist.url", "https://api.github.com/gists")
	v.SetDefault("gist.token", "")
	v.SetDefault("gist.timeout", "30s")

	// Code image collaborator (Carbonara-compatible)
	v.SetDefault("image.url", "https://carbonara.solopov.dev/api/cook")
	v.SetDefault("image.theme", "seti")
	v.SetDefault("image.background", "#ABB8C3")
	v.SetDefault("image.timeout", "60s")

	v.SetDefault("debug", false)
}

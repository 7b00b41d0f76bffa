package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.GetString("database.type"))
	assert.Equal(t, "snippets.db", cfg.GetString("database.dsn"))
	assert.Equal(t, 8080, cfg.GetInt("server.port"))
	assert.True(t, cfg.GetBool("server.rate_limit.enabled"))
	assert.Equal(t, "https://emkc.org/api/v2/piston/execute", cfg.GetString("execute.url"))
	assert.Equal(t, "*", cfg.GetString("execute.version"))
	assert.Equal(t, "https://api.github.com/gists", cfg.GetString("gist.url"))
	assert.Empty(t, cfg.GetString("gist.token"))
	assert.Equal(t, "seti", cfg.GetString("image.theme"))
	assert.False(t, cfg.GetBool("debug"))
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SNIPSTER_DATABASE_TYPE", "postgres")
	t.Setenv("SNIPSTER_SERVER_PORT", "9090")
	t.Setenv("SNIPSTER_GIST_TOKEN", "ghp_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.GetString("database.type"))
	assert.Equal(t, 9090, cfg.GetInt("server.port"))
	assert.Equal(t, "ghp_test", cfg.GetString("gist.token"))
}

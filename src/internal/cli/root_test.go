package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipsterapp/snipster/src/internal/database/models"
)

func TestParseSnippetID(t *testing.T) {
	id, err := parseSnippetID("42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	_, err = parseSnippetID("abc")
	assert.Error(t, err)

	_, err = parseSnippetID("-1")
	assert.Error(t, err)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand("test")

	expected := []string{
		"add", "list", "get", "delete", "search", "toggle-favorite",
		"tag", "run", "image", "gist", "serve", "version",
	}
	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "missing command %q", name)
	}
}

func TestCLIAddListDelete(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	t.Setenv("SNIPSTER_DATABASE_DSN", dsn)
	t.Setenv("SNIPSTER_DATABASE_TYPE", "sqlite")

	run := func(args ...string) error {
		root := NewRootCommand("test")
		root.SetArgs(args)
		return root.Execute()
	}

	require.NoError(t, run("add", "Hello", "print('hi')", "--lang", "python", "--tag", "demo"))
	require.NoError(t, run("list"))
	require.NoError(t, run("get", "1"))
	require.NoError(t, run("toggle-favorite", "1"))
	require.NoError(t, run("tag", "1", "extra"))
	require.NoError(t, run("search", "hello"))
	require.NoError(t, run("delete", "1"))

	// A deleted snippet can no longer be fetched.
	assert.Error(t, run("get", "1"))
}

func TestAppInitMigrates(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "migrate.db")
	t.Setenv("SNIPSTER_DATABASE_DSN", dsn)
	t.Setenv("SNIPSTER_DATABASE_TYPE", "sqlite")

	app := &App{Version: "test"}
	require.NoError(t, app.init())
	defer app.Close()

	assert.True(t, app.db.Migrator().HasTable(&models.Snippet{}))
	assert.True(t, app.db.Migrator().HasTable(&models.Tag{}))
	assert.True(t, app.db.Migrator().HasTable(&models.SnippetTag{}))
}

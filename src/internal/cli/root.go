package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/snipsterapp/snipster/src/internal/config"
	"github.com/snipsterapp/snipster/src/internal/database"
	"github.com/snipsterapp/snipster/src/internal/services"
)

// App carries the shared state behind every CLI command: the loaded
// configuration and one store handle constructed per process.
type App struct {
	Version string

	cfg      *viper.Viper
	db       *gorm.DB
	snippets *services.SnippetService
	search   *services.SearchService
}

// NewRootCommand builds the snipster command tree
func NewRootCommand(version string) *cobra.Command {
	app := &App{Version: version}

	root := &cobra.Command{
		Use:           "snipster",
		Short:         "Snipster - a personal code snippet manager",
		Long:          "Store, tag, search, run and share short code snippets from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return app.init()
		},
	}

	root.AddCommand(
		newAddCommand(app),
		newListCommand(app),
		newGetCommand(app),
		newDeleteCommand(app),
		newSearchCommand(app),
		newToggleFavoriteCommand(app),
		newTagCommand(app),
		newRunCommand(app),
		newImageCommand(app),
		newGistCommand(app),
		newServeCommand(app),
		newVersionCommand(app),
	)

	return root
}

// init loads configuration, opens the database and runs migrations.
func (a *App) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.MigrateDB(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a.cfg = cfg
	a.db = db
	a.snippets = services.NewSnippetService(db)
	a.search = services.NewSearchService(db)
	return nil
}

// Close releases the database connection
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// Execute runs the CLI and returns the process exit code
func Execute(version string) int {
	root := NewRootCommand(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("snipster v%s\n", app.Version)
		},
	}
}

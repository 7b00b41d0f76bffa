package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/snipsterapp/snipster/src/internal/server"
	"github.com/snipsterapp/snipster/src/pkg/utils"
)

func newServeCommand(app *App) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API and web GUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			if port != 0 {
				app.cfg.Set("server.port", port)
			}

			logger := utils.NewLogger()

			e := echo.New()
			e.HideBanner = true
			e.HidePort = true

			srv, err := server.New(e, app.cfg, app.db, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}

			address := fmt.Sprintf("%s:%d",
				app.cfg.GetString("server.host"),
				app.cfg.GetInt("server.port"),
			)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(address)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			logger.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides configuration)")

	return cmd
}

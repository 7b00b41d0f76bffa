package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snipsterapp/snipster/src/internal/execute"
	"github.com/snipsterapp/snipster/src/internal/gist"
	"github.com/snipsterapp/snipster/src/internal/image"
)

func newRunCommand(app *App) *cobra.Command {
	var version, stdin string

	cmd := &cobra.Command{
		Use:   "run ID",
		Short: "Execute a snippet via the code-execution service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			id, err := parseSnippetID(args[0])
			if err != nil {
				return err
			}

			snippet, err := app.snippets.Get(id)
			if err != nil {
				return err
			}

			client := execute.NewClient(app.cfg)
			result, err := client.Run(cmd.Context(), execute.Request{
				Language: snippet.Language,
				Version:  version,
				Code:     snippet.Code,
				Stdin:    stdin,
			})
			if err != nil {
				return err
			}

			fmt.Println("Execution completed.")
			if result.Stdout != "" {
				fmt.Println("STDOUT:")
				fmt.Print(result.Stdout)
			}
			if result.Stderr != "" {
				fmt.Println("STDERR:")
				fmt.Print(result.Stderr)
			}
			if result.ExitCode != 0 {
				fmt.Printf("exit code %d\n", result.ExitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&version, "version", "v", "", "language version to use")
	cmd.Flags().StringVar(&stdin, "stdin", "", "stdin passed to the program")

	return cmd
}

func newImageCommand(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "image ID",
		Short: "Render a snippet as a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			id, err := parseSnippetID(args[0])
			if err != nil {
				return err
			}

			snippet, err := app.snippets.Get(id)
			if err != nil {
				return err
			}

			client := image.NewClient(app.cfg)
			png, err := client.Render(cmd.Context(), snippet.Code, snippet.Language)
			if err != nil {
				return err
			}

			dest := out
			if dest == "" {
				dest = fmt.Sprintf("snippet-%d.png", id)
			}
			if err := os.WriteFile(dest, png, 0644); err != nil {
				return fmt.Errorf("failed to write image: %w", err)
			}

			fmt.Printf("Image for snippet '%s' written to %s.\n", snippet.Title, dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: snippet-<id>.png)")

	return cmd
}

func newGistCommand(app *App) *cobra.Command {
	var public bool
	var description string

	cmd := &cobra.Command{
		Use:   "gist ID",
		Short: "Publish a snippet to the gist-hosting service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			id, err := parseSnippetID(args[0])
			if err != nil {
				return err
			}

			snippet, err := app.snippets.Get(id)
			if err != nil {
				return err
			}

			if description == "" {
				description = "Code snippet: " + snippet.Title
			}

			client := gist.NewClient(app.cfg)
			url, err := client.Create(cmd.Context(), gist.CreateInput{
				Filename:    gist.FilenameFor(snippet.Title, snippet.Language),
				Content:     snippet.Code,
				Description: description,
				Public:      public,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Gist for snippet '%s' created: %s\n", snippet.Title, url)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&public, "public", "p", false, "create a public gist")
	cmd.Flags().StringVarP(&description, "description", "d", "", "gist description")

	return cmd
}

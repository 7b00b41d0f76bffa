package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snipsterapp/snipster/src/internal/database/models"
	"github.com/snipsterapp/snipster/src/internal/services"
)

func newAddCommand(app *App) *cobra.Command {
	var language, description, tag string
	var favorite bool

	cmd := &cobra.Command{
		Use:   "add TITLE CODE",
		Short: "Add a new snippet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			input := services.CreateSnippetInput{
				Title:       args[0],
				Code:        args[1],
				Description: description,
				Language:    language,
				Favorite:    favorite,
			}
			if tag != "" {
				input.Tags = []string{tag}
			}

			snippet, err := app.snippets.Create(input)
			if err != nil {
				return err
			}

			fmt.Printf("Snippet '%s' added (id %d).\n", snippet.Title, snippet.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "lang", "l", "", "snippet language (default: text)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "snippet description")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "tag for the snippet")
	cmd.Flags().BoolVarP(&favorite, "favorite", "f", false, "mark as favorite")

	return cmd
}

func newListCommand(app *App) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snippets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			snippets, err := app.snippets.List(limit, offset)
			if err != nil {
				return err
			}

			printSnippets(snippets)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of snippets")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of snippets to skip")

	return cmd
}

func newGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a snippet",
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

			printSnippetDetail(snippet)
			return nil
		},
	}
}

func newDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a snippet and its tag associations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			id, err := parseSnippetID(args[0])
			if err != nil {
				return err
			}

			if err := app.snippets.Delete(id); err != nil {
				return err
			}

			fmt.Printf("Snippet %d deleted.\n", id)
			return nil
		},
	}
}

func newSearchCommand(app *App) *cobra.Command {
	var tag, language string
	var favorite bool

	cmd := &cobra.Command{
		Use:   "search [TERM]",
		Short: "Search snippets by text, tag, language or favorite flag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			opts := services.SearchOptions{
				Tag:          tag,
				Language:     language,
				FavoriteOnly: favorite,
			}
			if len(args) > 0 {
				opts.Text = args[0]
			}

			snippets, err := app.search.Search(opts)
			if err != nil {
				return err
			}

			printSnippets(snippets)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "filter by tag")
	cmd.Flags().StringVarP(&language, "lang", "l", "", "filter by language")
	cmd.Flags().BoolVarP(&favorite, "favorite", "f", false, "favorites only")

	return cmd
}

func newToggleFavoriteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-favorite ID",
		Short: "Flip a snippet's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			id, err := parseSnippetID(args[0])
			if err != nil {
				return err
			}

			favorite, err := app.snippets.ToggleFavorite(id)
			if err != nil {
				return err
			}

			status := "unfavorited"
			if favorite {
				status = "favorited"
			}
			fmt.Printf("Snippet %d has been %s.\n", id, status)
			return nil
		},
	}
}

func newTagCommand(app *App) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "tag ID NAME",
		Short: "Attach or detach a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Close()

			id, err := parseSnippetID(args[0])
			if err != nil {
				return err
			}
			name := args[1]

			if remove {
				if err := app.snippets.Detach(id, name); err != nil {
					return err
				}
				fmt.Printf("Tag '%s' removed from snippet %d.\n", name, id)
				return nil
			}

			if err := app.snippets.Attach(id, name); err != nil {
				return err
			}
			fmt.Printf("Tag '%s' added to snippet %d.\n", name, id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&remove, "remove", "r", false, "remove the tag instead of adding it")

	return cmd
}

func parseSnippetID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid snippet id %q", raw)
	}
	return uint(id), nil
}

func printSnippets(snippets []models.Snippet) {
	if len(snippets) == 0 {
		fmt.Println("No snippets found.")
		return
	}
	for _, s := range snippets {
		star := " "
		if s.Favorite {
			star = "*"
		}
		line := fmt.Sprintf("%s %d: %s (%s)", star, s.ID, s.Title, s.Language)
		if tags := s.TagNames(); len(tags) > 0 {
			line += " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Println(line)
	}
}

func printSnippetDetail(s *models.Snippet) {
	star := ""
	if s.Favorite {
		star = " *"
	}
	fmt.Printf("%d: %s (%s)%s\n", s.ID, s.Title, s.Language, star)
	if s.Description != "" {
		fmt.Println(s.Description)
	}
	if tags := s.TagNames(); len(tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(tags, ", "))
	}
	fmt.Println()
	fmt.Println(s.Code)
}

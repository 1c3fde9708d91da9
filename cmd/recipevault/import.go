package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recipevault/recipevault/internal/importer"
)

// importCmd creates the "import" subcommand: pull a recipe out of a web
// page's schema.org markup and add it to the collection.
func importCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "import <url|file>",
		Short: "Import a recipe from a web page or saved HTML file",
		Long: `Import extracts a recipe from schema.org Recipe JSON-LD markup,
as published by most recipe sites, and adds it to the collection.
The argument is either an http(s) URL or a path to a saved HTML file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			candidate, err := loadCandidate(ctx, args[0])
			if err != nil {
				return err
			}

			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if !svc.Add(ctx, candidate) {
				return fmt.Errorf("recipe not imported (duplicate name, incomplete markup, or storage failure)")
			}
			fmt.Printf("Imported %q.\n", candidate["name"])
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "fetch timeout")
	return cmd
}

func loadCandidate(ctx context.Context, source string) (map[string]any, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return importer.FromURL(ctx, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open HTML file: %w", err)
	}
	defer f.Close()
	return importer.FromHTML(f)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recipevault/recipevault/internal/config"
	"github.com/recipevault/recipevault/internal/recipe"
	"github.com/recipevault/recipevault/internal/storage"
)

var (
	cfgFile string
	verbose bool

	addName         string
	addIngredients  string
	addInstructions string
	addCategory     string
	addTags         string
	outputJSON      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recipevault",
		Short: "RecipeVault — recipe collection with pluggable storage",
		Long: `RecipeVault stores a collection of recipes in a flat JSON file,
a MongoDB collection, or a SQLite database, selected by configuration.

Backend selection:
  RECIPEVAULT_STORAGE_USE_DATABASE=true  — use MongoDB
  storage.type in recipevault.yaml       — file, mongodb, or sqlite`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openService loads config, builds the configured backend, and wires
// the recipe service. The returned closer releases backend resources.
func openService() (*recipe.Service, func(), error) {
	logger := setupLogger()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := storage.New(cfg.Storage, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create storage: %w", err)
	}

	closer := func() {
		if err := store.Close(); err != nil {
			logger.Warn("close storage failed", "error", err)
		}
	}
	return recipe.NewService(store, logger), closer, nil
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			recipes := svc.List(context.Background())

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(recipes)
			}

			if len(recipes) == 0 {
				fmt.Println("No recipes stored.")
				return nil
			}
			for _, r := range recipes {
				line := fmt.Sprintf("%3d  %s", r.ID, r.Name)
				if r.Category != "" {
					line += fmt.Sprintf("  [%s]", r.Category)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, "print recipes as JSON")
	return cmd
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [json]",
		Short: "Add a recipe from flags or a JSON object",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := candidateFromInput(args)
			if err != nil {
				return err
			}

			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if !svc.Add(context.Background(), candidate) {
				return fmt.Errorf("recipe not added (duplicate name, missing required field, or storage failure)")
			}
			fmt.Println("Recipe added.")
			return nil
		},
	}

	cmd.Flags().StringVar(&addName, "name", "", "recipe name (required unless JSON given)")
	cmd.Flags().StringVar(&addIngredients, "ingredients", "", "comma-separated ingredients")
	cmd.Flags().StringVar(&addInstructions, "instructions", "", "preparation instructions")
	cmd.Flags().StringVar(&addCategory, "category", "", "recipe category")
	cmd.Flags().StringVar(&addTags, "tags", "", "comma-separated tags")
	return cmd
}

func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <name> <json>",
		Short: "Update a recipe by name with a partial JSON object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var partial map[string]any
			if err := json.Unmarshal([]byte(args[1]), &partial); err != nil {
				return fmt.Errorf("parse update JSON: %w", err)
			}

			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if !svc.Update(context.Background(), args[0], partial) {
				return fmt.Errorf("recipe %q not updated (not found or storage failure)", args[0])
			}
			fmt.Println("Recipe updated.")
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a recipe by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if !svc.Delete(context.Background(), args[0]) {
				return fmt.Errorf("recipe %q not deleted (not found or storage failure)", args[0])
			}
			fmt.Println("Recipe deleted.")
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("recipevault %s\n", config.Version)
		},
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
}

// candidateFromInput builds the add candidate from a JSON argument if
// given, otherwise from flags.
func candidateFromInput(args []string) (map[string]any, error) {
	if len(args) == 1 {
		var candidate map[string]any
		if err := json.Unmarshal([]byte(args[0]), &candidate); err != nil {
			return nil, fmt.Errorf("parse recipe JSON: %w", err)
		}
		return candidate, nil
	}

	candidate := map[string]any{}
	if addName != "" {
		candidate["name"] = addName
	}
	if addIngredients != "" {
		candidate["ingredients"] = splitCSV(addIngredients)
	}
	if addInstructions != "" {
		candidate["instructions"] = addInstructions
	}
	if addCategory != "" {
		candidate["category"] = addCategory
	}
	if addTags != "" {
		candidate["tags"] = splitCSV(addTags)
	}
	return candidate, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

package main

import (
	"context"
	"fmt"

	"github.com/jonathan/offer-composer/internal/experience"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import employees, projects, offers and wage rates from a catalog file",
	Long: `Loads a catalog JSON file, normalizes experience names and saves every entity.
Existing entities with the same ID are overwritten. Cached wage rates are invalidated.`,
	RunE: runImport,
}

var importFile string

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to catalog JSON file (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, _ []string) error {
	cfg, err := settings(nil)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	ctx := context.Background()

	fmt.Printf("Loading catalog from %s...\n", importFile)
	catalog, err := experience.LoadCatalog(importFile)
	if err != nil {
		return err
	}

	b, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	summary, err := experience.Import(ctx, b.db, catalog)
	if err != nil {
		return fmt.Errorf("import stopped after %s: %w", summary, err)
	}

	if err := b.rates.InvalidateAll(ctx); err != nil {
		log.WithError(err).Warn("failed to invalidate cached wage rates")
	}

	fmt.Printf("✅ Imported %s\n", summary)
	return nil
}

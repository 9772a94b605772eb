package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/config"
	"github.com/jonathan/offer-composer/internal/document"
	"github.com/jonathan/offer-composer/internal/download"
	"github.com/jonathan/offer-composer/internal/observability"
	"github.com/jonathan/offer-composer/internal/schemas"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an offer document",
	Long: `Generates the document described by a stored document configuration (--configuration-id)
or by a configuration JSON file (--configuration-file). The artifact is written to the output
directory, or stored in the database with --store.`,
	RunE: runGenerate,
}

var (
	generateConfigurationID   string
	generateConfigurationFile string
	generateOutputDir         string
	generateFormat            string
	generateTemplate          string
	generateStore             bool
)

func init() {
	generateCmd.Flags().StringVar(&generateConfigurationID, "configuration-id", "", "ID of a stored document configuration")
	generateCmd.Flags().StringVarP(&generateConfigurationFile, "configuration-file", "f", "", "Path to a document configuration JSON file")
	generateCmd.Flags().StringVarP(&generateOutputDir, "out", "o", "", "Output directory (default from config)")
	generateCmd.Flags().StringVar(&generateFormat, "format", "", "Artifact format: pdf or html")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Path to an HTML template")
	generateCmd.Flags().BoolVar(&generateStore, "store", false, "Store the artifact in the database instead of writing a file")

	generateCmd.MarkFlagsMutuallyExclusive("configuration-id", "configuration-file")
	generateCmd.MarkFlagsOneRequired("configuration-id", "configuration-file")
	generateCmd.MarkFlagsMutuallyExclusive("out", "store")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := settings(func(c *config.Config) {
		if generateOutputDir != "" {
			c.OutputDir = generateOutputDir
		}
		if generateFormat != "" {
			c.Format = generateFormat
		}
		if generateTemplate != "" {
			c.Template = generateTemplate
		}
	})
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	ctx := context.Background()

	b, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	// Step 1: Load the document configuration
	fmt.Printf("Step 1/3: Loading document configuration...\n")
	var docCfg *types.DocumentConfiguration
	if generateConfigurationFile != "" {
		docCfg, err = readConfigurationFile(generateConfigurationFile)
	} else {
		docCfg, err = loadConfiguration(ctx, b, generateConfigurationID)
	}
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout, cfg.Currency)
	if cfg.Verbose {
		printer.PrintConfiguration(docCfg)
	}

	// Step 2: Resolve, render and hand off
	fmt.Printf("Step 2/3: Generating %s document...\n", cfg.Format)
	gen, err := b.generator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	var downloader document.Downloader = download.NewDirectory(cfg.OutputDir)
	if generateStore {
		downloader = download.NewStore(b.db, docCfg.ID)
	}

	result, err := gen.WithDownloader(downloader).Generate(ctx, docCfg)
	if err != nil {
		return fmt.Errorf("document generation failed: %w", err)
	}

	// Step 3: Report
	fmt.Printf("Step 3/3: Done\n")
	if cfg.Verbose {
		printer.PrintDocument(result.Document)
	}
	fmt.Printf("✅ %s (%d sections, %d bytes)\n", result.Download.Location, len(result.Document.Sections), len(result.Artifact.Content))
	return nil
}

// loadConfiguration fetches a stored configuration by ID
func loadConfiguration(ctx context.Context, b *backends, rawID string) (*types.DocumentConfiguration, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration ID format: %w", err)
	}
	docCfg, err := b.db.GetDocumentConfiguration(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load document configuration: %w", err)
	}
	if docCfg == nil {
		return nil, fmt.Errorf("document configuration not found: %s", id)
	}
	return docCfg, nil
}

// readConfigurationFile schema-validates and reads a configuration JSON file
func readConfigurationFile(path string) (*types.DocumentConfiguration, error) {
	if err := schemas.ValidateFile(schemas.DocumentConfiguration, path); err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	var docCfg types.DocumentConfiguration
	if err := json.Unmarshal(data, &docCfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	return &docCfg, nil
}

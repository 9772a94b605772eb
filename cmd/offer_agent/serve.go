package main

import (
	"context"
	"fmt"

	"github.com/jonathan/offer-composer/internal/config"
	"github.com/jonathan/offer-composer/internal/offers"
	"github.com/jonathan/offer-composer/internal/server"
	"github.com/jonathan/offer-composer/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveFormat string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for composing offers and generating documents.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080 or $PORT)")
	serveCmd.Flags().StringVar(&serveFormat, "format", "", "Artifact format: pdf or html")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := settings(func(c *config.Config) {
		if servePort != 0 {
			c.Port = servePort
		}
		if serveFormat != "" {
			c.Format = serveFormat
		}
	})
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	b, err := connect(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	gen, err := b.generator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	srv, err := server.New(server.Config{Port: cfg.Port}, server.Dependencies{
		Offers:    offers.NewService(b.db, log),
		Store:     b.db,
		Generator: gen,
		Health:    b.db,
		Logger:    log,
		Limiter:   ratelimit.NewLimiter(ratelimit.LoadConfig()),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

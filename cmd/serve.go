// Package cmd — serve command.
// Runs the HTTP API until SIGINT or SIGTERM.
package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/recipepipe/core/extract"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
	"github.com/gaurav-prasanna/recipepipe/core/imaging"
	"github.com/gaurav-prasanna/recipepipe/core/scrape"
	"github.com/gaurav-prasanna/recipepipe/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recipe scraping HTTP API",
	Long: `Serve exposes /scrape, /image-proxy and /health.
The API key is read from SCRAPER_API_KEY and is required.

Examples:
  recipepipe serve
  recipepipe serve --addr 127.0.0.1:8080 --log-format json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (env SCRAPER_ADDR, default 0.0.0.0:5000)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("addr") {
		cfg.Addr = flagAddr
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)

	fetcher := fetch.New(fetch.WithTimeout(cfg.FetchTimeout))
	svc := scrape.New(fetcher, extract.New(), logger)
	images := imaging.New(fetcher, imaging.Config{
		MaxSide:   cfg.ImageMaxSide,
		Quality:   cfg.ImageQuality,
		MaxBytes:  cfg.ImageMaxBytes,
		MaxPixels: cfg.ImageMaxPixels,
		Timeout:   cfg.ImageTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(svc, images, cfg.APIKey, logger).Run(ctx, cfg.Addr, cfg.ShutdownTimeout)
}

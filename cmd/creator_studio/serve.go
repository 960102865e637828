package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/creator-studio/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for creators, style profiles, example corpora, and statistics.`,
}

func init() {
	serveCmd.RunE = runServe
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	databaseURL, err := requireDatabaseURL(cfg)
	if err != nil {
		return err
	}

	port := servePort
	if cfg.Port != 0 && !serveCmd.Flags().Changed("port") {
		port = cfg.Port
	}

	srv, err := server.New(server.Config{
		Port:              port,
		DatabaseURL:       databaseURL,
		RedisURL:          cfg.RedisURL,
		JWTSecret:         cfg.JWTSecret,
		PageSize:          cfg.PageSize,
		StatsCacheTTLSecs: cfg.StatsCacheTTLSecs,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

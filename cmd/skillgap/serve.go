package main

import (
	"context"

	"github.com/jonathan/skill-gap-advisor/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for extraction, gap analysis, and learning plans.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, cfg, closeFn, err := openAdvisor(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	srv := server.New(a, server.Config{
		Port:           servePort,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AllowedFormats: cfg.AllowedFormats,
	})
	return srv.Start()
}

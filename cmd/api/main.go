package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/config"
	"github.com/bizmatters/usdc-actions/internal/logging"
)

// @title USDC Actions API
// @version 1.0
// @description Publishes USDC transfer requests as Solana Actions.
// @description
// @description Apps are authored with a single authenticated HTTP call or through a Telegram wizard,
// @description then served as discovery and execution endpoints any Actions client can query.

// @contact.name API Support
// @contact.email support@bizmatters.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

var configFile string

var rootCmd = &cobra.Command{
	Use:   "usdc-actions",
	Short: "USDC transfer Solana Actions service",
	Long: `Serves USDC transfer requests as Solana Actions endpoints and runs
the Telegram bot that walks authors through creating them.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and Telegram webhook",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "Config file path")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	// A missing .env is fine; real deployments pass the environment directly.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads and validates configuration and builds the logger.
func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, fmt.Errorf("invalid config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/de-tools/gpu-atlas/pkg/server"
	"github.com/de-tools/gpu-atlas/pkg/services/config"
	"github.com/de-tools/gpu-atlas/pkg/services/cost"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the web server for GPU cost estimates",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", config.HomePath(config.DefaultSettingsFile),
		"Path to the settings file (default is $HOME/.gpucost.yaml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}

	settings, err := config.LoadSettings(cfgPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	// SERVER_HOST and SERVER_PORT take precedence over the settings file
	if host := os.Getenv("SERVER_HOST"); host != "" {
		settings.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
		settings.Server.Port = p
	}

	level, err := settings.Level(zerolog.InfoLevel)
	if err != nil {
		return err
	}
	logger = logger.Level(level)

	catalog, err := config.LoadCatalog(settings.CatalogFile)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info().
		Int("platforms", len(catalog.Rates.Platforms())).
		Int("gpus", len(catalog.Rates.GPUs())).
		Int("throughput_entries", len(catalog.Throughput.Entries())).
		Msg("catalog loaded")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	webAPI, err := server.NewWebAPI(logger, server.Config{
		Addr: settings.Server.Addr(),
		Dependencies: server.Dependencies{
			Estimator: cost.NewEngine(catalog.Rates, catalog.Throughput),
			Registry:  registry,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create web api: %w", err)
	}

	return webAPI.Start()
}

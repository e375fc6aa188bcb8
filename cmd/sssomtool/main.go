// Package main provides the sssomtool binary entry point.
// Sssomtool converts Alignment API ontology alignments into SSSOM
// mapping sets and supports curating them: interactive review, running
// an external matcher, and batch RDF/XML to Turtle conversion.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/sssomtool/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "sssomtool"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions carries the persistent flags shared by all subcommands.
type globalOptions struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Ontology alignment to SSSOM conversion and curation",
		Long: `Sssomtool converts and curates ontology-alignment data in the SSSOM
(Simple Standard for Sharing Ontology Mappings) ecosystem.

It provides:
- convert: Alignment API Turtle files to SSSOM mapping sets
- review:  interactive review of SSSOM mappings with reviewer annotations
- match:   running an external ontology matcher (LogMap-style jar)
- rdfxml:  batch RDF/XML to Turtle conversion`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(convertCmd(opts))
	cmd.AddCommand(reviewCmd(opts))
	cmd.AddCommand(matchCmd(opts))
	cmd.AddCommand(rdfxmlCmd(opts))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup configures logging and loads configuration for a subcommand run.
func (o *globalOptions) setup() (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(o.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(o.configPath, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// loadConfig loads an explicit config file when given, otherwise the
// layered defaults (user config, then project config).
func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	if path == "" {
		return config.NewLoader(logger).Load()
	}

	cfg := config.DefaultConfig()
	fileCfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Merge(fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/sssomtool/convert"
)

func convertCmd(opts *globalOptions) *cobra.Command {
	var (
		outDir string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT_DIR",
		Short: "Convert Alignment API Turtle files to SSSOM mapping sets",
		Long: `Convert parses every .ttl file in INPUT_DIR as an Alignment API
alignment, discovers its vocabulary by local-name suffix, and writes a
SSSOM mapping set to <out-dir>/<stem>_sssom.ttl. Files that cannot be
parsed or that lack the expected schema are skipped with a warning;
they never halt the rest of the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}

			inDir := args[0]
			info, err := os.Stat(inDir)
			if err != nil {
				return fmt.Errorf("input path is not a directory: %s", inDir)
			}
			if !info.IsDir() {
				return fmt.Errorf("input path is not a directory: %s", inDir)
			}
			if outDir == "" {
				outDir = cfg.Convert.OutDir
			}

			conv := convert.New(logger)
			result, err := conv.ConvertDir(inDir, outDir)
			if err != nil {
				return err
			}
			logger.Info("batch complete",
				slog.Int("converted", result.Converted),
				slog.Int("skipped", result.Skipped),
				slog.Int("failed", result.Failed))

			if !watch {
				return nil
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return conv.Watch(ctx, inDir, outDir, cfg.Convert.WatchDebounce)
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (default: same as input)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep converting files as they appear in INPUT_DIR")
	return cmd
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/sssomtool/matcher"
)

func matchCmd(opts *globalOptions) *cobra.Command {
	var jar string

	cmd := &cobra.Command{
		Use:   "match SOURCE TARGET OUTPUT_DIR",
		Short: "Run the external ontology matcher",
		Long: `Match invokes the configured Java matcher jar against SOURCE and
TARGET ontologies (local paths or IRIs) and writes its Alignment API
output into OUTPUT_DIR. JVM heap sizes and the jar path come from the
matcher section of the configuration.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}

			mc := cfg.Matcher
			if jar != "" {
				mc.Jar = jar
			}
			runner, err := matcher.NewRunner(matcher.Options{
				Java:                 mc.Java,
				Jar:                  mc.Jar,
				MinHeap:              mc.MinHeap,
				MaxHeap:              mc.MaxHeap,
				EntityExpansionLimit: mc.EntityExpansionLimit,
				ExtraArgs:            mc.ExtraArgs,
			}, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runner.Match(ctx, args[0], args[1], args[2])
		},
	}

	cmd.Flags().StringVar(&jar, "jar", "", "Matcher jar path (overrides config)")
	return cmd
}

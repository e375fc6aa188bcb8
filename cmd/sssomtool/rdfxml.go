package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/sssomtool/rdfxml"
)

func rdfxmlCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rdfxml [DIR]",
		Short: "Batch-convert RDF/XML files to Turtle",
		Long: `Rdfxml converts every .rdf file in DIR (default: current directory)
to Turtle, writing <stem>.ttl next to each input. Files that fail to
decode are logged and skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := opts.setup()
			if err != nil {
				return err
			}

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			converted, err := rdfxml.New(logger).ConvertDir(dir)
			if err != nil {
				return err
			}
			logger.Info("rdfxml batch complete", slog.Int("converted", converted))
			return nil
		},
	}
	return cmd
}

package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/c360studio/sssomtool/review"
)

func reviewCmd(opts *globalOptions) *cobra.Command {
	var (
		outDir       string
		reviewerID   string
		reviewerName string
		decision     string
		comment      string
	)

	cmd := &cobra.Command{
		Use:   "review FILE",
		Short: "Review SSSOM mappings and annotate reviewer decisions",
		Long: `Review loads the SSSOM mappings (owl:Axiom resources carrying
sssom:subject_id and sssom:object_id) from FILE and walks through them
interactively, recording a decision and justification per mapping as
sssom:reviewer_* annotations. The annotated set is written to
<out-dir>/<stem>_<reviewer>.ttl.

When --decision is given the review runs non-interactively and applies
the same decision to every mapping; --reviewer-id and --reviewer-name
are then required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Review.OutDir
			}

			session, err := review.Load(args[0], logger)
			if err != nil {
				return err
			}

			if decision != "" {
				return reviewAll(session, logger, outDir, reviewerID, reviewerName, decision, comment)
			}

			model := review.NewModel(session, outDir)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return fmt.Errorf("review ui: %w", err)
			}
			m, ok := final.(review.Model)
			if !ok {
				return fmt.Errorf("unexpected model type %T", final)
			}
			if m.Err() != nil {
				return m.Err()
			}
			if m.Aborted() {
				logger.Warn("review aborted, nothing written")
				return nil
			}
			logger.Info("review complete", slog.String("output", m.SavedPath()))
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory for the reviewed set")
	cmd.Flags().StringVar(&reviewerID, "reviewer-id", "", "Reviewer id (ORCID or URI) for non-interactive review")
	cmd.Flags().StringVar(&reviewerName, "reviewer-name", "", "Reviewer name for non-interactive review")
	cmd.Flags().StringVar(&decision, "decision", "", "Apply one decision to all mappings (accept, reject, requires_refinement, unspecified)")
	cmd.Flags().StringVar(&comment, "comment", "", "Justification used with --decision")
	return cmd
}

// reviewAll applies one decision to every mapping without the TUI.
func reviewAll(session *review.Session, logger *slog.Logger, outDir, id, name, decision, comment string) error {
	if id == "" || name == "" {
		return fmt.Errorf("--decision requires --reviewer-id and --reviewer-name")
	}
	d, err := review.ParseDecision(decision)
	if err != nil {
		return err
	}
	session.SetReviewer(review.Reviewer{ID: id, Name: name})
	for i := range session.Mappings() {
		if err := session.Annotate(i, d, comment); err != nil {
			return err
		}
	}
	path, err := session.Save(outDir)
	if err != nil {
		return err
	}
	logger.Info("review complete",
		slog.String("decision", string(d)),
		slog.Int("mappings", len(session.Mappings())),
		slog.String("output", path))
	return nil
}

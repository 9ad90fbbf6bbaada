package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MataNBhohadanA/text-analyzer/internal/analysis"
)

// newAnalyzeCmd creates and configures the 'analyze' subcommand. It
// runs the full pipeline once for a single action/URL pair.
func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <ACTION> <URL>",
		Short: "Fetches a document and prints one annotation layer",
		Long: `Fetches the document at URL, cleans and samples it, runs the
annotation pipeline, and prints the layer selected by ACTION.

Actions (case-insensitive): POS, CONSTITUENCY, DEPENDENCY

Example:
  analyzer analyze POS https://www.gutenberg.org/files/1661/1661-0.txt`,

		// Argument errors are reported as usage, not as failures: the
		// process still exits normally.
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCommand,
	}
	return cmd
}

func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Usage: analyzer analyze <ACTION> <URL>")
		fmt.Fprintln(cmd.ErrOrStderr(), "Actions: POS, CONSTITUENCY, DEPENDENCY")
		return nil
	}
	action, rawURL := args[0], args[1]

	appInstance, err := appFrom(cmd)
	if err != nil {
		return err
	}
	logger := appInstance.Logger()

	logger.Info("starting analysis",
		zap.String("action", action),
		zap.String("url", rawURL))

	result, err := appInstance.Service().Process(cmd.Context(), analysis.Request{
		Action: action,
		URL:    rawURL,
	})
	if err != nil {
		// Per-document failures are reported on stderr and the process
		// exits normally; only infrastructure errors propagate.
		var fetchErr *analysis.FetchError
		switch {
		case errors.As(err, &fetchErr):
			fmt.Fprintf(cmd.ErrOrStderr(), "Failed to process URL %s: %v\n", fetchErr.URL, fetchErr.Err)
			return nil
		case errors.Is(err, analysis.ErrUnknownAction):
			fmt.Fprintf(cmd.ErrOrStderr(), "Unknown action: %s\n", action)
			return nil
		case errors.Is(err, analysis.ErrMissingAnnotation):
			fmt.Fprintf(cmd.ErrOrStderr(), "Action %s needs an annotation layer the configured engine does not compute: %v\n", action, err)
			return nil
		default:
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), result.Output)
	return nil
}

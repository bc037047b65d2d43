package cli

import (
	"github.com/spf13/cobra"

	"github.com/casedocs/redline/internal/engine"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <document.docx> <output.html>",
		Short: "Render a read-only HTML snapshot of a document",
		Long: `Render a DOCX document to an HTML snapshot.

The snapshot is produced from a private ephemeral copy: the original file
and any live editor session holding it are never touched, and the working
copy is cleaned up on every exit path.

Example:
  redline preview brief.docx brief.html`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}
			if err := engine.New().Preview(args[0], args[1]); err != nil {
				_ = formatter.Error(string(engine.CodeOf(err)), err.Error(), nil)
				if engine.IsDocumentError(err) {
					return WrapExitError(ExitCommandError, err.Error(), nil)
				}
				return WrapExitError(ExitFailure, err.Error(), nil)
			}
			return formatter.Success("Preview generated: " + args[1])
		},
	}
	return cmd
}

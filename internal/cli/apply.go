package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casedocs/redline/internal/engine"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <document.docx> <rules.json>",
		Short: "Apply a rule file to a document",
		Long: `Apply an ordered JSON rule file to a DOCX document.

Document-scope replace rules run first, exactly once each; paragraph-scope
rules are then evaluated against every paragraph (table cells included) in
declaration order. The pass is idempotent: re-running against an unchanged
document reports no changes and leaves the file byte-identical.

If a live editor session holds the document, changes are saved in place so
the interactive user sees the update; otherwise the document is replaced
atomically by a fully written copy.

Example:
  redline apply brief.docx formatting_rules.json
  redline apply --format json brief.docx house_style.json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runApply(opts *ApplyOptions, docPath, rulesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	report, err := engine.New().Apply(docPath, rulesPath)
	if err != nil {
		code := engine.CodeOf(err)
		_ = formatter.Error(string(code), err.Error(), nil)
		switch code {
		case engine.CodeConfig, engine.CodeDocument:
			return WrapExitError(ExitCommandError, err.Error(), nil)
		default:
			return WrapExitError(ExitFailure, err.Error(), nil)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(report)
	}
	if report.Changed {
		return formatter.Success(fmt.Sprintf("Document updated (%d rule applications, %d errors).",
			report.Applications, report.Errors))
	}
	return formatter.Success("No changes needed.")
}

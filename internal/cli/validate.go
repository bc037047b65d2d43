package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casedocs/redline/internal/rules"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <rules.json>",
		Short: "Check a rule file against the rule schema",
		Long: `Validate a JSON rule file and report which entries the engine would
skip. The engine itself only warns about invalid rules; validate exists to
check a rule file (for example, one produced by the LLM rule author)
before putting it in rotation.

Exit codes: 0 all rules valid, 1 some rules would be skipped, 2 the file
itself is missing or not a JSON array.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

type validateResult struct {
	Valid   int                 `json:"valid"`
	Skipped []rules.SkippedRule `json:"skipped,omitempty"`
}

func runValidate(opts *RootOptions, rulesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	loaded, err := rules.LoadFile(rulesPath)
	if err != nil {
		_ = formatter.Error("CONFIG_INVALID", err.Error(), nil)
		return WrapExitError(ExitCommandError, err.Error(), nil)
	}

	result := validateResult{Valid: len(loaded.Rules), Skipped: loaded.Skipped}
	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%d valid rule(s)\n", result.Valid)
		for _, s := range result.Skipped {
			name := s.Name
			if name == "" {
				name = fmt.Sprintf("#%d", s.Index)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "would skip %s: %s\n", name, s.Reason)
		}
	}

	if len(loaded.Skipped) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d rule(s) would be skipped", len(loaded.Skipped)))
	}
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casedocs/redline/internal/rules"
	"github.com/casedocs/redline/internal/rulestore"
)

// RulesOptions holds flags for the rules subcommands.
type RulesOptions struct {
	*RootOptions
	Database string
}

// NewRulesCommand creates the rules command group: a local library of
// named rule sets with lossless import/export to the engine's rule-file
// format.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the local rule library",
	}
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "rules.db", "path to the rule library database")

	cmd.AddCommand(newRulesListCommand(opts))
	cmd.AddCommand(newRulesImportCommand(opts))
	cmd.AddCommand(newRulesExportCommand(opts))
	cmd.AddCommand(newRulesDeleteCommand(opts))
	cmd.AddCommand(newRulesPresetsCommand(opts))
	return cmd
}

// storeError prints the error in the configured format and wraps it
// with an exit code.
func storeError(formatter *OutputFormatter, exitCode int, message string, err error) error {
	_ = formatter.Error("RULE_STORE", fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(exitCode, message, err)
}

func withStore(opts *RulesOptions, formatter *OutputFormatter, f func(*rulestore.Store) error) error {
	st, err := rulestore.Open(opts.Database)
	if err != nil {
		return storeError(formatter, ExitCommandError, "cannot open rule library", err)
	}
	defer st.Close()
	return f(st)
}

func rulesFormatter(opts *RulesOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
}

func newRulesListCommand(opts *RulesOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored rule sets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rulesFormatter(opts, cmd)
			return withStore(opts, formatter, func(st *rulestore.Store) error {
				sets, err := st.ListSets(cmd.Context())
				if err != nil {
					return storeError(formatter, ExitFailure, "listing rule sets", err)
				}
				if opts.Format == "json" {
					return formatter.Success(sets)
				}
				if len(sets) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No rule sets stored.")
					return nil
				}
				for _, s := range sets {
					fmt.Fprintf(cmd.OutOrStdout(), "%-24s %3d rule(s)  updated %s\n", s.Name, s.Rules, s.UpdatedAt)
				}
				return nil
			})
		},
	}
}

func newRulesImportCommand(opts *RulesOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "import <set-name> <rules.json>",
		Short:         "Import a rule file into the library",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rulesFormatter(opts, cmd)
			return withStore(opts, formatter, func(st *rulestore.Store) error {
				imported, skipped, err := st.ImportFile(cmd.Context(), args[0], args[1])
				if err != nil {
					return storeError(formatter, ExitCommandError, "importing rule file", err)
				}
				if opts.Format == "json" {
					return formatter.Success(map[string]int{"imported": imported, "skipped": skipped})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rule(s) into %q", imported, args[0])
				if skipped > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), " (%d invalid entries skipped)", skipped)
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}
}

func newRulesExportCommand(opts *RulesOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "export <set-name> <rules.json>",
		Short:         "Export a stored rule set as a rule file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rulesFormatter(opts, cmd)
			return withStore(opts, formatter, func(st *rulestore.Store) error {
				if err := st.ExportFile(cmd.Context(), args[0], args[1]); err != nil {
					return storeError(formatter, ExitFailure, "exporting rule set", err)
				}
				return formatter.Success(fmt.Sprintf("Exported %q to %s", args[0], args[1]))
			})
		},
	}
}

func newRulesDeleteCommand(opts *RulesOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <set-name>",
		Short:         "Delete a stored rule set",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rulesFormatter(opts, cmd)
			return withStore(opts, formatter, func(st *rulestore.Store) error {
				if err := st.DeleteSet(cmd.Context(), args[0]); err != nil {
					return storeError(formatter, ExitFailure, "deleting rule set", err)
				}
				return formatter.Success(fmt.Sprintf("Deleted %q", args[0]))
			})
		},
	}
}

func newRulesPresetsCommand(opts *RulesOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "presets",
		Short:         "Print the standard formatting rule set as a rule file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rules.Presets)
		},
	}
}

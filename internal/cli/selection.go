package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/casedocs/redline/internal/engine"
)

// NewSelectionCommand creates the selection command.
//
// Output is always JSON, matching the contract the desktop UI scripts
// against: a formatting object on success, {"error": reason} otherwise.
func NewSelectionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selection",
		Short: "Print the formatting of the live editor selection as JSON",
		Long: `Read the formatting of whatever the user currently has selected in a
live editor session and print it as a formatting spec JSON object.

Prints {"error": reason} when no live session or selection exists.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			sel, err := engine.New().SelectionFormatting()
			if err != nil {
				if encErr := enc.Encode(map[string]string{"error": err.Error()}); encErr != nil {
					return encErr
				}
				return NewExitError(ExitFailure, "no live selection")
			}
			return enc.Encode(sel)
		},
	}
	return cmd
}

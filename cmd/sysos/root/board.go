package root

import (
	"github.com/spf13/cobra"

	"systemos/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				if err := a.flush(cmd.Context(), out); err != nil {
					return err
				}
				return tui.RunBoard(cmd.Context(), a.eng, a.appendEvents, out)
			})
		},
	}

	return cmd
}

package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"systemos/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all progress and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes every level, quest and buff; pass --yes to confirm")
			}
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				if err := a.snapshots.Delete(cmd.Context(), a.cfg.UserID); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Progress deleted. The next command starts a new player."))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"systemos/internal/ui"
)

func newRollbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Restore today's checkpoint",
		Long: `Roll the state back to the checkpoint taken at today's first login.

This undoes every completion, purchase and penalty since then. Only today's
checkpoint can be restored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				if err := a.eng.RestoreCheckpoint(cmd.Context()); err != nil {
					return err
				}
				p := a.eng.Player()
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Restored"))
				fmt.Fprintf(out, "%s\n", ui.LabelValue("Level", fmt.Sprintf("%d (%d/%d XP)", p.Level, p.XP, p.XPToNextLevel)))
				return nil
			})
		},
	}

	return cmd
}

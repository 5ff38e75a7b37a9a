package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"systemos/internal/ui"
)

func newReconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run the daily rollover and show what it did",
		Long: `Run the daily reconciliation.

Every command already reconciles on start; this one reports the outcome:
missed days swept, penalties issued, expired penalties punished and the
daily quests rotated. Running it twice on the same day changes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				res, err := a.eng.RunDailyReconciliation(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Heading(ui.IconClock, "Reconciliation "+res.Today))
				if res.SameDay {
					fmt.Fprintln(out, ui.Muted.Render("Already reconciled today."))
				}
				return nil
			})
		},
	}

	return cmd
}

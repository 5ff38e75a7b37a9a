package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"systemos/internal/ui"
)

func newCheckInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record today's check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				res, err := a.eng.CheckIn(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Checked in"))
				fmt.Fprintln(out, ui.LabelValue("Streak", res.Streak))
				ego := fmt.Sprint(res.EgoDeathStreak)
				if res.EgoDeathUp {
					ego += " " + ui.Good.Render("(+1)")
				}
				fmt.Fprintln(out, ui.LabelValue("Ego death streak", ego))
				return nil
			})
		},
	}

	return cmd
}

package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"systemos/internal/engine"
	"systemos/internal/ui"
)

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the recent event log",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				records, err := a.events.Recent(cmd.Context(), a.cfg.UserID, limit)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Event Log"))
				if len(records) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				}
				for _, r := range records {
					ev := engine.Event{Kind: engine.EventKind(r.Kind), Message: r.Message, At: r.CreatedAt}
					fmt.Fprintf(out, "%s %s\n", ui.Muted.Render(r.CreatedAt.Local().Format("2006-01-02 15:04")), ui.EventLine(ev))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	return cmd
}

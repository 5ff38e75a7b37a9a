package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"systemos/internal/ui"
)

func newAbandonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon a quest and take the penalty",
		Long: `Abandon a quest.

Unless a penalty immunity buff absorbs it, abandoning issues a penalty quest
that must be cleared before midnight. Penalty quests cannot be abandoned.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				id, err := resolveID(args[0], questIDs(a.eng.Quests()))
				if err != nil {
					return err
				}
				res, err := a.eng.AbandonQuest(cmd.Context(), id)
				if err != nil {
					return err
				}
				if res.Immune {
					fmt.Fprintln(out, ui.Good.Render(ui.IconShield+" Immunity absorbed the penalty"))
					return nil
				}
				fmt.Fprintf(out, "%s %s\n", ui.Bad.Render(ui.IconPenalty+" Penalty issued:"), res.Penalty.Title)
				if res.Penalty.Description != "" {
					fmt.Fprintln(out, ui.Muted.Render(res.Penalty.Description))
				}
				return nil
			})
		},
	}

	return cmd
}

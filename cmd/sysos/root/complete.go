package root

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"systemos/internal/engine"
	"systemos/internal/ui"
)

func newCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"do"},
		Short:   "Complete a quest",
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
				res, err := a.eng.CompleteQuest(cmd.Context(), id)
				if err != nil {
					return err
				}
				printComplete(out, res)
				return nil
			})
		},
	}

	return cmd
}

func printComplete(out io.Writer, res *engine.CompleteResult) {
	fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconDone+" Completed"), ui.Muted.Render(shortID(res.QuestID)))
	xp := fmt.Sprintf("+%d XP", res.XPAwarded)
	if res.StreakPercent > 100 {
		xp += ui.Muted.Render(fmt.Sprintf(" (streak +%d%%)", res.StreakPercent-100))
	}
	fmt.Fprintln(out, ui.LabelValue("Reward", xp+", "+ui.Gold.Render(fmt.Sprintf("+%d gold", res.GoldAwarded))))
	for _, s := range engine.AllStats {
		if d := res.StatDeltas[s]; d > 0 {
			fmt.Fprintf(out, "- %s +%d progress\n", s, d)
		}
	}
	if res.LevelUp() {
		fmt.Fprintf(out, "%s %d → %d\n", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
	}
	if res.RankUp() {
		fmt.Fprintf(out, "%s %s → %s\n", ui.BadgeRankUp, res.RankBefore, res.RankAfter)
	}
}

package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"systemos/internal/engine"
	"systemos/internal/ui"
)

func newGateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Boss gates",
	}
	cmd.AddCommand(newGateListCmd(), newGateEnterCmd(), newGateRecalibrateCmd())
	return cmd
}

func newGateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boss gates",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				fmt.Fprintln(out, ui.Heading(ui.IconBoss, "Gates"))
				for _, b := range a.eng.Bosses() {
					fmt.Fprintln(out, bossLine(b))
				}
				return nil
			})
		},
	}
}

func bossLine(b engine.Boss) string {
	line := fmt.Sprintf("- %s [%s] %s %s %s", ui.Key.Render(b.ID), ui.RankText(b.Rank), b.Name, ui.BossStatus(b.Status),
		ui.Muted.Render(fmt.Sprintf("%d XP · %d gold", b.XPReward, b.GoldReward)))
	if b.Status == engine.BossLocked {
		line += " " + ui.Muted.Render(fmt.Sprintf("(level %d)", engine.MinLevelForRank(b.Rank)))
	}
	return line
}

func newGateEnterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enter <gate>",
		Short: "Enter a gate and start its boss quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("gate id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				q, err := a.eng.EnterGate(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", ui.Epic.Render(ui.IconBoss+" Gate opened"), questLine(*q))
				return nil
			})
		},
	}
}

func newGateRecalibrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recalibrate <gate>",
		Short: "Re-roll a gate's boss at your current rank",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("gate id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				b, err := a.eng.RecalibrateBoss(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render("Recalibrated"))
				fmt.Fprintln(out, bossLine(*b))
				if b.Description != "" {
					fmt.Fprintln(out, ui.Muted.Render(b.Description))
				}
				return nil
			})
		},
	}
}

package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"systemos/internal/engine"
	"systemos/internal/ui"
)

func newBuffsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buffs",
		Short: "List active and queued buffs",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				buffs := a.eng.Buffs()
				fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Buffs"))
				if len(buffs) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(none)"))
					return nil
				}
				now := time.Now()
				for _, b := range buffs {
					fmt.Fprintln(out, buffLine(b, now))
				}
				return nil
			})
		},
	}

	return cmd
}

func buffLine(b engine.Buff, now time.Time) string {
	name := b.Name
	if name == "" {
		name = string(b.Type)
	}
	var effect string
	switch b.Type {
	case engine.BuffPenaltyImmunity:
		effect = fmt.Sprintf("%d use(s)", b.UsesRemaining)
	case engine.BuffStatSingle:
		stats := make([]string, len(b.TargetStats))
		for i, s := range b.TargetStats {
			stats[i] = string(s)
		}
		effect = fmt.Sprintf("+%d%% %s", b.Value, strings.Join(stats, ","))
	case engine.BuffGoldMultiplier:
		effect = fmt.Sprintf("+%d%% gold", b.Value)
	default:
		effect = fmt.Sprintf("+%d%% all stats", b.Value)
	}

	var state string
	switch {
	case b.Paused && b.ActivatesAt != nil:
		state = ui.Warn.Render("queued") + ui.Muted.Render(" starts "+b.ActivatesAt.Local().Format("Jan 2 15:04"))
	case b.IsActive(now):
		state = ui.Good.Render("active") + ui.Muted.Render(" "+b.ExpiresAt.Sub(now).Round(time.Minute).String()+" left")
	default:
		state = ui.Muted.Render("spent")
	}
	return fmt.Sprintf("- %s %s %s", name, effect, state)
}

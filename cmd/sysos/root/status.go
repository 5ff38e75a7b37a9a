package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"systemos/internal/engine"
	"systemos/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats, skills and titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				s := a.eng.Snapshot()
				p := s.Player

				fmt.Fprintln(out, ui.Heading(ui.IconSystem, "Player Status"))
				fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
				fmt.Fprintln(out, ui.LabelValue("Rank", ui.RankText(p.Rank)))
				fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d/%d %s", p.XP, p.XPToNextLevel, ui.ProgressBar(p.XP, p.XPToNextLevel, 20))))
				fmt.Fprintln(out, ui.LabelValue("Gold", ui.Gold.Render(fmt.Sprint(p.Gold))))
				fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d (XP +%d%%)", p.Streak, engine.StreakPercent(p.Streak)-100)))
				fmt.Fprintln(out, ui.LabelValue("Ego death streak", p.EgoDeathStreak))
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
				now := time.Now()
				for _, st := range engine.AllStats {
					pct := engine.StatPercent(p.ActiveBuffs, st, now) - 100
					line := fmt.Sprintf("- %s %-13s lvl %3d %s", st, st.Name(), p.Stats[st], ui.ProgressBar(p.StatProgress[st], 100, 10))
					if pct > 0 {
						line += " " + ui.Good.Render(fmt.Sprintf("+%d%%", pct))
					}
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render("🧬 Skills"))
				for _, n := range s.SkillNodes {
					state := ui.Muted.Render(fmt.Sprintf("locked (%s %d)", n.Stat, n.RequiredStat))
					if n.Unlocked {
						state = ui.Good.Render("unlocked")
					}
					fmt.Fprintf(out, "- %s %s\n", n.Name, state)
				}
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render("📜 Record"))
				penalties, err := a.events.CountByKind(cmd.Context(), a.cfg.UserID, engine.EventPenaltyIssued)
				if err != nil {
					return err
				}
				defeated, err := a.events.CountByKind(cmd.Context(), a.cfg.UserID, engine.EventBossDefeated)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.LabelValue("Penalties issued", penalties))
				fmt.Fprintln(out, ui.LabelValue("Bosses defeated", defeated))
				if saved, err := a.snapshots.SavedAt(cmd.Context(), a.cfg.UserID); err == nil && !saved.IsZero() {
					fmt.Fprintln(out, ui.LabelValue("Last saved", ui.Muted.Render(saved.Local().Format("2006-01-02 15:04:05"))))
				}
				fmt.Fprintln(out, "")

				checker := engine.NewTitleChecker(s)
				titles := checker.Titles()
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("🏅 Titles (%d/%d)", checker.CountEarned(), len(titles))))
				for _, t := range titles {
					if t.Earned {
						fmt.Fprintf(out, "- %s %s %s\n", t.Icon, t.Name, ui.Muted.Render(t.Description))
					}
				}
				return nil
			})
		},
	}

	return cmd
}

package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"systemos/internal/engine"
	"systemos/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List today's quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				quests := a.eng.Quests()
				fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quest Log"))
				shown := 0
				for _, q := range quests {
					if q.IsCompleted && !all {
						continue
					}
					fmt.Fprintln(out, questLine(q))
					shown++
				}
				if shown == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(no open quests)"))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed quests")
	return cmd
}

func questLine(q engine.Quest) string {
	line := fmt.Sprintf("%s %s %s %s", ui.QuestIcon(q.Type), ui.Muted.Render(shortID(q.ID)), q.Title, ui.QuestStatus(q))
	if q.Type == engine.QuestPenalty {
		return line + " " + ui.Muted.Render("(clear before midnight)")
	}
	return line + " " + ui.Muted.Render(fmt.Sprintf("[%s · rank %s · %d XP · %d gold]", q.Type, q.Difficulty, q.XPReward, q.GoldReward))
}

// newQuestCmd groups quest authoring subcommands.
func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Create custom quests",
	}
	cmd.AddCommand(newQuestAddCmd())
	return cmd
}

func newQuestAddCmd() *cobra.Command {
	var rank string
	var stats string
	var desc string
	var skill bool
	var xp int
	var gold int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an optional or skill challenge quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			difficulty, err := engine.ParseRank(rank)
			if err != nil {
				return err
			}
			targets, err := engine.ParseStats(stats)
			if err != nil {
				return err
			}
			qt := engine.QuestOptional
			if skill {
				qt = engine.QuestSkillChallenge
			}

			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				q, err := a.eng.CreateQuest(cmd.Context(), engine.CreateQuestInput{
					Type:        qt,
					Title:       args[0],
					Description: desc,
					Domain:      "custom",
					Difficulty:  difficulty,
					XPReward:    xp,
					GoldReward:  gold,
					TargetStats: targets,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconQuest+" Added"), questLine(*q))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&rank, "rank", "r", "E", "Difficulty rank (E|D|C|B|A|S)")
	cmd.Flags().StringVarP(&stats, "stats", "s", "", "Target stats, comma separated (str,agi,int,vit,per)")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().BoolVar(&skill, "skill", false, "Create a SKILL_CHALLENGE quest")
	cmd.Flags().IntVar(&xp, "xp", 0, "XP reward (default by rank)")
	cmd.Flags().IntVar(&gold, "gold", 0, "Gold reward (default by rank)")
	return cmd
}

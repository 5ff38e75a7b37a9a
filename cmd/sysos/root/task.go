package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"systemos/internal/engine"
	"systemos/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Scheduled tasks",
	}
	cmd.AddCommand(newTaskAddCmd(), newTaskListCmd(), newTaskStartCmd(), newTaskDoneCmd())
	return cmd
}

func taskIDs(tasks []engine.ScheduledTask) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func taskLine(t engine.ScheduledTask) string {
	return fmt.Sprintf("- %s %s %s %s %s", ui.Muted.Render(shortID(t.ID)), t.Date, t.Title, ui.TaskStatus(t.Status), ui.Muted.Render(string(t.Group)))
}

func newTaskAddCmd() *cobra.Command {
	var date string
	var group string
	var rank string
	var stats string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Schedule a task for a day",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := engine.ParseTaskGroup(group)
			if err != nil {
				return err
			}
			difficulty, err := engine.ParseRank(rank)
			if err != nil {
				return err
			}
			targets, err := engine.ParseStats(stats)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				t, err := a.eng.ScheduleTask(cmd.Context(), engine.ScheduleTaskInput{
					Title:       args[0],
					Date:        date,
					Group:       g,
					Difficulty:  difficulty,
					TargetStats: targets,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render("Scheduled"))
				fmt.Fprintln(out, taskLine(*t))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&group, "group", "g", "optional", "Group (optional|skill)")
	cmd.Flags().StringVarP(&rank, "rank", "r", "E", "Difficulty rank (E|D|C|B|A|S)")
	cmd.Flags().StringVarP(&stats, "stats", "s", "", "Target stats, comma separated")
	return cmd
}

func newTaskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scheduled tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				tasks := a.eng.Tasks()
				fmt.Fprintln(out, ui.Heading(ui.IconClock, "Tasks"))
				if len(tasks) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(none)"))
				}
				for _, t := range tasks {
					fmt.Fprintln(out, taskLine(t))
				}
				return nil
			})
		},
	}
}

func newTaskStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Mark a task as in progress",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				id, err := resolveID(args[0], taskIDs(a.eng.Tasks()))
				if err != nil {
					return err
				}
				t, err := a.eng.StartTask(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, taskLine(*t))
				return nil
			})
		},
	}
}

func newTaskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task and claim its quest reward",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				id, err := resolveID(args[0], taskIDs(a.eng.Tasks()))
				if err != nil {
					return err
				}
				res, err := a.eng.CompleteTask(cmd.Context(), id)
				if err != nil {
					return err
				}
				printComplete(out, res)
				return nil
			})
		},
	}
}

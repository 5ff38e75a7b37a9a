package root

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"systemos/internal/engine"
	"systemos/internal/ui"
)

const mysteryBoxItem = "mystery-box"

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "List shop items",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return run(cmd.Context(), out, func(a *app) error {
				gold := a.eng.Player().Gold
				fmt.Fprintln(out, ui.Heading(ui.IconGold, "Shop"))
				fmt.Fprintln(out, ui.LabelValue("Gold", ui.Gold.Render(fmt.Sprint(gold))))
				for _, item := range a.eng.ShopItems() {
					cost := ui.Gold.Render(fmt.Sprintf("%d", item.Cost))
					if item.Cost > gold {
						cost = ui.Muted.Render(fmt.Sprintf("%d", item.Cost))
					}
					fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(item.ID), item.Name, cost)
				}
				return nil
			})
		},
	}

	return cmd
}

func newBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <item>",
		Short: "Buy a shop item",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return purchase(cmd, args[0])
		},
	}

	return cmd
}

func newBoxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "box",
		Short: "Buy and open a mystery box",
		RunE: func(cmd *cobra.Command, args []string) error {
			return purchase(cmd, mysteryBoxItem)
		},
	}

	return cmd
}

func purchase(cmd *cobra.Command, itemID string) error {
	out := cmd.OutOrStdout()
	return run(cmd.Context(), out, func(a *app) error {
		res, err := a.eng.Purchase(cmd.Context(), itemID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconGold+" Bought"), res.Item.Name, ui.Muted.Render(fmt.Sprintf("(-%d gold)", res.Spent)))
		if res.Buff != nil {
			fmt.Fprintln(out, buffLine(*res.Buff, time.Now()))
		}
		if res.Mystery != nil {
			fmt.Fprintln(out, mysteryLine(*res.Mystery))
		}
		return nil
	})
}

func mysteryLine(m engine.MysteryResult) string {
	switch m.Outcome {
	case engine.MysteryGold:
		return ui.Epic.Render(ui.IconBox+" ") + ui.Gold.Render(fmt.Sprintf("+%d gold", m.Gold))
	case engine.MysteryXP:
		return ui.Epic.Render(ui.IconBox+" ") + fmt.Sprintf("+%d XP", m.XP.XPApplied)
	default:
		if m.Buff != nil {
			return ui.Epic.Render(ui.IconBox+" ") + buffLine(*m.Buff, time.Now())
		}
		return ui.Epic.Render(ui.IconBox+" ") + string(m.Outcome)
	}
}

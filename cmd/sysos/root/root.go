package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"systemos/internal/ui"
)

const Version = "0.1.0"

// dataDir overrides the ~/.sysos data directory.
var dataDir string

var rootCmd = &cobra.Command{
	Use:           "sysos",
	Short:         "SYSTEM.OS — gamified self-improvement tracker",
	Long:          "SYSTEM.OS turns daily habits into quests with XP, ranks, penalties and boss gates.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Data directory (default ~/.sysos)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newQuestsCmd(),
		newQuestCmd(),
		newCompleteCmd(),
		newAbandonCmd(),
		newCheckInCmd(),
		newReconcileCmd(),
		newBuffsCmd(),
		newShopCmd(),
		newBuyCmd(),
		newBoxCmd(),
		newGateCmd(),
		newTaskCmd(),
		newRollbackCmd(),
		newLogCmd(),
		newBoardCmd(),
		newResetCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

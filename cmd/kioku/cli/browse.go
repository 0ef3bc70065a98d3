package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kioku-ai/kioku/internal/ui/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [user-id]",
	Short: "Browse a user's memory record interactively",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID := args[0]

		obs := newObserver()
		defer obs.Close()

		cfg, err := loadConfig()
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Failed to load config")
		}

		svc, store, err := newService(cfg, obs)
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Failed to init memory service")
		}
		defer store.Close()

		rec, err := svc.Get(context.Background(), userID)
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Failed to read memory record")
		}

		program := tea.NewProgram(tui.NewModel(userID, rec), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			obs.Log().Fatal().Err(err).Msg("Browser failed")
		}
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)
}

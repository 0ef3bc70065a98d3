package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kioku-ai/kioku/internal/record"
	"github.com/kioku-ai/kioku/internal/ui"
)

var showPlain bool

var showCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show a user's stored memory record",
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

		if showPlain {
			fmt.Println(record.SerializeProfile(rec.Profile))
			return
		}
		fmt.Print(ui.RenderRecord(userID, rec))
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showPlain, "profile-only", false, "Print only the profile as key: value lines")
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var contextQuery string

var contextCmd = &cobra.Command{
	Use:   "context [user-id]",
	Short: "Build the prompt context for a user",
	Long: `Builds the memory text that would be injected into a prompt for the
given user. With --query the selection is ranked against the query;
without it the most recent, highest-confidence entries are used, which
matches what a session gets at launch before the user has spoken.`,
	Args: cobra.ExactArgs(1),
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

		mc, err := svc.BuildContext(context.Background(), userID, contextQuery, time.Now().UTC())
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Failed to build context")
		}

		if mc.Empty {
			fmt.Println("(no memory context)")
			return
		}
		fmt.Println(mc.Text)
	},
}

func init() {
	RootCmd.AddCommand(contextCmd)
	contextCmd.Flags().StringVarP(&contextQuery, "query", "q", "", "Query to rank memory against")
}

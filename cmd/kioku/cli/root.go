package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	ciMode     bool
	backend    string
	dataDir    string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "kioku",
	Short: "Per-user long-term memory for conversational agents",
	Long: `Kioku stores what an agent learns about each user across sessions:
a profile, confidence-scored facts, and episode summaries. It assembles
the most relevant memory into a bounded prompt context at session start
and folds new extractions back in at session end.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&ciMode, "ci", false, "CI mode: JSON log output")
	RootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Blob backend (fs, sqlite); overrides config")
	RootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory; overrides config")
}

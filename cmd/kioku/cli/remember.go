package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kioku-ai/kioku/internal/merge"
	"github.com/kioku-ai/kioku/internal/record"
	"github.com/kioku-ai/kioku/internal/summarizer"
)

var (
	transcriptPath string
	sessionSummary string
	profilePairs   []string
	profileFile    string
	factSpecs      []string
)

var rememberCmd = &cobra.Command{
	Use:   "remember [user-id]",
	Short: "Fold a finished session into a user's memory",
	Long: `Writes one session's outcome into the user's memory record.

With --transcript, the configured summarizer extracts a summary, profile
updates, and facts from the transcript file (one "role: content" line per
turn). Without it, --summary, --profile, and --fact supply the extraction
directly.`,
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

		ctx := context.Background()

		if transcriptPath != "" {
			transcript, err := readTranscript(transcriptPath)
			if err != nil {
				obs.Log().Fatal().Err(err).Msg("Failed to read transcript")
			}
			sum, err := newSummarizer(cfg.Summarizer)
			if err != nil {
				obs.Log().Fatal().Err(err).Msg("Failed to init summarizer")
			}
			if err := svc.RememberSession(ctx, userID, transcript, sum); err != nil {
				obs.Log().Fatal().Err(err).Msg("Failed to remember session")
			}
			fmt.Println("Session remembered.")
			return
		}

		if sessionSummary == "" {
			obs.Log().Fatal().Msg("Either --transcript or --summary is required")
		}

		profile, err := parseProfilePairs(profilePairs)
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Invalid --profile value")
		}
		if profileFile != "" {
			data, err := os.ReadFile(profileFile) // #nosec G304
			if err != nil {
				obs.Log().Fatal().Err(err).Msg("Failed to read profile file")
			}
			for k, v := range record.ParseProfile(string(data)) {
				if _, ok := profile[k]; !ok {
					profile[k] = v
				}
			}
		}
		facts, err := parseFactSpecs(factSpecs)
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Invalid --fact value")
		}

		if err := svc.Write(ctx, userID, sessionSummary, profile, facts); err != nil {
			obs.Log().Fatal().Err(err).Msg("Failed to write memory record")
		}
		fmt.Println("Session remembered.")
	},
}

func readTranscript(path string) ([]summarizer.Turn, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, err
	}

	var turns []summarizer.Turn
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		role, content, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("transcript line %q is not in role: content form", line)
		}
		turns = append(turns, summarizer.Turn{
			Role:    strings.TrimSpace(role),
			Content: strings.TrimSpace(content),
		})
	}
	if len(turns) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}
	return turns, nil
}

func parseProfilePairs(pairs []string) (map[string]string, error) {
	profile := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("profile entry %q is not in key=value form", p)
		}
		profile[k] = v
	}
	return profile, nil
}

// parseFactSpecs parses "category:content[:confidence]" entries.
func parseFactSpecs(specs []string) ([]merge.Candidate, error) {
	var facts []merge.Candidate
	for _, spec := range specs {
		category, rest, ok := strings.Cut(spec, ":")
		if !ok || category == "" || rest == "" {
			return nil, fmt.Errorf("fact %q is not in category:content[:confidence] form", spec)
		}

		content := rest
		confidence := 0.5
		// The confidence suffix is optional, and content may itself
		// contain colons ("meets at 10:30"), so a trailing :<number>
		// only counts when it is a plausible confidence.
		if i := strings.LastIndex(rest, ":"); i > 0 {
			if c, err := strconv.ParseFloat(rest[i+1:], 64); err == nil && c >= 0 && c <= 1 {
				content = rest[:i]
				confidence = c
			}
		}

		facts = append(facts, merge.Candidate{
			Category:   category,
			Content:    content,
			Confidence: confidence,
		})
	}
	return facts, nil
}

func init() {
	RootCmd.AddCommand(rememberCmd)
	rememberCmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Transcript file to summarize")
	rememberCmd.Flags().StringVarP(&sessionSummary, "summary", "s", "", "Session summary text")
	rememberCmd.Flags().StringArrayVar(&profilePairs, "profile", nil, "Profile update as key=value (repeatable)")
	rememberCmd.Flags().StringVar(&profileFile, "profile-file", "", "File of profile updates, one key: value per line")
	rememberCmd.Flags().StringArrayVar(&factSpecs, "fact", nil, "Fact as category:content[:confidence] (repeatable)")
}

package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Leaderboard commands",
	}

	cmd.AddCommand(newLeaderboardListCmd())
	cmd.AddCommand(newLeaderboardSubmitCmd())

	return cmd
}

func newLeaderboardListCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show scores, highest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/leaderboard"
			if mode != "" {
				path += "?" + url.Values{"mode": {mode}}.Encode()
			}

			var result []LeaderboardEntry
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Only show one mode: walls or pass-through")

	return cmd
}

func newLeaderboardSubmitCmd() *cobra.Command {
	var score int
	var mode string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a score for the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"score": score,
				"mode":  mode,
			}
			var result LeaderboardEntry

			if err := client.Post("/api/leaderboard", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Score (required)")
	cmd.Flags().StringVar(&mode, "mode", "", "Mode: walls or pass-through (required)")
	_ = cmd.MarkFlagRequired("score")
	_ = cmd.MarkFlagRequired("mode")

	return cmd
}

package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Live game commands",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesGetCmd())
	cmd.AddCommand(newGamesStartCmd())
	cmd.AddCommand(newGamesEndCmd())

	return cmd
}

func newGamesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []LiveGame
			if err := client.Get("/api/games", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGamesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one live game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LiveGame
			if err := client.Get("/api/games/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGamesStartCmd() *cobra.Command {
	var id, mode string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Register a live game for the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"mode": mode}
			if id != "" {
				req["id"] = id
			}
			var result LiveGame

			if err := client.Post("/api/games", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Mode: walls or pass-through (required)")
	cmd.Flags().StringVar(&id, "id", "", "Game id of letters, digits, _ or -; generated by the server when omitted")
	_ = cmd.MarkFlagRequired("mode")

	return cmd
}

func newGamesEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <id>",
		Short: "End one of your live games",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/games/" + url.PathEscape(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Game %s ended", args[0]))
			return nil
		},
	}
}

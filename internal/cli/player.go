package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player commands",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerLoginCmd())
	cmd.AddCommand(newPlayerStateCmd())
	cmd.AddCommand(newPlayerRollCmd())

	return cmd
}

// playerFlags adds the --email and --area flags shared by player commands
func playerFlags(cmd *cobra.Command, email, area *string) {
	cmd.Flags().StringVar(email, "email", "", "Player email (required)")
	cmd.Flags().StringVar(area, "area", "", "Area code (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("area")
}

func newPlayerRegisterCmd() *cobra.Command {
	var email, area string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a player in an area",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"email": email, "area": area}
			var result Player

			if err := client.Post("/api/v1/players/register", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	playerFlags(cmd, &email, &area)
	return cmd
}

func newPlayerLoginCmd() *cobra.Command {
	var email, area string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Look up a registered player",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"email": email, "area": area}
			var result Player

			if err := client.Post("/api/v1/players/login", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	playerFlags(cmd, &email, &area)
	return cmd
}

func newPlayerStateCmd() *cobra.Command {
	var email, area string

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show a player's game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/players/state?email=%s&area=%s",
				url.QueryEscape(email), url.QueryEscape(area))
			var result Player

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	playerFlags(cmd, &email, &area)
	return cmd
}

func newPlayerRollCmd() *cobra.Command {
	var email, area string

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Roll the die",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"email": email, "area": area}
			var result Roll

			if err := client.Post("/api/v1/players/roll", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	playerFlags(cmd, &email, &area)
	return cmd
}

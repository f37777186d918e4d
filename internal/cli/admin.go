package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin commands (require credentials)",
	}

	cmd.AddCommand(newAdminPlayersCmd())
	cmd.AddCommand(newAdminResetCmd())
	cmd.AddCommand(newAdminDeleteCmd())
	cmd.AddCommand(newAdminGrantCmd())
	cmd.AddCommand(newAdminUndoCmd())
	cmd.AddCommand(newAdminPrizeCmd())
	cmd.AddCommand(newAdminPasswdCmd())

	return cmd
}

func newAdminPlayersCmd() *cobra.Command {
	var area string

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List players in an area",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/admin/players?area=%s", url.QueryEscape(area))
			var result PlayerList

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "Area code (required)")
	_ = cmd.MarkFlagRequired("area")
	return cmd
}

func newAdminResetCmd() *cobra.Command {
	var email, area string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset a player's board progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"email": email, "area": area}
			var result Player

			if err := client.Post("/api/v1/admin/players/reset", req, &result); err != nil {
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

func newAdminDeleteCmd() *cobra.Command {
	var email, area string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a player record",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/admin/players?email=%s&area=%s",
				url.QueryEscape(email), url.QueryEscape(area))

			if err := client.Delete(path); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted %s in %s", email, area))
			return nil
		},
	}

	playerFlags(cmd, &email, &area)
	return cmd
}

func newAdminGrantCmd() *cobra.Command {
	var area string
	var amount int
	var emails []string

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Grant (or revoke, with a negative amount) rolls to players",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"area":   area,
				"amount": amount,
				"emails": emails,
			}
			var result GrantResult

			if err := client.Post("/api/v1/admin/grants", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "Area code (required)")
	cmd.Flags().IntVar(&amount, "amount", 0, "Rolls to add (negative to revoke)")
	cmd.Flags().StringSliceVar(&emails, "email", nil, "Player email (repeatable; omit to target the whole area)")
	_ = cmd.MarkFlagRequired("area")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newAdminUndoCmd() *cobra.Command {
	var area string

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recent grant in an area",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"area": area}
			var result UndoneGrant

			if err := client.Post("/api/v1/admin/grants/undo", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "Area code (required)")
	_ = cmd.MarkFlagRequired("area")
	return cmd
}

func newAdminPrizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prize",
		Short: "Area prize configuration",
	}

	cmd.AddCommand(newAdminPrizeGetCmd())
	cmd.AddCommand(newAdminPrizeSetCmd())
	return cmd
}

func newAdminPrizeGetCmd() *cobra.Command {
	var area string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show an area's prize configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/admin/areas/%s/prize", url.PathEscape(area))
			var result PrizeConfig

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "Area code (required)")
	_ = cmd.MarkFlagRequired("area")
	return cmd
}

func newAdminPrizeSetCmd() *cobra.Command {
	var area string
	var winners int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set an area's high-tier winner cap",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/admin/areas/%s/prize", url.PathEscape(area))
			req := map[string]int{"max_high_tier_winners": winners}
			var result PrizeConfig

			if err := client.Put(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "Area code (required)")
	cmd.Flags().IntVar(&winners, "winners", 0, "Max high-tier winners")
	_ = cmd.MarkFlagRequired("area")
	_ = cmd.MarkFlagRequired("winners")
	return cmd
}

func newAdminPasswdCmd() *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"current_password": current,
				"new_password":     next,
			}

			if err := client.Post("/api/v1/admin/change-password", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Password changed")
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password (required)")
	cmd.Flags().StringVar(&next, "new", "", "New password (required)")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}

package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "slgame",
		Short: "CLI tool for the snakes and ladders promo API",
		Long: `slgame is a CLI tool for interacting with the snakes and ladders
promotional game JSON API.

It covers the player flow (register, login, roll, state) and the admin
surface (player listing, roll grants, prize configuration). Admin
commands require credentials via --admin-user/--admin-pass or the
SLGAME_ADMIN_USER/SLGAME_ADMIN_PASS environment variables.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			client = NewClient(cfg.ServerURL, cfg.AdminUser, cfg.AdminPass)
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SLGAME_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminUser, "admin-user", cfg.AdminUser, "Admin username (env: SLGAME_ADMIN_USER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminPass, "admin-pass", cfg.AdminPass, "Admin password (env: SLGAME_ADMIN_PASS)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

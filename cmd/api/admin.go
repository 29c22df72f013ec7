package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bizmatters/usdc-actions/internal/auth"
	"github.com/bizmatters/usdc-actions/internal/telegram"
)

var (
	tokenTTL time.Duration
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Mint an admin JWT for the /app routes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Auth.Enabled() {
			return fmt.Errorf("JWT_SECRET is not configured")
		}

		jm, err := auth.NewJWTManager(cfg.Auth.JWTSecret, jwtIssuer)
		if err != nil {
			return err
		}
		ttl := tokenTTL
		if ttl == 0 {
			ttl = cfg.Auth.TokenTTL
		}
		username := cfg.Auth.AdminUsername
		token, expiresAt, err := jm.GenerateToken(context.Background(), username, username, []string{auth.RoleAdmin}, ttl)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, token)
		fmt.Fprintf(out, "expires at %s\n", expiresAt.UTC().Format(time.RFC3339))
		return nil
	},
}

var setWebhookCmd = &cobra.Command{
	Use:   "set-webhook [url]",
	Short: "Register the Telegram webhook with the configured secret token",
	Long: `Registers the bot webhook. The URL defaults to
<base_url>/telegram-bot/webhook.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Telegram.BotToken == "" {
			return fmt.Errorf("BOT_TOKEN is not configured")
		}

		url := cfg.Server.BaseURL + "/telegram-bot/webhook"
		if len(args) == 1 {
			url = args[0]
		}

		bot, err := telegram.NewBot(cfg.Telegram.BotToken, log)
		if err != nil {
			return err
		}
		if err := bot.SetWebhook(url, cfg.Telegram.SecretToken); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "webhook set to %s\n", url)
		return nil
	},
}

func init() {
	issueTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to auth.token_ttl)")

	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(issueTokenCmd)
	rootCmd.AddCommand(setWebhookCmd)
}

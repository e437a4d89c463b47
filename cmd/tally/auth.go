package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	var clientID, clientSecret, callbackAddr string
	var force bool

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This opens the Google consent page in your browser and saves the refresh
token so that 'tally export sheets' can run unattended. Run it once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if clientID == "" {
				clientID = viper.GetString("sheets.client_id")
			}
			if clientSecret == "" {
				clientSecret = viper.GetString("sheets.client_secret")
			}
			if clientID == "" {
				clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
			}
			if clientSecret == "" {
				clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
			}
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret")
			}

			oauth := sheets.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenFile:    config.SheetsTokenPath(),
				CallbackAddr: callbackAddr,
			}
			slog.Info("Starting Google Sheets authentication", "token_file", oauth.TokenFile)

			authenticate := sheets.GetOrCreateToken
			if force {
				authenticate = sheets.AuthenticateOAuth2Interactive
			}
			if _, err := authenticate(ctx, oauth); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Google Sheets is configured. Run 'tally export sheets monthly' to export a report."))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client id (overrides config)")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret (overrides config)")
	cmd.Flags().StringVar(&callbackAddr, "callback-addr", sheets.DefaultCallbackAddr, "host:port for the local OAuth2 redirect")
	cmd.Flags().BoolVar(&force, "force", false, "re-authenticate even if a token is saved")

	return cmd
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"time"

	"github.com/mtetteh/groundwork/colors"
	"github.com/mtetteh/groundwork/server/auth"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createTokenCmd())
}

// createTokenCmd builds the token command: a side channel for minting
// API bearer tokens without going through /auth/sign-in.
func createTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token",
		Long: `Mint a signed bearer token for the protected API routes,
using the jwtSecret from the server config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := cmd.Flags().GetString("sub")
			if err != nil {
				return err
			}

			role, err := cmd.Flags().GetString("role")
			if err != nil {
				return err
			}

			expiryDays, err := cmd.Flags().GetInt("expiry")
			if err != nil {
				return err
			}

			secret := config.GetString("groundwork.jwtSecret")
			if secret == "" {
				return fmt.Errorf("'groundwork.jwtSecret' is not set in %s", config.ConfigFileUsed())
			}

			lifetime := time.Duration(expiryDays) * 24 * time.Hour
			claims := auth.NewAPITokenClaims(subject, role, lifetime)

			token, err := auth.EncodeJWT(claims, []byte(secret))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n\n", colors.Bold(colors.Blue("API Token:")), colors.Green(token))
			fmt.Fprintf(out, "%s\n", colors.Bold(colors.Blue("Usage:")))
			fmt.Fprintf(out, "  curl -H %s http://localhost:3000/api/v1/contact\n\n", colors.Green(fmt.Sprintf("'Authorization: Bearer %v...'", token[:12])))
			fmt.Fprintf(out, "Subject: %v, Role: %v, Expires: %v\n", subject, role,
				time.Unix(claims.ExpiresAt, 0).Format(time.RFC1123))
			fmt.Fprintf(out, "%s keep tokens secret & rotate them regularly\n", warningLabel)

			return nil
		},
	}

	cmd.Flags().String("sub", "admin", "token subject")
	cmd.Flags().String("role", "admin", "token role (admin or user)")
	cmd.Flags().Int("expiry", 7, "token lifetime in days")

	return cmd
}

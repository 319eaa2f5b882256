/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"time"

	"github.com/mtetteh/groundwork/colors"
	"github.com/mtetteh/groundwork/server/gstorage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createSignCmd())
}

// createSignCmd builds the sign command, which mints a time-boxed
// signed URL for private access to a stored object.
func createSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign <key>",
		Short: "Generate a signed URL for an object in the bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expirySeconds, err := cmd.Flags().GetInt("expiry")
			if err != nil {
				return err
			}

			gStorage, err := gstorage.NewGStorage(
				cmd.Context(),
				config.GetString("google.applicationCredentials"),
				config.GetString("google.storage.bucket"),
				config.GetString("google.storage.customDomain"),
			)
			if err != nil {
				return err
			}

			expiresIn := time.Duration(expirySeconds) * time.Second
			signedURL, err := gStorage.SignedURL(args[0], expiresIn)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", colors.Bold(colors.Blue("Signed URL:")), colors.Green(signedURL))
			fmt.Fprintf(cmd.OutOrStdout(), "expires in %v\n", expiresIn)

			return nil
		},
	}

	cmd.Flags().Int("expiry", 3600, "URL lifetime in seconds")

	return cmd
}

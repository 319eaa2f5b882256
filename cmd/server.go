/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"github.com/mtetteh/groundwork/server"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a groundwork server",
	Long:  `The groundwork server exposes the contact & project APIs under /api/v1`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start(config, isDevEnv)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

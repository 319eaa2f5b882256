/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	devconfig "github.com/mtetteh/groundwork/dev/config"
)

var (
	cfgFile string
	config  *viper.Viper

	isDevEnv bool

	yellow       = color.New(color.FgYellow).SprintFunc()
	warningLabel = yellow("Warning:")
)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd = createRootCmd()
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "groundwork",
		Short: `groundwork is the backend for the company site: contact-form
submissions & project listings, with image uploads & bearer-token
protected admin routes.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.groundwork.yaml)")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config = viper.New()

	if cfgFile == "" {
		configFilePath, err := defaultCfgFilePath()
		cobra.CheckErr(err)
		cfgFile = configFilePath
	}

	config.SetConfigFile(cfgFile)

	// Secrets can live in the environment instead of the yaml config.
	// FYI: The env var overrides whatever is in the config file
	config.BindEnv("groundwork.jwtSecret", "GROUNDWORK_JWT_SECRET")
	config.BindEnv("mongo.uri", "MONGO_URI")
	config.BindEnv("google.applicationCredentials", "GOOGLE_APPLICATION_CREDENTIALS")

	config.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		cobra.CheckErr(err)
	}
}

// defaultCfgFilePath returns ~/.groundwork.yaml in production, or
// dev/config/server.yml (created from the embedded default when it
// doesn't exist yet) in dev mode.
func defaultCfgFilePath() (string, error) {
	if isDevEnv {
		workingDir, err := os.Getwd()
		if err != nil {
			return "", err
		}

		devCfgFilePath := filepath.Join(workingDir, "dev", "config", "server.yml")
		if _, err := os.Stat(devCfgFilePath); os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(devCfgFilePath), 0755); err != nil {
				return "", err
			}
			if err := os.WriteFile(devCfgFilePath, []byte(devconfig.SERVER_YML), 0600); err != nil {
				return "", err
			}
		}

		return devCfgFilePath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".groundwork.yaml"), nil
}

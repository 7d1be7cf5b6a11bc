package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kodisync",
	Short: "Sonarr custom-script hook that keeps Kodi libraries in sync",
	Long: `kodisync - Sonarr custom-script hook that keeps Kodi libraries in sync

Sonarr invokes this binary once per event with the event details in
Sonarr_* environment variables. Each run reconciles the configured Kodi
hosts with what Sonarr just did: scans new files in, removes deleted
entries, carries watched state across upgrades, and restores interrupted
playback.

Install it in Sonarr under Settings > Connect > Custom Script.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(configPath)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.toml", "Path to config file")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("kodisync {{.Version}}\n")
}

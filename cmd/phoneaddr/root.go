package main

import (
	"github.com/spf13/cobra"

	"phoneaddr/internal/version"
)

var (
	// configDir is the CLI --config-dir flag value
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "phoneaddr",
	Short: "Phone Address Service",
	Long: `Phone Address Service stores and manages phone-to-address bindings in
Redis and exposes them over a small JSON HTTP API. It can be used for
caching frequently requested user addresses or quick lookup of delivery
addresses by phone number.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("phoneaddr version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".",
		"Directory searched for an optional config.json")
}

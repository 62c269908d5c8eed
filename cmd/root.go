package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/advup/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "advup",
	Short:        "Advanced Installer provisioner for build agents",
	Long:         `Ensures a registered, licensed and PATH-visible Advanced Installer installation exists on the agent, reusing a cached copy when available.`,
	RunE:         runProvision,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().StringP("advinst-version", "V", "", "Advanced Installer version to provision (e.g., 19, 19.5, 19.5.1)")
	rootCmd.PersistentFlags().StringP("license", "l", "", "License key to register (or set "+licenseEnvHint+")")
	rootCmd.PersistentFlags().Bool("register-com", false, "Register the COM automation interface")
	rootCmd.PersistentFlags().String("arch", "", "Architecture inside the extracted image (default x86)")
	rootCmd.PersistentFlags().String("cache-dir", "", "Installation cache directory (default user cache dir)")
	rootCmd.PersistentFlags().String("url-template", "", "Download URL template with a %s verb for the version")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(cacheCmd)
}

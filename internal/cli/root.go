// Package cli defines the schedbot command tree. Service instances are
// injected as package-level variables during app initialization.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// Version returns the version string injected at build time.
func Version() string {
	return appVersion
}

var rootCmd = &cobra.Command{
	Use:   "schedbot",
	Short: "Obsidian Schedule Bot - Telegram notifications for Obsidian Tasks",
	Long: `schedbot reads Obsidian-Tasks-style checkbox lines from a markdown vault
and turns them into daily, weekly, and backlog schedule reports.

It runs as a Telegram bot with scheduled notifications, but every report is
also available directly from the command line, from a terminal dashboard,
and over MCP for AI assistants.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("schedbot %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhokang/schedbot/pkg/models"
)

var (
	reportIncludeAll bool
	reportSyncFirst  bool
)

// scanForReport optionally pulls the vault, then scans it.
func scanForReport() ([]models.Task, error) {
	if Scanner == nil {
		return nil, fmt.Errorf("vault scanner not initialized")
	}
	if reportSyncFirst && VaultSync != nil {
		if result := VaultSync.Pull(); result.Err != nil {
			fmt.Printf("warning: %s: %v\n", result.Message, result.Err)
		}
	}
	tasks, err := Scanner.ScanTasks()
	if err != nil {
		return nil, fmt.Errorf("scanning vault: %w", err)
	}
	return tasks, nil
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print the daily schedule report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := scanForReport()
		if err != nil {
			return err
		}
		fmt.Println(Reports.Daily(tasks, reportIncludeAll))
		return nil
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print the weekly schedule report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := scanForReport()
		if err != nil {
			return err
		}
		fmt.Println(Reports.Weekly(tasks, reportIncludeAll))
		return nil
	},
}

var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "Print every incomplete task grouped by document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := scanForReport()
		if err != nil {
			return err
		}
		fmt.Println(Reports.Backlog(tasks))
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{todayCmd, weekCmd, backlogCmd} {
		cmd.Flags().BoolVar(&reportIncludeAll, "all", false, "include completed tasks")
		cmd.Flags().BoolVar(&reportSyncFirst, "sync", false, "pull the vault before scanning")
		rootCmd.AddCommand(cmd)
	}
}

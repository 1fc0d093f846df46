package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/minhokang/schedbot/pkg/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change notification settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := Settings.Load()
		if err != nil {
			return err
		}
		printSettings(settings)
		return nil
	},
}

var settingsAddTimeCmd = &cobra.Command{
	Use:   "add-time HH:MM",
	Short: "Add a notification time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := Settings.AddNotificationTime(args[0])
		if err != nil {
			return err
		}
		printSettings(settings)
		return nil
	},
}

var settingsRemoveTimeCmd = &cobra.Command{
	Use:   "remove-time HH:MM",
	Short: "Remove a notification time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := Settings.RemoveNotificationTime(args[0])
		if err != nil {
			return err
		}
		printSettings(settings)
		return nil
	},
}

var settingsToggleTestCmd = &cobra.Command{
	Use:   "toggle-test",
	Short: "Toggle test mode (notification every minute)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := Settings.ToggleTestMode()
		if err != nil {
			return err
		}
		printSettings(settings)
		return nil
	},
}

var settingsTimezoneCmd = &cobra.Command{
	Use:   "timezone ZONE",
	Short: "Set the notification timezone (IANA name)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := Settings.SetTimezone(args[0])
		if err != nil {
			return err
		}
		printSettings(settings)
		return nil
	},
}

// printSettings writes a plain-text settings summary. Changes made while the
// bot is running take effect on its next scheduler rebuild.
func printSettings(settings *models.Settings) {
	testMode := "OFF"
	if settings.TestMode {
		testMode = "ON"
	}
	fmt.Printf("Timezone:  %s\nTest mode: %s\n", settings.Timezone, testMode)

	times := append([]string(nil), settings.NotificationTimes...)
	sort.Strings(times)
	fmt.Println("Notification times:")
	if len(times) == 0 {
		fmt.Println("  (none)")
	}
	for _, t := range times {
		fmt.Printf("  %s\n", t)
	}
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsAddTimeCmd)
	settingsCmd.AddCommand(settingsRemoveTimeCmd)
	settingsCmd.AddCommand(settingsToggleTestCmd)
	settingsCmd.AddCommand(settingsTimezoneCmd)
	rootCmd.AddCommand(settingsCmd)
}

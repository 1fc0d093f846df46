package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the latest vault contents from the git remote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if VaultSync == nil {
			return fmt.Errorf("vault sync manager not initialized")
		}
		result := VaultSync.Pull()
		if result.Err != nil {
			return fmt.Errorf("%s: %w", result.Message, result.Err)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/minhokang/schedbot/internal/bot"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Telegram bot with scheduled notifications",
	Long: `Start the long-running bot: poll Telegram for commands and button
presses, and deliver the daily report at every configured notification time.

Requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID (via the environment, a
.env file, or schedbot.yaml).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Config == nil {
			return fmt.Errorf("configuration not initialized")
		}

		b, err := bot.New(bot.Config{
			Token:     Config.BotToken,
			ChatID:    Config.ChatID,
			Settings:  Settings,
			Scanner:   Scanner,
			Reports:   Reports,
			VaultSync: VaultSync,
			EventLog:  EventLog,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Println("schedbot running, press Ctrl+C to stop")
		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

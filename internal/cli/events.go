package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhokang/schedbot/internal/observability"
)

var (
	eventsType  string
	eventsLevel string
	eventsSince time.Duration
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent bot activity from the event log",
	Long: `Read the append-only activity log: notifications sent, vault syncs,
handled commands and callbacks, and settings changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not initialized")
		}

		filter := observability.EventFilter{Type: eventsType, Level: eventsLevel}
		if eventsSince > 0 {
			since := time.Now().UTC().Add(-eventsSince)
			filter.Since = &since
		}

		events, err := EventLog.Read(filter)
		if err != nil {
			return fmt.Errorf("reading event log: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events.")
			return nil
		}

		for _, e := range events {
			fmt.Printf("%s  %-5s %-22s %s\n", e.Time.Format(time.RFC3339), e.Level, e.Type, e.Message)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsType, "type", "", "only events of this type (e.g. notification.sent)")
	eventsCmd.Flags().StringVar(&eventsLevel, "level", "", "only events at this level (INFO, WARN, ERROR)")
	eventsCmd.Flags().DurationVar(&eventsSince, "since", 0, "only events newer than this age (e.g. 24h)")
	rootCmd.AddCommand(eventsCmd)
}

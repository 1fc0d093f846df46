package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/minhokang/schedbot/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Expose task reports and vault sync as MCP tools over stdin/stdout,
for use by MCP-capable clients.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := mcp.NewServer(Scanner, Reports, VaultSync, Version())
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

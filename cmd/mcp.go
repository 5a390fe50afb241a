package cmd

import (
	"fmt"

	"github.com/huangsam/ytdash/core"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [data-dir]",
	Short: "Start the ytdash MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents query the channel export via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr, which keeps stdio free for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		memo := core.NewDatasetProvider(cfg.Files, contract.Logger())
		if _, err := memo.Get(rootCtx); err != nil {
			return fmt.Errorf("failed to load channel export: %w", err)
		}
		return mcp.StartMCPServer(rootCtx, cfg, storeManager, memo)
	},
}

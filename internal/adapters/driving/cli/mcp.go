package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reel-labs/reelsearch/internal/adapters/driving/mcp"
	"github.com/reel-labs/reelsearch/internal/config"
)

var mcpTransport string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing the semantic_search
tool to AI assistants.

The transport comes from configuration (MCP_SERVER_TYPE) and can be
overridden with --transport:
  sse     streamable HTTP on MCP_HOST:MCP_PORT (default)
  stdio   JSON-RPC over stdin/stdout, for desktop assistants

Examples:
  # HTTP mode (default)
  reelsearch mcp serve

  # Stdio mode (for Claude Desktop)
  reelsearch mcp serve --transport stdio

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "reelsearch": {
        "command": "/path/to/reelsearch",
        "args": ["mcp", "serve", "--transport", "stdio"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpTransport, "transport", "", `transport override ("sse" or "stdio")`)
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	transport := cfg.MCP.ServerType
	if mcpTransport != "" {
		transport = mcpTransport
	}

	emb, err := getEmbedder()
	if err != nil {
		return err
	}
	// Fail at startup rather than on the first tool call if the model
	// isn't reachable.
	if err := emb.Ping(cmd.Context()); err != nil {
		return fmt.Errorf("embedding service unreachable: %w", err)
	}

	svc, err := getSearchService()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Search: svc})
	if err != nil {
		return err
	}

	switch transport {
	case config.TransportStdio:
		return server.Run(cmd.Context())
	case config.TransportSSE:
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", cfg.MCP.URI())
		return server.RunHTTP(cmd.Context(), cfg.MCP.Addr())
	default:
		return fmt.Errorf("unknown transport %q", transport)
	}
}

package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regtrack/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query
tracked agencies and their snapshot history.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead. HTTP binds to loopback unless
--host says otherwise.

Examples:
  # Stdio mode (default)
  regtrack mcp serve

  # HTTP mode
  regtrack mcp serve --port 8080

  # HTTP on every interface
  regtrack mcp serve --port 8080 --host 0.0.0.0`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().String("host", "127.0.0.1", "HTTP bind address")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	if reportService == nil {
		return errors.New("report service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{Report: reportService})
	if err != nil {
		return err
	}

	if port > 0 {
		host, err := cmd.Flags().GetString("host")
		if err != nil {
			return fmt.Errorf("getting host flag: %w", err)
		}
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		cmd.Printf("MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

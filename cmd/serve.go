package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing a live observation engine",
	Long: `Start a Model Context Protocol (MCP) server hosting a UI tree with a running
observation engine over it. AI agents can mutate the tree (set_text,
set_label, remove_node), push side-channel reports (log_text), and drain the
detected changes (changes) without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for Claude Code / MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  inspector-gadget serve --scenario demo.yaml
  inspector-gadget serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("scenario", "", "Scenario YAML file defining the host tree (default: built-in demo tree)")
	serveCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
	serveCmd.Flags().Int("ring-size", 256, "Max change records buffered for the changes tool")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	scenarioPath, _ := cmd.Flags().GetString("scenario")
	intervalMs, _ := cmd.Flags().GetInt("interval")
	ringSize, _ := cmd.Flags().GetInt("ring-size")

	cfg := MCPConfig{
		Transport:    transport,
		Port:         port,
		ScenarioPath: scenarioPath,
		Interval:     time.Duration(intervalMs) * time.Millisecond,
		RingSize:     ringSize,
	}

	srv, err := newMCPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.shutdown()

	return srv.serve(cfg)
}

package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/inspector-gadget/internal/engine"
	"github.com/mj1618/inspector-gadget/internal/scenario"
	"github.com/mj1618/inspector-gadget/internal/sink"
	"github.com/mj1618/inspector-gadget/internal/version"
)

// mcpServer wraps the MCP server with a live host tree and observation engine.
type mcpServer struct {
	world  *scenario.World
	engine *engine.Engine
	ring   *sink.Ring
	appMu  sync.Mutex
	mcp    *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport    string
	Port         int
	ScenarioPath string
	Interval     time.Duration
	RingSize     int
}

// demoScenario is the host tree served when no --scenario file is given.
const demoScenario = `
surfaces:
  - title: Demo
    active: true
    nodes:
      - name: toolbar
        role: group
        elements:
          - name: save
            label: Save
            desc: save button
      - name: status
        kind: label
        desc: status label
`

// newMCPServer builds the host tree, starts an engine over it, and registers
// all tools. The engine reports into a ring buffer only: on the stdio
// transport stdout belongs to the protocol, so no log sink is attached.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	var sc *scenario.Scenario
	var err error
	if cfg.ScenarioPath != "" {
		sc, err = scenario.Load(cfg.ScenarioPath)
	} else {
		sc, err = scenario.Parse([]byte(demoScenario))
	}
	if err != nil {
		return nil, err
	}
	world, err := sc.Build()
	if err != nil {
		return nil, fmt.Errorf("build scenario: %w", err)
	}

	ring := sink.NewRing(cfg.RingSize)
	eng := engine.New(world.App, engine.Config{Interval: cfg.Interval, Sink: ring})
	eng.Start()

	s := &mcpServer{
		world:  world,
		engine: eng,
		ring:   ring,
	}

	s.mcp = mcpserver.NewMCPServer(
		"inspector-gadget",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// shutdown stops the observation engine.
func (s *mcpServer) shutdown() {
	s.engine.Stop()
}

func (s *mcpServer) registerTools() {
	// snapshot
	s.mcp.AddTool(
		mcp.NewTool("snapshot",
			mcp.WithDescription("List every accessibility element with a non-empty semantic label across the active surfaces"),
		),
		s.handleSnapshot,
	)

	// set_text
	s.mcp.AddTool(
		mcp.NewTool("set_text",
			mcp.WithDescription("Set a label control's text through the intercepted set-text entry point (the imperative path; the change is reported synchronously)"),
			mcp.WithString("name", mcp.Description("Label control name from the scenario"), mcp.Required()),
			mcp.WithString("value", mcp.Description("Text to set"), mcp.Required()),
		),
		s.handleSetText,
	)

	// set_label
	s.mcp.AddTool(
		mcp.NewTool("set_label",
			mcp.WithDescription("Write an element's semantic label directly, the declarative path; the change is detected by the next poll"),
			mcp.WithString("name", mcp.Description("Element name from the scenario"), mcp.Required()),
			mcp.WithString("value", mcp.Description("Semantic label to set"), mcp.Required()),
		),
		s.handleSetLabel,
	)

	// remove_node
	s.mcp.AddTool(
		mcp.NewTool("remove_node",
			mcp.WithDescription("Detach a node and its subtree from the tree; registry entries for its elements are evicted"),
			mcp.WithString("name", mcp.Description("Node name from the scenario"), mcp.Required()),
		),
		s.handleRemoveNode,
	)

	// log_text
	s.mcp.AddTool(
		mcp.NewTool("log_text",
			mcp.WithDescription("Push a label through the side-channel manual report API, bypassing interceptor and poller"),
			mcp.WithString("text", mcp.Description("Text to report"), mcp.Required()),
		),
		s.handleLogText,
	)

	// changes
	s.mcp.AddTool(
		mcp.NewTool("changes",
			mcp.WithDescription("Drain the change records detected since the last call"),
		),
		s.handleChanges,
	)

	// overlay_badge
	s.mcp.AddTool(
		mcp.NewTool("overlay_badge",
			mcp.WithDescription("Render the side-channel overlay's held value as a PNG badge"),
		),
		s.handleOverlayBadge,
	)
}

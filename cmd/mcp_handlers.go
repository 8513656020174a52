package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/inspector-gadget/internal/platform"
	"gopkg.in/yaml.v3"
)

// toolResult is the YAML body returned by mutating tools.
type toolResult struct {
	OK     bool   `yaml:"ok"`
	Action string `yaml:"action"`
	Target string `yaml:"target,omitempty"`
	Value  string `yaml:"value,omitempty"`
}

func resultToText(result toolResult) string {
	b, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Sprintf("ok: %v\naction: %s", result.OK, result.Action)
	}
	return string(b)
}

func (s *mcpServer) handleSnapshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.appMu.Lock()
	snap := platform.SnapshotLabels(s.world.App)
	s.appMu.Unlock()

	b, err := yaml.Marshal(snap)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleSetText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name := stringParam(params, "name", "")
	value := stringParam(params, "value", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	s.appMu.Lock()
	defer s.appMu.Unlock()

	lbl, ok := s.world.Labels[name]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown label %q", name)), nil
	}
	lbl.SetText(value)

	return mcp.NewToolResultText(resultToText(toolResult{
		OK: true, Action: "set_text", Target: name, Value: value,
	})), nil
}

func (s *mcpServer) handleSetLabel(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name := stringParam(params, "name", "")
	value := stringParam(params, "value", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	s.appMu.Lock()
	defer s.appMu.Unlock()

	el, ok := s.world.Elements[name]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown element %q", name)), nil
	}
	el.SetLabel(value)

	return mcp.NewToolResultText(resultToText(toolResult{
		OK: true, Action: "set_label", Target: name, Value: value,
	})), nil
}

func (s *mcpServer) handleRemoveNode(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name := stringParam(params, "name", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	s.appMu.Lock()
	defer s.appMu.Unlock()

	node, ok := s.world.Nodes[name]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown node %q", name)), nil
	}
	node.Remove()

	return mcp.NewToolResultText(resultToText(toolResult{
		OK: true, Action: "remove_node", Target: name,
	})), nil
}

func (s *mcpServer) handleLogText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := stringParam(params, "text", "")

	s.engine.LogText(text)

	return mcp.NewToolResultText(resultToText(toolResult{
		OK: true, Action: "log_text", Value: text,
	})), nil
}

func (s *mcpServer) handleChanges(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recs := s.ring.Drain()
	if len(recs) == 0 {
		return mcp.NewToolResultText("changes: []\n"), nil
	}
	b, err := yaml.Marshal(map[string]interface{}{"changes": recs})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleOverlayBadge(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	img := s.engine.Overlay().RenderBadge()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode badge: %v", err)), nil
	}
	b64 := base64.StdEncoding.EncodeToString(buf.Bytes())

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     b64,
				MIMEType: "image/png",
			},
		},
	}, nil
}

// Parameter extraction helpers for tool argument maps

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Handle numeric values that clients may send as int/float
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

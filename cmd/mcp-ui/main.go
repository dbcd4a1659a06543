// Command mcp-ui runs the MCP tool server for UI generation.
// Uses stdio transport for integration with AI assistants.
package main

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/agent"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/mcpserver"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/observability"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/temporal/querier"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := observability.InitStderrLogger(cfg.LogLevel)
	ctx := context.Background()

	a, err := agent.FromConfig(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("agent: %v", err)
	}

	var q querier.WorkflowQuerier
	c, err := querier.Dial(cfg, logger)
	if err != nil {
		logger.Warn("temporal unavailable, generation_status disabled", "error", err)
	} else {
		defer c.Close()
		q = querier.New(c)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "next-gen-ui",
		Version: "v1.0.0",
	}, nil)
	mcpserver.RegisterTools(server, a, q)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}

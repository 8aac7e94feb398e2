// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/churnlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the churnlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, loader contract.PipelineLoader) *server.MCPServer {
	s := server.NewMCPServer(
		"Churnlens Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		loader:  loader,
	}

	// --- 1. Tool: score_customers ---
	s.AddTool(mcp.NewTool("score_customers",
		mcp.WithDescription("Score a customer CSV dataset against the fitted churn model and return ranked predictions with per-customer drivers."),
		mcp.WithString("data_path", mcp.Description("Path to the customer CSV file."), mcp.Required()),
		mcp.WithString("model_path", mcp.Description("Path to the model artifact JSON (defaults to the configured model).")),
		mcp.WithNumber("threshold", mcp.Description("Decision threshold in [0,1]. Defaults to the configured threshold.")),
		mcp.WithNumber("top_drivers", mcp.Description("Number of contribution drivers per customer.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of predictions returned.")),
	), h.handleScoreCustomers)

	// --- 2. Tool: get_global_importance ---
	s.AddTool(mcp.NewTool("get_global_importance",
		mcp.WithDescription("Return the model's global feature importance ranking (absolute weight magnitudes)."),
		mcp.WithString("model_path", mcp.Description("Path to the model artifact JSON (defaults to the configured model).")),
	), h.handleGetGlobalImportance)

	// --- 3. Tool: get_model_info ---
	s.AddTool(mcp.NewTool("get_model_info",
		mcp.WithDescription("Return metadata about the fitted pipeline artifact: version, training time, rules and feature counts."),
		mcp.WithString("model_path", mcp.Description("Path to the model artifact JSON (defaults to the configured model).")),
	), h.handleGetModelInfo)

	return s
}

// StartMCPServer starts the churnlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, loader contract.PipelineLoader) error {
	s := NewMCPServer(baseCfg, loader)
	return server.ServeStdio(s)
}

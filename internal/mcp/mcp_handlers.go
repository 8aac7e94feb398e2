package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/churnlens/core"
	"github.com/huangsam/churnlens/core/agg"
	"github.com/huangsam/churnlens/internal/contract"
	"github.com/huangsam/churnlens/internal/dataset"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	loader  contract.PipelineLoader
}

func (h *toolHandler) handleScoreCustomers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	dataPath := request.GetString("data_path", "")
	if dataPath == "" {
		return mcp.NewToolResultError("data_path is required"), nil
	}
	cfg.DataPath = dataPath
	if p := request.GetString("model_path", ""); p != "" {
		cfg.ModelPath = p
	}
	if v := request.GetFloat("threshold", -1); v >= 0 {
		cfg.Threshold = v
	}
	if k := request.GetInt("top_drivers", -1); k >= 0 {
		cfg.TopDrivers = k
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}

	pipe, err := h.loader.Load(cfg.ModelPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("model load failed: %v", err)), nil
	}

	ds, err := dataset.ReadFile(cfg.DataPath, cfg.IDColumn, cfg.TargetCol)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dataset read failed: %v", err)), nil
	}

	result, err := core.Run(ds.Rows, ds.IDs, pipe, cfg.Params())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGlobalImportance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("model_path", ""); p != "" {
		cfg.ModelPath = p
	}

	pipe, err := h.loader.Load(cfg.ModelPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("model load failed: %v", err)), nil
	}

	importance := agg.GlobalImportance(pipe.Weights, pipe.FeatureNames)
	jsonData, _ := json.MarshalIndent(importance, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetModelInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("model_path", ""); p != "" {
		cfg.ModelPath = p
	}

	pipe, err := h.loader.Load(cfg.ModelPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("model load failed: %v", err)), nil
	}

	info := map[string]any{
		"model_version": pipe.ModelVersion,
		"trained_at":    pipe.TrainedAt,
		"feature_count": pipe.FeatureCount(),
		"rule_count":    len(pipe.Rules),
		"features":      pipe.FeatureNames,
	}
	jsonData, _ := json.MarshalIndent(info, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/cultura/pkg/storage"
)

var (
	randomFactToolName    = "random_fact"
	randomFactDescription = "Return the newest unread fun fact and mark it as read. Reports found=false when every stored fact has already been shown."

	factStatsToolName    = "fact_stats"
	factStatsDescription = "Count stored fun facts: total, unread, read and per provider."
)

// RandomFactInput takes no arguments.
type RandomFactInput struct{}

// RandomFactOutput is the result of the random_fact tool.
type RandomFactOutput struct {
	Fact  string `json:"fact,omitempty"`
	Found bool   `json:"found"`
}

// FactStatsInput takes no arguments.
type FactStatsInput struct{}

func (s *Server) handleRandomFact(ctx context.Context, _ *mcp.CallToolRequest, _ RandomFactInput) (*mcp.CallToolResult, RandomFactOutput, error) {
	logger := s.config.Logger

	text, ok, err := s.config.Facts.GenerateRandom(ctx)
	if err != nil {
		logger.Error("failed to generate random fact", slog.Any("error", err))
		return errorResult("Failed to get a fact: %v", err), RandomFactOutput{}, nil
	}

	if !ok {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "No unread facts. Run an update to harvest more."},
			},
		}, RandomFactOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, RandomFactOutput{Fact: text, Found: true}, nil
}

func (s *Server) handleFactStats(ctx context.Context, _ *mcp.CallToolRequest, _ FactStatsInput) (*mcp.CallToolResult, storage.Stats, error) {
	stats, err := s.config.Facts.Stats(ctx)
	if err != nil {
		s.config.Logger.Error("failed to get fact stats", slog.Any("error", err))
		return errorResult("Failed to get stats: %v", err), storage.Stats{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%d facts, %d unread, %d read", stats.Total, stats.Unread, stats.Read)},
		},
	}, *stats, nil
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// Package mcpserver exposes the journal operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"daylog/internal/apperr"
	"daylog/internal/journal"
	"daylog/internal/service"
)

// Server wraps the MCP server with the journal tools.
type Server struct {
	mcp     *server.MCPServer
	journal service.JournalService
}

// New creates a new MCP server with all journal tools registered.
func New(j service.JournalService, version string) *Server {
	s := &Server{journal: j}

	s.mcp = server.NewMCPServer(
		"daylog",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("sync_metrics",
		mcp.WithDescription("Sync biometric data (steps, sleep, weight, resting heart rate) for the last N days."),
		mcp.WithNumber("days", mcp.Description("Window size in days (defaults to the configured window)")),
	), s.syncMetrics)

	s.mcp.AddTool(mcp.NewTool("ingest_note",
		mcp.WithDescription("Read a daily note from the vault and store it."),
		mcp.WithString("day", mcp.Description("Day to ingest as YYYY-MM-DD (defaults to today)")),
	), s.ingestNote)

	s.mcp.AddTool(mcp.NewTool("categorize_note",
		mcp.WithDescription("Categorize today's note into workout, reading, insight, work, food and health entries."),
	), s.categorizeNote)

	s.mcp.AddTool(mcp.NewTool("get_timeline",
		mcp.WithDescription("List categorized entries grouped by week and day, most recent first."),
		mcp.WithString("category", mcp.Description("Optional category code to filter by")),
	), s.getTimeline)

	s.mcp.AddTool(mcp.NewTool("get_day",
		mcp.WithDescription("Return the metrics, note and entries recorded for one day."),
		mcp.WithString("day", mcp.Required(), mcp.Description("Day as YYYY-MM-DD")),
	), s.getDay)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) syncMetrics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.journal.SyncMetrics(ctx, req.GetInt("days", 0))
	if err != nil {
		return mcp.NewToolResultError(apperr.Message(err)), nil
	}
	return jsonResult(report)
}

func (s *Server) ingestNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("day", "")
	if raw == "" {
		note, err := s.journal.IngestToday(ctx)
		if err != nil {
			return mcp.NewToolResultError(apperr.Message(err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("ingested %s (%d characters)", note.Filename, len(note.RawText))), nil
	}

	day, err := journal.ParseDateKey(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.journal.IngestDay(ctx, day)
	if err != nil {
		return mcp.NewToolResultError(apperr.Message(err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("ingested %s (%d characters)", note.Filename, len(note.RawText))), nil
}

func (s *Server) categorizeNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.journal.CategorizeLastNote(ctx)
	if err != nil {
		return mcp.NewToolResultError(apperr.Message(err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Parsed %d categories.", result.Parsed)), nil
}

func (s *Server) getTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var filter *journal.Category
	if raw := req.GetString("category", ""); raw != "" {
		category, err := journal.ParseCategory(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filter = &category
	}

	weeks, err := s.journal.Timeline(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(apperr.Message(err)), nil
	}
	if len(weeks) == 0 {
		return mcp.NewToolResultText("no entries found"), nil
	}
	return jsonResult(weeks)
}

func (s *Server) getDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	day, err := journal.ParseDateKey(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.journal.DayDetail(ctx, day)
	if err != nil {
		return mcp.NewToolResultError(apperr.Message(err)), nil
	}
	return jsonResult(detail)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

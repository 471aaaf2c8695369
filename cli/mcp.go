// ABOUTME: MCP server subcommand
// ABOUTME: Exposes sync and study-tracking tools to assistant clients
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/studyguru/studyguru/handlers"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(db *sql.DB) error {
	log.Println("Starting studyguru MCP Server...")

	sessionHandlers := handlers.NewSessionHandlers(db)
	problemHandlers := handlers.NewProblemHandlers(db)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "studyguru",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_calendar",
		Description: "Synchronize study sessions with Google Calendar and report statistics",
	}, sessionHandlers.SyncCalendar)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List the user's study sessions",
	}, sessionHandlers.ListSessions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_solved_problem",
		Description: "Record a solved LeetCode problem against a study session",
	}, problemHandlers.LogSolvedProblem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "weekly_stats",
		Description: "Weekly solved-problem count, streak, and highlight",
	}, problemHandlers.WeeklyStats)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

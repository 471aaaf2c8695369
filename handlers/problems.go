// ABOUTME: Problem-tracking MCP tool handlers
// ABOUTME: Implements log_solved_problem and weekly_stats tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/studyguru/studyguru/db"
	"github.com/studyguru/studyguru/models"
	"github.com/studyguru/studyguru/reports"
)

type ProblemHandlers struct {
	db *sql.DB
}

func NewProblemHandlers(database *sql.DB) *ProblemHandlers {
	return &ProblemHandlers{db: database}
}

type LogSolvedProblemInput struct {
	SessionID  string `json:"session_id" jsonschema:"Session the problem was solved in (required)"`
	LeetcodeID string `json:"leetcode_id" jsonschema:"LeetCode problem id (required)"`
	Title      string `json:"title,omitempty" jsonschema:"Problem title"`
	Difficulty string `json:"difficulty,omitempty" jsonschema:"easy, medium, or hard"`
	URL        string `json:"url,omitempty" jsonschema:"Problem URL"`
}

type LogSolvedProblemOutput struct {
	ProblemID string `json:"problem_id"`
	SolvedAt  string `json:"solved_at"`
}

func (h *ProblemHandlers) LogSolvedProblem(_ context.Context, request *mcp.CallToolRequest, input LogSolvedProblemInput) (*mcp.CallToolResult, LogSolvedProblemOutput, error) {
	if input.SessionID == "" || input.LeetcodeID == "" {
		return nil, LogSolvedProblemOutput{}, fmt.Errorf("session_id and leetcode_id are required")
	}

	sessionID, err := uuid.Parse(input.SessionID)
	if err != nil {
		return nil, LogSolvedProblemOutput{}, fmt.Errorf("invalid session_id: %w", err)
	}

	session, err := db.GetSession(h.db, sessionID)
	if err != nil {
		return nil, LogSolvedProblemOutput{}, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, LogSolvedProblemOutput{}, fmt.Errorf("session %s not found", input.SessionID)
	}

	problem, err := db.GetProblemByLeetcodeID(h.db, input.LeetcodeID)
	if err != nil {
		return nil, LogSolvedProblemOutput{}, fmt.Errorf("failed to look up problem: %w", err)
	}
	if problem == nil {
		problem = &models.Problem{
			LeetcodeID: input.LeetcodeID,
			Title:      input.Title,
			Difficulty: input.Difficulty,
			URL:        input.URL,
		}
		if err := db.CreateProblem(h.db, problem); err != nil {
			return nil, LogSolvedProblemOutput{}, fmt.Errorf("failed to create problem: %w", err)
		}
	}

	solvedAt := time.Now()
	if err := db.LogSolvedProblem(h.db, session.ID, problem.ID, solvedAt); err != nil {
		return nil, LogSolvedProblemOutput{}, fmt.Errorf("failed to log solved problem: %w", err)
	}

	return nil, LogSolvedProblemOutput{
		ProblemID: problem.ID.String(),
		SolvedAt:  solvedAt.Format(time.RFC3339),
	}, nil
}

type WeeklyStatsInput struct {
	WeekStart string `json:"week_start,omitempty" jsonschema:"Week start date YYYY-MM-DD (defaults to this week's Sunday)"`
}

type WeeklyStatsOutput struct {
	WeekStart          string `json:"week_start"`
	WeeklySolvedCount  int    `json:"weekly_solved_count"`
	CurrentStreakDays  int    `json:"current_streak_days"`
	TotalSolvedAllTime int    `json:"total_solved_all_time"`
	Highlight          string `json:"highlight,omitempty"`
}

func (h *ProblemHandlers) WeeklyStats(_ context.Context, request *mcp.CallToolRequest, input WeeklyStatsInput) (*mcp.CallToolResult, WeeklyStatsOutput, error) {
	user, err := db.GetOrCreateDefaultUser(h.db)
	if err != nil {
		return nil, WeeklyStatsOutput{}, fmt.Errorf("failed to load user: %w", err)
	}

	weekStart := startOfWeek(time.Now())
	if input.WeekStart != "" {
		weekStart, err = time.Parse("2006-01-02", input.WeekStart)
		if err != nil {
			return nil, WeeklyStatsOutput{}, fmt.Errorf("invalid week_start, expected YYYY-MM-DD: %w", err)
		}
	}

	stats, err := reports.Weekly(h.db, user, weekStart)
	if err != nil {
		return nil, WeeklyStatsOutput{}, fmt.Errorf("failed to build report: %w", err)
	}

	return nil, WeeklyStatsOutput{
		WeekStart:          stats.WeekStart.Format("2006-01-02"),
		WeeklySolvedCount:  stats.WeeklySolvedCount,
		CurrentStreakDays:  stats.CurrentStreakDays,
		TotalSolvedAllTime: stats.TotalSolvedAllTime,
		Highlight:          stats.Highlight,
	}, nil
}

func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

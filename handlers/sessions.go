// ABOUTME: Session MCP tool handlers
// ABOUTME: Implements list_sessions and sync_calendar tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/studyguru/studyguru/calsync"
	"github.com/studyguru/studyguru/db"
	"github.com/studyguru/studyguru/models"
)

type SessionHandlers struct {
	db *sql.DB
}

func NewSessionHandlers(database *sql.DB) *SessionHandlers {
	return &SessionHandlers{db: database}
}

type ListSessionsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of sessions (default 20)"`
}

type SessionOutput struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	ScheduledAt     string `json:"scheduled_at"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	CalendarLinked  bool   `json:"calendar_linked"`
}

type ListSessionsOutput struct {
	Sessions []SessionOutput `json:"sessions"`
}

func (h *SessionHandlers) ListSessions(_ context.Context, request *mcp.CallToolRequest, input ListSessionsInput) (*mcp.CallToolResult, ListSessionsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 20
	}

	user, err := db.GetOrCreateDefaultUser(h.db)
	if err != nil {
		return nil, ListSessionsOutput{}, fmt.Errorf("failed to load user: %w", err)
	}

	sessions, err := db.ListSessions(h.db, user.ID, limit)
	if err != nil {
		return nil, ListSessionsOutput{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	output := ListSessionsOutput{Sessions: make([]SessionOutput, 0, len(sessions))}
	for _, session := range sessions {
		output.Sessions = append(output.Sessions, sessionToOutput(&session))
	}

	return nil, output, nil
}

type SyncCalendarInput struct {
	Days int `json:"days,omitempty" jsonschema:"Days before and after today to fetch (default 30)"`
}

type SyncCalendarOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Synced  int    `json:"synced"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Deleted int    `json:"deleted"`
	Summary string `json:"summary"`
}

func (h *SessionHandlers) SyncCalendar(ctx context.Context, request *mcp.CallToolRequest, input SyncCalendarInput) (*mcp.CallToolResult, SyncCalendarOutput, error) {
	user, err := db.GetOrCreateDefaultUser(h.db)
	if err != nil {
		return nil, SyncCalendarOutput{}, fmt.Errorf("failed to load user: %w", err)
	}

	config, err := calsync.RequireOAuthConfig()
	if err != nil {
		return nil, SyncCalendarOutput{}, err
	}

	syncer := calsync.NewSyncer(h.db, config)
	if input.Days > 0 {
		syncer.WindowDays = input.Days
	}

	cred, err := calsync.LoadCredential()
	if err != nil {
		cred = &calsync.Credential{}
	}

	result := syncer.SyncForUser(ctx, user.ID, cred)
	if result.Success {
		_ = calsync.SaveCredential(cred)
	}

	output := SyncCalendarOutput{
		Success: result.Success,
		Synced:  result.Synced,
		Updated: result.Updated,
		Skipped: result.Skipped,
		Deleted: result.Deleted,
		Summary: result.Summary(),
	}
	if result.Error != nil {
		output.Error = *result.Error
	}

	return nil, output, nil
}

func sessionToOutput(session *models.Session) SessionOutput {
	return SessionOutput{
		ID:              session.ID.String(),
		Title:           session.Title,
		Description:     session.Description,
		ScheduledAt:     session.ScheduledAt.Format("2006-01-02T15:04:05Z07:00"),
		DurationMinutes: session.DurationMinutes,
		Status:          session.Status,
		CalendarLinked:  session.GoogleEventID != nil,
	}
}

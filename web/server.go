// ABOUTME: JSON API server for sync, sessions, and stats
// ABOUTME: Exposes the reconciliation engine over HTTP with fiber
package web

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/studyguru/studyguru/calsync"
	"github.com/studyguru/studyguru/db"
	"github.com/studyguru/studyguru/reports"
)

type Server struct {
	db     *sql.DB
	syncer *calsync.Syncer
	app    *fiber.App
}

func NewServer(database *sql.DB) (*Server, error) {
	config, err := calsync.RequireOAuthConfig()
	if err != nil {
		return nil, err
	}

	s := &Server{
		db:     database,
		syncer: calsync.NewSyncer(database, config),
	}

	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")
	api.Post("/calendar/sync", s.handleSync)
	api.Get("/sessions", s.handleSessions)
	api.Get("/stats/weekly", s.handleWeeklyStats)
	api.Get("/sync/status", s.handleSyncStatus)

	s.app = app
	return s, nil
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting API server at http://localhost%s", addr)
	return s.app.Listen(addr)
}

// handleSync runs one reconciliation for the local user. The response body
// is always the SyncResult JSON; the status code reflects the failure class.
func (s *Server) handleSync(c fiber.Ctx) error {
	user, err := db.GetOrCreateDefaultUser(s.db)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]string{"error": err.Error()})
	}

	cred, err := calsync.LoadCredential()
	if err != nil {
		// No stored token behaves like an empty credential: the engine
		// reports "Not authenticated" without touching the network.
		cred = &calsync.Credential{}
	}

	result := s.syncer.SyncForUser(c.Context(), user.ID, cred)
	if result.Success {
		// A refresh may have rotated the tokens mid-run.
		if err := calsync.SaveCredential(cred); err != nil {
			log.Printf("Failed to persist refreshed credential: %v", err)
		}
		return c.Status(http.StatusOK).JSON(result)
	}

	return c.Status(syncFailureStatus(result)).JSON(result)
}

func syncFailureStatus(result calsync.SyncResult) int {
	if result.Error == nil {
		return http.StatusInternalServerError
	}
	switch *result.Error {
	case "Not authenticated", "Authentication expired":
		return http.StatusUnauthorized
	case "Failed to fetch calendar events":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleSessions(c fiber.Ctx) error {
	user, err := db.GetOrCreateDefaultUser(s.db)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]string{"error": err.Error()})
	}

	sessions, err := db.ListSessions(s.db, user.ID, fiber.Query(c, "limit", 50))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]string{"error": err.Error()})
	}

	return c.JSON(map[string]any{"sessions": sessions})
}

func (s *Server) handleWeeklyStats(c fiber.Ctx) error {
	user, err := db.GetOrCreateDefaultUser(s.db)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]string{"error": err.Error()})
	}

	weekStart := startOfWeek(time.Now())
	if raw := fiber.Query[string](c, "week_start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]string{"error": "invalid week_start, expected YYYY-MM-DD"})
		}
		weekStart = parsed
	}

	stats, err := reports.Weekly(s.db, user, weekStart)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]string{"error": err.Error()})
	}

	return c.JSON(stats)
}

func (s *Server) handleSyncStatus(c fiber.Ctx) error {
	state, err := db.GetSyncState(s.db, calsync.CalendarService)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]string{"error": err.Error()})
	}
	if state == nil {
		return c.Status(http.StatusNotFound).JSON(map[string]string{"error": errNoSyncState.Error()})
	}

	return c.JSON(state)
}

var errNoSyncState = errors.New("no sync has run yet")

// startOfWeek truncates to the preceding Sunday at midnight UTC.
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

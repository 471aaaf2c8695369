// ABOUTME: Tests for the weekly study report
// ABOUTME: Verifies solve counts, daily streak computation, and highlights
package reports

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studyguru/studyguru/db"
	"github.com/studyguru/studyguru/models"
)

var weekStart = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC) // a Sunday

func setupReportDB(t *testing.T) (*sql.DB, *models.StudyUser) {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	user := &models.StudyUser{Name: "Reporter"}
	if err := db.CreateUser(database, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return database, user
}

// solveAt records one solved problem for the user at the given time.
func solveAt(t *testing.T, database *sql.DB, user *models.StudyUser, leetcodeID, title, difficulty string, at time.Time) {
	t.Helper()

	session := &models.Session{
		UserID:          user.ID,
		Title:           "Practice",
		ScheduledAt:     at,
		DurationMinutes: 30,
		Status:          models.SessionCompleted,
	}
	if err := db.CreateSession(database, session); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	problem := &models.Problem{LeetcodeID: leetcodeID, Title: title, Difficulty: difficulty}
	if err := db.CreateProblem(database, problem); err != nil {
		t.Fatalf("CreateProblem: %v", err)
	}

	if err := db.LogSolvedProblem(database, session.ID, problem.ID, at); err != nil {
		t.Fatalf("LogSolvedProblem: %v", err)
	}
}

func TestWeeklyEmptyWeek(t *testing.T) {
	database, user := setupReportDB(t)

	stats, err := Weekly(database, user, weekStart)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}

	if stats.WeeklySolvedCount != 0 {
		t.Errorf("solved = %d", stats.WeeklySolvedCount)
	}
	if stats.CurrentStreakDays != 0 {
		t.Errorf("streak = %d", stats.CurrentStreakDays)
	}
	if stats.Highlight != "" {
		t.Errorf("highlight = %q", stats.Highlight)
	}
}

func TestWeeklyCountsAndStreak(t *testing.T) {
	database, user := setupReportDB(t)

	// Solves on days 0, 1, 2 then a gap then day 4.
	solveAt(t, database, user, "1", "Two Sum", "Easy", weekStart.Add(10*time.Hour))
	solveAt(t, database, user, "2", "Add Two Numbers", "Medium", weekStart.Add(34*time.Hour))
	solveAt(t, database, user, "3", "LRU Cache", "Medium", weekStart.Add(58*time.Hour))
	solveAt(t, database, user, "4", "Word Ladder", "Hard", weekStart.Add(106*time.Hour))

	// Outside the week in both directions.
	solveAt(t, database, user, "5", "Old Problem", "Easy", weekStart.Add(-24*time.Hour))
	solveAt(t, database, user, "6", "Next Week", "Easy", weekStart.AddDate(0, 0, 8))

	stats, err := Weekly(database, user, weekStart)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}

	if stats.WeeklySolvedCount != 4 {
		t.Errorf("solved = %d, want 4", stats.WeeklySolvedCount)
	}
	if stats.CurrentStreakDays != 3 {
		t.Errorf("streak = %d, want 3", stats.CurrentStreakDays)
	}
	if stats.TotalSolvedAllTime != 6 {
		t.Errorf("total = %d, want 6", stats.TotalSolvedAllTime)
	}
}

func TestWeeklyHighlight(t *testing.T) {
	database, user := setupReportDB(t)
	user.LongestStreak = 9
	if err := db.UpdateUserStreaks(database, user.ID, 2, 9); err != nil {
		t.Fatalf("UpdateUserStreaks: %v", err)
	}

	solveAt(t, database, user, "1", "Two Sum", "Easy", weekStart.Add(10*time.Hour))
	solveAt(t, database, user, "2", "Word Ladder", "Hard", weekStart.Add(34*time.Hour))

	stats, err := Weekly(database, user, weekStart)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}

	if !strings.Contains(stats.Highlight, "Word Ladder (hard)") {
		t.Errorf("highlight = %q", stats.Highlight)
	}
	if !strings.Contains(stats.Highlight, "Longest streak: 9 days") {
		t.Errorf("highlight = %q", stats.Highlight)
	}
}

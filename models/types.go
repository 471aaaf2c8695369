// ABOUTME: Data models for study planner entities
// ABOUTME: Defines StudyUser, Session, Problem, and SessionProblem structs
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type StudyUser struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email,omitempty"`
	Name             string    `json:"name,omitempty"`
	LeetcodeUsername string    `json:"leetcode_username,omitempty"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Session is a planned or completed study session. GoogleEventID links it to
// a remote calendar event; sessions without one are local-only and are never
// touched by calendar reconciliation.
type Session struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	GoogleEventID   *string   `json:"google_event_id,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Problem struct {
	ID         uuid.UUID `json:"id"`
	LeetcodeID string    `json:"leetcode_id"`
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty,omitempty"`
	URL        string    `json:"url,omitempty"`
	Tags       string    `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SessionProblem links a problem to the session it was attempted in.
type SessionProblem struct {
	ID        uuid.UUID  `json:"id"`
	SessionID uuid.UUID  `json:"session_id"`
	ProblemID uuid.UUID  `json:"problem_id"`
	Solved    bool       `json:"solved"`
	SolvedAt  *time.Time `json:"solved_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Session status constants.
const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
)

// Problem difficulty constants.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// DifficultyRank orders difficulties for "hardest problem" reporting.
// Unknown difficulties rank below easy.
func DifficultyRank(difficulty string) int {
	switch strings.ToLower(difficulty) {
	case DifficultyHard:
		return 3
	case DifficultyMedium:
		return 2
	case DifficultyEasy:
		return 1
	default:
		return 0
	}
}

// ABOUTME: Problem and session-problem database operations
// ABOUTME: Handles solved-problem tracking queries used by weekly reports
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/studyguru/studyguru/models"
)

func CreateProblem(db *sql.DB, problem *models.Problem) error {
	if problem.ID == uuid.Nil {
		problem.ID = uuid.New()
	}
	now := time.Now()
	problem.CreatedAt = now
	problem.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO problems (id, leetcode_id, title, difficulty, url, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, problem.ID.String(), problem.LeetcodeID, problem.Title, problem.Difficulty, problem.URL, problem.Tags,
		problem.CreatedAt, problem.UpdatedAt)

	return err
}

func GetProblemByLeetcodeID(db *sql.DB, leetcodeID string) (*models.Problem, error) {
	problem := &models.Problem{}
	var idStr string

	err := db.QueryRow(`
		SELECT id, leetcode_id, title, difficulty, url, tags, created_at, updated_at
		FROM problems WHERE leetcode_id = ?
	`, leetcodeID).Scan(
		&idStr,
		&problem.LeetcodeID,
		&problem.Title,
		&problem.Difficulty,
		&problem.URL,
		&problem.Tags,
		&problem.CreatedAt,
		&problem.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	problem.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return problem, nil
}

func LogSolvedProblem(db *sql.DB, sessionID, problemID uuid.UUID, solvedAt time.Time) error {
	_, err := db.Exec(`
		INSERT INTO session_problems (id, session_id, problem_id, solved, solved_at, created_at)
		VALUES (?, ?, ?, 1, ?, ?)
	`, uuid.New().String(), sessionID.String(), problemID.String(), solvedAt, time.Now())
	return err
}

// SolvedProblem is a solved session-problem joined with its problem metadata.
type SolvedProblem struct {
	Problem  models.Problem
	SolvedAt time.Time
}

// ListSolvedProblems returns a user's solved problems within [from, to),
// ordered by solve time. A zero `to` means no upper bound.
func ListSolvedProblems(db *sql.DB, userID uuid.UUID, from, to time.Time) ([]SolvedProblem, error) {
	query := `
		SELECT p.id, p.leetcode_id, p.title, p.difficulty, p.url, p.tags, p.created_at, p.updated_at, sp.solved_at
		FROM session_problems sp
		JOIN problems p ON p.id = sp.problem_id
		JOIN sessions s ON s.id = sp.session_id
		WHERE s.user_id = ? AND sp.solved = 1 AND sp.solved_at IS NOT NULL AND sp.solved_at >= ?
	`
	args := []any{userID.String(), from}
	if !to.IsZero() {
		query += ` AND sp.solved_at < ?`
		args = append(args, to)
	}
	query += ` ORDER BY sp.solved_at`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var solved []SolvedProblem
	for rows.Next() {
		var sp SolvedProblem
		var idStr string
		err := rows.Scan(
			&idStr,
			&sp.Problem.LeetcodeID,
			&sp.Problem.Title,
			&sp.Problem.Difficulty,
			&sp.Problem.URL,
			&sp.Problem.Tags,
			&sp.Problem.CreatedAt,
			&sp.Problem.UpdatedAt,
			&sp.SolvedAt,
		)
		if err != nil {
			return nil, err
		}
		sp.Problem.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		solved = append(solved, sp)
	}

	return solved, rows.Err()
}

// CountSolvedProblems returns the all-time solved count for a user.
func CountSolvedProblems(db *sql.DB, userID uuid.UUID) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM session_problems sp
		JOIN sessions s ON s.id = sp.session_id
		WHERE s.user_id = ? AND sp.solved = 1
	`, userID.String()).Scan(&count)
	return count, err
}

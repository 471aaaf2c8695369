// ABOUTME: User database operations
// ABOUTME: Handles default-user bootstrap and streak tracking updates
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/studyguru/studyguru/models"
)

func CreateUser(db *sql.DB, user *models.StudyUser) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO users (id, email, name, leetcode_username, current_streak, longest_streak, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID.String(), user.Email, user.Name, user.LeetcodeUsername, user.CurrentStreak, user.LongestStreak,
		user.CreatedAt, user.UpdatedAt)

	return err
}

func GetUser(db *sql.DB, id uuid.UUID) (*models.StudyUser, error) {
	user := &models.StudyUser{}
	var idStr string

	err := db.QueryRow(`
		SELECT id, email, name, leetcode_username, current_streak, longest_streak, created_at, updated_at
		FROM users WHERE id = ?
	`, id.String()).Scan(
		&idStr,
		&user.Email,
		&user.Name,
		&user.LeetcodeUsername,
		&user.CurrentStreak,
		&user.LongestStreak,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetOrCreateDefaultUser returns the single local user, creating it on first
// run. The CLI and web surfaces operate on this user.
func GetOrCreateDefaultUser(db *sql.DB) (*models.StudyUser, error) {
	user := &models.StudyUser{}
	var idStr string

	err := db.QueryRow(`
		SELECT id, email, name, leetcode_username, current_streak, longest_streak, created_at, updated_at
		FROM users ORDER BY created_at LIMIT 1
	`).Scan(
		&idStr,
		&user.Email,
		&user.Name,
		&user.LeetcodeUsername,
		&user.CurrentStreak,
		&user.LongestStreak,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		user = &models.StudyUser{}
		if err := CreateUser(db, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	user.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func UpdateUserStreaks(db *sql.DB, id uuid.UUID, current, longest int) error {
	_, err := db.Exec(`
		UPDATE users SET current_streak = ?, longest_streak = ?, updated_at = ?
		WHERE id = ?
	`, current, longest, time.Now(), id.String())
	return err
}

func SetLeetcodeUsername(db *sql.DB, id uuid.UUID, username string) error {
	_, err := db.Exec(`
		UPDATE users SET leetcode_username = ?, updated_at = ?
		WHERE id = ?
	`, username, time.Now(), id.String())
	return err
}

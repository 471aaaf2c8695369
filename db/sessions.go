// ABOUTME: Session database operations
// ABOUTME: Handles CRUD operations and calendar-linked session lookups
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/studyguru/studyguru/models"
)

func CreateSession(db *sql.DB, session *models.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO sessions (id, user_id, google_event_id, title, description, scheduled_at, duration_minutes, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, session.ID.String(), session.UserID.String(), session.GoogleEventID, session.Title, session.Description,
		session.ScheduledAt, session.DurationMinutes, session.Status, session.CreatedAt, session.UpdatedAt)

	return err
}

func UpdateSession(db *sql.DB, session *models.Session) error {
	session.UpdatedAt = time.Now()

	_, err := db.Exec(`
		UPDATE sessions
		SET title = ?, description = ?, scheduled_at = ?, duration_minutes = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, session.Title, session.Description, session.ScheduledAt, session.DurationMinutes, session.Status,
		session.UpdatedAt, session.ID.String())

	return err
}

func DeleteSession(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE id = ?`, id.String())
	return err
}

// GetSessionByEventID looks up a user's session by its linked calendar event id.
// Returns nil, nil when no session is linked to that event.
func GetSessionByEventID(db *sql.DB, userID uuid.UUID, eventID string) (*models.Session, error) {
	row := db.QueryRow(`
		SELECT id, user_id, google_event_id, title, description, scheduled_at, duration_minutes, status, created_at, updated_at
		FROM sessions
		WHERE user_id = ? AND google_event_id = ?
	`, userID.String(), eventID)

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ListLinkedSessions returns all of a user's sessions that carry a calendar
// event id, ordered by scheduled time. Used by the reconciler's deletion pass.
func ListLinkedSessions(db *sql.DB, userID uuid.UUID) ([]models.Session, error) {
	rows, err := db.Query(`
		SELECT id, user_id, google_event_id, title, description, scheduled_at, duration_minutes, status, created_at, updated_at
		FROM sessions
		WHERE user_id = ? AND google_event_id IS NOT NULL
		ORDER BY scheduled_at
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSessions(rows)
}

func ListSessions(db *sql.DB, userID uuid.UUID, limit int) ([]models.Session, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, user_id, google_event_id, title, description, scheduled_at, duration_minutes, status, created_at, updated_at
		FROM sessions
		WHERE user_id = ?
		ORDER BY scheduled_at DESC
		LIMIT ?
	`, userID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSessions(rows)
}

func GetSession(db *sql.DB, id uuid.UUID) (*models.Session, error) {
	row := db.QueryRow(`
		SELECT id, user_id, google_event_id, title, description, scheduled_at, duration_minutes, status, created_at, updated_at
		FROM sessions
		WHERE id = ?
	`, id.String())

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	session := &models.Session{}
	var id, userID string
	var eventID, description sql.NullString

	err := row.Scan(
		&id,
		&userID,
		&eventID,
		&session.Title,
		&description,
		&session.ScheduledAt,
		&session.DurationMinutes,
		&session.Status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	session.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	if eventID.Valid {
		session.GoogleEventID = &eventID.String
	}
	if description.Valid {
		session.Description = description.String
	}

	return session, nil
}

func collectSessions(rows *sql.Rows) ([]models.Session, error) {
	var sessions []models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// ABOUTME: SQLite-backed SessionStore implementation
// ABOUTME: Adapts the db package repositories to the reconciler interface
package calsync

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/studyguru/studyguru/db"
	"github.com/studyguru/studyguru/models"
)

type sqlStore struct {
	db *sql.DB
}

var _ SessionStore = (*sqlStore)(nil)

// NewStore wraps a database handle as a SessionStore.
func NewStore(database *sql.DB) SessionStore {
	return &sqlStore{db: database}
}

func (s *sqlStore) GetByEventID(userID uuid.UUID, eventID string) (*models.Session, error) {
	return db.GetSessionByEventID(s.db, userID, eventID)
}

func (s *sqlStore) ListLinked(userID uuid.UUID) ([]models.Session, error) {
	return db.ListLinkedSessions(s.db, userID)
}

func (s *sqlStore) Create(session *models.Session) error {
	return db.CreateSession(s.db, session)
}

func (s *sqlStore) Update(session *models.Session) error {
	return db.UpdateSession(s.db, session)
}

func (s *sqlStore) Delete(id uuid.UUID) error {
	return db.DeleteSession(s.db, id)
}

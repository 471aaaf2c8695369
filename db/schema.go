// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT,
	name TEXT,
	leetcode_username TEXT,
	current_streak INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email) WHERE email IS NOT NULL AND email != '';

CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	google_event_id TEXT,
	title TEXT NOT NULL,
	description TEXT,
	scheduled_at DATETIME NOT NULL,
	duration_minutes INTEGER NOT NULL CHECK(duration_minutes >= 1),
	status TEXT NOT NULL CHECK(status IN ('scheduled', 'completed')),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_user_event ON sessions(user_id, google_event_id) WHERE google_event_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS problems (
	id TEXT PRIMARY KEY,
	leetcode_id TEXT NOT NULL,
	title TEXT,
	difficulty TEXT,
	url TEXT,
	tags TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_problems_leetcode_id ON problems(leetcode_id);

CREATE TABLE IF NOT EXISTS session_problems (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	problem_id TEXT NOT NULL,
	solved INTEGER NOT NULL DEFAULT 0,
	solved_at DATETIME,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
	FOREIGN KEY (problem_id) REFERENCES problems(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_session_problems_session ON session_problems(session_id);
CREATE INDEX IF NOT EXISTS idx_session_problems_problem ON session_problems(problem_id);
CREATE INDEX IF NOT EXISTS idx_session_problems_solved_at ON session_problems(solved_at);

CREATE TABLE IF NOT EXISTS sync_state (
	service TEXT PRIMARY KEY,
	last_sync_time DATETIME,
	status TEXT CHECK(status IN ('idle', 'syncing', 'error')),
	error_message TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sync_log (
	id TEXT PRIMARY KEY,
	service TEXT NOT NULL,
	user_id TEXT NOT NULL,
	synced INTEGER NOT NULL DEFAULT 0,
	updated INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0,
	deleted INTEGER NOT NULL DEFAULT 0,
	ran_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sync_log_service ON sync_log(service, ran_at DESC);
`

// InitSchema creates all tables if they don't exist
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// ABOUTME: Session listing CLI command
// ABOUTME: Prints the local user's study sessions and sync status
package cli

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/studyguru/studyguru/calsync"
	"github.com/studyguru/studyguru/db"
)

// SessionsCommand lists the local user's study sessions.
func SessionsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("sessions", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Maximum number of sessions to show")
	_ = fs.Parse(args)

	user, err := db.GetOrCreateDefaultUser(database)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	sessions, err := db.ListSessions(database, user.ID, *limit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions yet. Run 'studyguru sync' to import your calendar.")
		return nil
	}

	for _, session := range sessions {
		linked := " "
		if session.GoogleEventID != nil {
			linked = "●"
		}
		fmt.Printf("%s %-10s %s  %3dm  %s\n",
			linked,
			session.Status,
			session.ScheduledAt.Format("2006-01-02 15:04"),
			session.DurationMinutes,
			session.Title,
		)
	}

	state, err := db.GetSyncState(database, calsync.CalendarService)
	if err == nil && state != nil && state.LastSyncTime != nil {
		fmt.Printf("\nLast synced: %s\n", state.LastSyncTime.Format("2006-01-02 15:04"))
	}

	return nil
}

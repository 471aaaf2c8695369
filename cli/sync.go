// ABOUTME: Calendar sync CLI command
// ABOUTME: Loads stored tokens and runs one reconciliation for the local user
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"

	"github.com/studyguru/studyguru/calsync"
	"github.com/studyguru/studyguru/db"
)

// SyncCommand runs a calendar sync for the local user.
func SyncCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	days := fs.Int("days", 30, "Days before and after today to fetch")
	icalURL := fs.String("ical", "", "Sync from an ICS feed URL instead of Google Calendar")
	_ = fs.Parse(args)

	user, err := db.GetOrCreateDefaultUser(database)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	var syncer *calsync.Syncer
	var cred *calsync.Credential

	if *icalURL != "" {
		syncer = icalSyncer(database, *icalURL)
		// Feeds are unauthenticated; hand the guard a token it accepts.
		cred = feedCredential()
	} else {
		config, err := calsync.RequireOAuthConfig()
		if err != nil {
			return err
		}
		syncer = calsync.NewSyncer(database, config)
		cred, err = calsync.LoadCredential()
		if err != nil {
			cred = &calsync.Credential{}
		}
	}
	syncer.WindowDays = *days

	fmt.Println("Syncing calendar...")

	result := syncer.SyncForUser(context.Background(), user.ID, cred)
	if !result.Success {
		return fmt.Errorf("%s", calsync.SyncSummary(result))
	}

	if *icalURL == "" {
		if err := calsync.SaveCredential(cred); err != nil {
			return fmt.Errorf("failed to persist refreshed credential: %w", err)
		}
	}

	fmt.Printf("✓ %s\n", result.Summary())
	if result.Skipped > 0 {
		fmt.Printf("  (%d unchanged or skipped)\n", result.Skipped)
	}

	return nil
}

func icalSyncer(database *sql.DB, feedURL string) *calsync.Syncer {
	factory := func(ctx context.Context, cred *calsync.Credential) (calsync.EventSource, error) {
		return calsync.NewICalSource(feedURL), nil
	}
	guard := calsync.NewTokenGuard(noopRefresher{}, nil)
	return calsync.NewSyncerWith(database, calsync.NewStore(database), guard, factory, nil)
}

type noopRefresher struct{}

func (noopRefresher) Refresh(ctx context.Context, cred *calsync.Credential) (calsync.RefreshedTokens, error) {
	return calsync.RefreshedTokens{AccessToken: cred.AccessToken}, nil
}

func feedCredential() *calsync.Credential {
	return &calsync.Credential{AccessToken: "ics-feed"}
}

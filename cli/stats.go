// ABOUTME: LeetCode stats and weekly report CLI commands
// ABOUTME: Fetches remote solved counts and prints the local weekly summary
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"time"

	"github.com/studyguru/studyguru/db"
	"github.com/studyguru/studyguru/leetcode"
	"github.com/studyguru/studyguru/reports"
)

// StatsCommand fetches LeetCode stats for a username.
func StatsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	submissions := fs.Int("submissions", 5, "Number of recent accepted submissions to show")
	_ = fs.Parse(args)

	username := fs.Arg(0)
	if username == "" {
		user, err := db.GetOrCreateDefaultUser(database)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		username = user.LeetcodeUsername
	}
	if username == "" {
		return fmt.Errorf("no LeetCode username configured; pass one: studyguru stats <username>")
	}

	client := leetcode.NewClient()

	solved, err := client.Solved(username)
	if err != nil {
		return fmt.Errorf("failed to fetch solved stats: %w", err)
	}

	fmt.Printf("LeetCode stats for %s\n", username)
	fmt.Printf("  Solved: %d total (%d easy, %d medium, %d hard)\n",
		solved.Total, solved.Easy, solved.Medium, solved.Hard)

	recent, err := client.AcceptedSubmissions(username, *submissions)
	if err != nil {
		return fmt.Errorf("failed to fetch submissions: %w", err)
	}
	if len(recent) > 0 {
		fmt.Println("  Recent accepted:")
		for _, sub := range recent {
			fmt.Printf("    - %s\n", sub.Title)
		}
	}

	return nil
}

// ReportCommand prints the weekly study report.
func ReportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	weekFlag := fs.String("week", "", "Week start date (YYYY-MM-DD, defaults to this week's Sunday)")
	_ = fs.Parse(args)

	user, err := db.GetOrCreateDefaultUser(database)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	weekStart := startOfWeek(time.Now())
	if *weekFlag != "" {
		weekStart, err = time.Parse("2006-01-02", *weekFlag)
		if err != nil {
			return fmt.Errorf("invalid -week value, expected YYYY-MM-DD: %w", err)
		}
	}

	stats, err := reports.Weekly(database, user, weekStart)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	fmt.Printf("Week of %s\n", stats.WeekStart.Format("2006-01-02"))
	fmt.Printf("  Solved this week: %d\n", stats.WeeklySolvedCount)
	fmt.Printf("  Streak: %d day(s)\n", stats.CurrentStreakDays)
	fmt.Printf("  Solved all time: %d\n", stats.TotalSolvedAllTime)
	if stats.Highlight != "" {
		fmt.Printf("  %s\n", stats.Highlight)
	}

	return nil
}

func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

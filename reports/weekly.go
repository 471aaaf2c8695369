// ABOUTME: Weekly study statistics report
// ABOUTME: Computes solved counts, daily streaks, and a highlight line
package reports

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/studyguru/studyguru/db"
	"github.com/studyguru/studyguru/models"
)

// WeeklyStats summarizes one week of solved problems for a user.
type WeeklyStats struct {
	WeekStart          time.Time `json:"week_start"`
	WeeklySolvedCount  int       `json:"weekly_solved_count"`
	CurrentStreakDays  int       `json:"current_streak_days"`
	TotalSolvedAllTime int       `json:"total_solved_all_time"`
	Highlight          string    `json:"highlight"`
}

// Weekly builds the stats report for the week starting at weekStart
// (inclusive, seven days).
func Weekly(database *sql.DB, user *models.StudyUser, weekStart time.Time) (*WeeklyStats, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	solved, err := db.ListSolvedProblems(database, user.ID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list solved problems: %w", err)
	}

	total, err := db.CountSolvedProblems(database, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count solved problems: %w", err)
	}

	stats := &WeeklyStats{
		WeekStart:          weekStart,
		WeeklySolvedCount:  len(solved),
		CurrentStreakDays:  longestDailyStreak(solved, weekStart),
		TotalSolvedAllTime: total,
	}
	stats.Highlight = highlight(solved, user)

	return stats, nil
}

// longestDailyStreak finds the longest run of consecutive days within the
// week that each had at least one solved problem.
func longestDailyStreak(solved []db.SolvedProblem, weekStart time.Time) int {
	if len(solved) == 0 {
		return 0
	}

	days := make(map[int]bool)
	for _, sp := range solved {
		day := int(sp.SolvedAt.Sub(weekStart).Hours() / 24)
		days[day] = true
	}

	best, run := 0, 0
	for day := 0; day < 7; day++ {
		if days[day] {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// highlight names the hardest problem solved this week and the user's
// longest historical streak. Empty when nothing was solved.
func highlight(solved []db.SolvedProblem, user *models.StudyUser) string {
	if len(solved) == 0 {
		return ""
	}

	hardest := solved[0].Problem
	for _, sp := range solved[1:] {
		if models.DifficultyRank(sp.Problem.Difficulty) > models.DifficultyRank(hardest.Difficulty) {
			hardest = sp.Problem
		}
	}

	parts := []string{
		fmt.Sprintf("Hardest problem this week: %s (%s)", hardest.Title, strings.ToLower(hardest.Difficulty)),
	}
	if user.LongestStreak > 0 {
		parts = append(parts, fmt.Sprintf("Longest streak: %d days", user.LongestStreak))
	}

	return strings.Join(parts, ". ")
}

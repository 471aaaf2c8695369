// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Shows sync status and upcoming sessions with a sync trigger
package tui

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studyguru/studyguru/calsync"
	"github.com/studyguru/studyguru/db"
	"github.com/studyguru/studyguru/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Underline(true)

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// syncDoneMsg is sent when a sync run completes.
type syncDoneMsg struct {
	result calsync.SyncResult
	err    error
}

// Model is the main bubbletea model
type Model struct {
	db       *sql.DB
	spinner  spinner.Model
	syncing  bool
	sessions []models.Session
	messages []string
	err      error
}

func NewModel(database *sql.DB) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		db:      database,
		spinner: sp,
	}
	m.loadSessions()
	return m
}

// Run starts the TUI
func Run(database *sql.DB) error {
	p := tea.NewProgram(NewModel(database), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loadSessions()
		case "s":
			if !m.syncing {
				m.syncing = true
				m.addMessage("Starting calendar sync...")
				return m, tea.Batch(m.spinner.Tick, m.runSync())
			}
		}

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.addMessage(fmt.Sprintf("✗ Sync failed: %v", msg.err))
		} else if !msg.result.Success {
			m.addMessage(fmt.Sprintf("✗ %s", calsync.SyncSummary(msg.result)))
		} else {
			m.addMessage(fmt.Sprintf("✓ %s", msg.result.Summary()))
		}
		m.loadSessions()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("studyguru"))
	s.WriteString("\n\n")

	// Sync status line
	s.WriteString(headerStyle.Render("Calendar Sync"))
	s.WriteString("\n\n")
	if m.syncing {
		s.WriteString(m.spinner.View())
		s.WriteString(" Syncing...")
	} else {
		s.WriteString(m.renderSyncState())
	}
	s.WriteString("\n\n")

	// Sessions
	s.WriteString(headerStyle.Render("Sessions"))
	s.WriteString("\n\n")
	if len(m.sessions) == 0 {
		s.WriteString(mutedStyle.Render("No sessions yet. Press 's' to sync."))
		s.WriteString("\n")
	} else {
		for _, session := range m.sessions {
			linked := " "
			if session.GoogleEventID != nil {
				linked = "●"
			}
			s.WriteString(fmt.Sprintf("%s %-10s %s  %3dm  %s\n",
				linked,
				session.Status,
				session.ScheduledAt.Format("Jan 02 15:04"),
				session.DurationMinutes,
				session.Title,
			))
		}
	}
	s.WriteString("\n")

	// Recent messages
	if len(m.messages) > 0 {
		start := 0
		if len(m.messages) > 5 {
			start = len(m.messages) - 5
		}
		for i := start; i < len(m.messages); i++ {
			s.WriteString(mutedStyle.Render("  " + m.messages[i]))
			s.WriteString("\n")
		}
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("s: Sync • r: Refresh • q: Quit"))

	return s.String()
}

func (m Model) renderSyncState() string {
	state, err := db.GetSyncState(m.db, calsync.CalendarService)
	if err != nil || state == nil {
		return mutedStyle.Render("Not synced yet")
	}

	switch state.Status {
	case "error":
		line := errorStyle.Render("✗ Error")
		if state.ErrorMessage != nil {
			line += errorStyle.Render(": " + *state.ErrorMessage)
		}
		return line
	default:
		line := idleStyle.Render("✓ Idle")
		if state.LastSyncTime != nil {
			line += mutedStyle.Render(" • Last synced " + formatTimeSince(*state.LastSyncTime))
		}
		return line
	}
}

// runSync triggers a calendar sync off the update loop.
func (m Model) runSync() tea.Cmd {
	database := m.db
	return func() tea.Msg {
		user, err := db.GetOrCreateDefaultUser(database)
		if err != nil {
			return syncDoneMsg{err: err}
		}

		config, err := calsync.RequireOAuthConfig()
		if err != nil {
			return syncDoneMsg{err: err}
		}

		cred, err := calsync.LoadCredential()
		if err != nil {
			cred = &calsync.Credential{}
		}

		syncer := calsync.NewSyncer(database, config)
		result := syncer.SyncForUser(context.Background(), user.ID, cred)
		if result.Success {
			_ = calsync.SaveCredential(cred)
		}

		return syncDoneMsg{result: result}
	}
}

func (m *Model) loadSessions() {
	user, err := db.GetOrCreateDefaultUser(m.db)
	if err != nil {
		m.err = err
		return
	}
	sessions, err := db.ListSessions(m.db, user.ID, 15)
	if err != nil {
		m.err = err
		return
	}
	m.sessions = sessions
}

func formatTimeSince(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func (m *Model) addMessage(msg string) {
	timestamp := time.Now().Format("15:04:05")
	m.messages = append(m.messages, fmt.Sprintf("[%s] %s", timestamp, msg))
}

// ABOUTME: Entry point for the study planner CLI, web API, TUI, and MCP server
// ABOUTME: Routes to subcommands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/studyguru/studyguru/cli"
	"github.com/studyguru/studyguru/db"
	"github.com/studyguru/studyguru/tui"
	"github.com/studyguru/studyguru/web"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/studyguru/studyguru.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	// Handle version flag
	if *showVersion {
		fmt.Printf("studyguru version %s\n", version)
		os.Exit(0)
	}

	// Load OAuth client settings from .env when present
	_ = godotenv.Load()

	// Get remaining args after flags
	args := flag.Args()

	// If no command specified, show usage
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	// Route to top-level command
	command := args[0]
	commandArgs := args[1:]

	// auth never touches the database
	if command == "auth" {
		if err := cli.AuthCommand(commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	finalDBPath := getDatabasePath(*dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Printf("Database initialized: %s", finalDBPath)
		os.Exit(0)
	}

	switch command {
	case "mcp":
		// MCP server speaks JSON-RPC on stdio, keep stdout clean
		if err := cli.MCPCommand(database); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "sync":
		if err := cli.SyncCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "sessions":
		if err := cli.SessionsCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "stats":
		if err := cli.StatsCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "report":
		if err := cli.ReportCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "web":
		port := 3000
		if len(commandArgs) > 0 {
			p, err := strconv.Atoi(commandArgs[0])
			if err != nil {
				log.Fatalf("Invalid port: %s", commandArgs[0])
			}
			port = p
		}
		server, err := web.NewServer(database)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		if err := server.Start(port); err != nil {
			log.Fatalf("Server failed: %v", err)
		}

	case "tui":
		if err := tui.Run(database); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "studyguru", "studyguru.db")
}

func printUsage() {
	fmt.Printf(`studyguru v%s - study planner with calendar sync

USAGE:
  studyguru [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/studyguru/studyguru.db)
  --init                 Initialize database and exit

COMMANDS:
  auth                   Authorize Google Calendar access (OAuth flow)
  sync                   Sync study sessions from your calendar
    --days <n>              Sync window in days around now (default: 30)
    --ical <url>            Sync from an iCalendar feed instead of Google
  sessions               List study sessions
  stats [username]       Show LeetCode solve statistics
  report                 Weekly progress report
    --week <YYYY-MM-DD>     Week start date (default: current week)
  web [port]             Start the JSON API server (default port: 3000)
  tui                    Interactive terminal interface
  mcp                    Start MCP server (for assistant integration)

ENVIRONMENT:
  GOOGLE_CLIENT_ID       OAuth client id (required for Google sync)
  GOOGLE_CLIENT_SECRET   OAuth client secret

`, version)
}

// Package main is the entry point for the taskpad application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"taskpad/internal/config"
	"taskpad/internal/notify"
	"taskpad/internal/settings"
	"taskpad/internal/storage"
	"taskpad/internal/task"
	"taskpad/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `taskpad - A to-do list with calendar, reminders, and notes for your terminal

USAGE:
    taskpad [OPTIONS]
    taskpad <command> [ARGS]

COMMANDS:
    backup           Create a backup of all data
    backup --list    List available backups
    backup --prune N Keep only the N newest backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Generate a daily report (Markdown)
    export --weekly  Generate a weekly report
    export -f json   Output report as JSON

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    taskpad is a keyboard-driven terminal app for tasks. Tasks created for
    today appear on the main list; every task lives on its calendar day.
    Reminders fire as desktop notifications while the app is running.

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3, 4   Jump to specific pane
        s            Settings
        ?            Show help overlay
        q            Quit

    Tasks Pane:
        j/k, ↓/↑     Navigate
        a            Add task (tab cycles title/date/time)
        d/Space      Complete
        x            Delete task
        g/G          Go to top/bottom

    Calendar Pane:
        h/l, ←/→     Previous/next day
        a            Add task for the selected day
        d/Space      Toggle done
        x            Delete task

    Notes Pane:
        a            Add note
        e            Edit note
        x            Delete note

DATA STORAGE:
    All data is stored in ~/.taskpad/ as plain JSON files:
        tasks.json      - Main list tasks
        calendar.json   - Tasks grouped by day
        completed.json  - Completed history
        notes.json      - Notes
        settings.json   - Settings

CONFIGURATION:
    Optional config file: ~/.config/taskpad/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    taskpad

    # Create a backup
    taskpad backup

    # Restore from a backup
    taskpad restore --latest

    # Generate today's report
    taskpad export

    # Generate weekly report as JSON
    taskpad export --weekly --format json
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("taskpad version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/taskpad/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage with configured data directory
	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// Reminder scheduler over the platform notifier
	scheduler := notify.NewScheduler(notify.New())
	defer scheduler.Stop()

	// Settings manager; a recovered settings document is a warning, not fatal
	mgr, err := settings.NewManager(store, scheduler)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Task store: load the collections and re-arm pending reminders
	tasks := task.New(store, scheduler, func() storage.Settings { return mgr.Current() })
	if err := tasks.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := tasks.RearmReminders(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: re-arming reminders: %v\n", err)
	}

	styles := ui.NewStylesFromTheme(&cfg.Theme)
	appCfg := &ui.AppConfig{Keys: &cfg.Keys}

	if err := ui.Run(tasks, store, mgr, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

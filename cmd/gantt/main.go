package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gantt/internal/ai"
	"gantt/internal/config"
	"gantt/internal/dateutil"
	"gantt/internal/db"
	"gantt/internal/export"
	"gantt/internal/logging"
	"gantt/internal/share"
	"gantt/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: gantt [command]

Without a command, opens the interactive chart.

Commands:
  export-csv FILE    write the schedule as CSV
  export-json FILE   write the schedule as JSON
  import FILE        replace the schedule from a JSON export
  share              print a share token for the schedule
  load TOKEN         replace the schedule from a share token
  --version          print version information
`)
}

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("gantt %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg := config.Load()

	database, err := db.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.SeedIfEmpty(dateutil.Today()); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding database: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		if err := runCommand(database, os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	suggester := ai.New(cfg.APIKey, cfg.Model)

	app := ui.NewApp(database, logger, suggester)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// runCommand handles the non-interactive conveniences around the same
// database the chart uses.
func runCommand(database *db.DB, args []string) error {
	cmd := args[0]

	arg := func() (string, error) {
		if len(args) < 2 || args[1] == "" {
			usage()
			return "", fmt.Errorf("%s requires an argument", cmd)
		}
		return args[1], nil
	}

	switch cmd {
	case "export-csv":
		path, err := arg()
		if err != nil {
			return err
		}
		doc, err := database.LoadDocument(nil)
		if err != nil {
			return err
		}
		if err := export.CSVFile(path, doc); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil

	case "export-json":
		path, err := arg()
		if err != nil {
			return err
		}
		doc, err := database.LoadDocument(nil)
		if err != nil {
			return err
		}
		if err := export.JSONFile(path, doc); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil

	case "import":
		path, err := arg()
		if err != nil {
			return err
		}
		doc, err := export.ImportFile(path)
		if err != nil {
			return err
		}
		if err := database.SaveDocument(doc); err != nil {
			return err
		}
		fmt.Printf("Imported %d tasks in %d groups\n", len(doc.Tasks), len(doc.Groups))
		return nil

	case "share":
		doc, err := database.LoadDocument(nil)
		if err != nil {
			return err
		}
		token, err := share.Encode(doc)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil

	case "load":
		token, err := arg()
		if err != nil {
			return err
		}
		doc, err := share.Decode(token)
		if err != nil {
			return fmt.Errorf("invalid share token: %w", err)
		}
		if err := database.SaveDocument(doc); err != nil {
			return err
		}
		fmt.Printf("Loaded %d tasks in %d groups\n", len(doc.Tasks), len(doc.Groups))
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/database"
)

// MigrateCommand creates or upgrades the database schema without starting the server.
type MigrateCommand struct {
	DatabasePath string
	Verbose      bool

	database config.Database
}

// NewMigrateCommand takes the resolved database settings; -db overrides the path.
func NewMigrateCommand(cfg config.Database) *MigrateCommand {
	return &MigrateCommand{database: cfg}
}

func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.database.Path, "Path to the database file")
	fs.BoolVar(&cmd.Verbose, "verbose", cmd.database.LogSQL, "Print every SQL statement")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the tables and constraints the API needs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *MigrateCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, cmd.Verbose)
	if err != nil {
		return fmt.Errorf("failed to migrate %s: %w", cmd.DatabasePath, err)
	}
	defer db.Close()

	tables, err := db.Tables()
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	fmt.Printf("Database: %s\n", cmd.DatabasePath)
	fmt.Printf("Tables (%d):\n", len(tables))
	for _, name := range tables {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

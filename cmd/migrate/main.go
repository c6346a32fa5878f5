// Command migrate manages the schema of the optional run-history database.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"billex/internal/config"
)

const migrationsPath = "file://db/migrations"

var errUsage = errors.New("usage: migrate <up|down|steps N|version>")

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "up", "down", "steps", "version":
	default:
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.DB.Enabled() {
		return errors.New("no database configured; set BILLEX_DB_HOST")
	}

	m, err := migrate.New(migrationsPath, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("opening migrations: %w", err)
	}
	defer m.Close()

	switch args[0] {
	case "up":
		return report(m.Up(), "schema is up to date")
	case "down":
		return report(m.Down(), "schema reverted")
	case "steps":
		if len(args) < 2 {
			return errors.New("steps needs a count, e.g. steps -1")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("steps count %q: %w", args[1], err)
		}
		return report(m.Steps(n), fmt.Sprintf("moved %d migration steps", n))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		log.Printf("schema version %d (dirty=%v)", version, dirty)
		return nil
	}
	return nil
}

// report collapses migrate's ErrNoChange into a log line: an already-current
// schema is a success, not a failure.
func report(err error, applied string) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("no schema changes to apply")
		return nil
	case err != nil:
		return err
	default:
		log.Println(applied)
		return nil
	}
}

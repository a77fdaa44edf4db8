package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"menvo.backend/internal/config"
	datasource "menvo.backend/internal/infrastructure/datasources/postgres"
)

const migrateTimeout = 5 * time.Minute

var (
	loadDotenv     = godotenv.Load
	loadCfg        = config.Load
	openConn       = datasource.NewConnection
	applyMigration = datasource.Migrate
	listMigrations = datasource.LoadMigrations
)

func runMigrate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	list := fs.Bool("list", false, "print embedded migration versions and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		migrations, err := listMigrations()
		if err != nil {
			return err
		}
		for _, m := range migrations {
			_, _ = fmt.Fprintln(out, m.Version)
		}
		return nil
	}

	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := loadCfg()

	db, err := openConn(cfg.Database)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	applied, err := applyMigration(ctx, db)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if len(applied) == 0 {
		_, _ = fmt.Fprintln(out, "Database is up to date")
		return nil
	}
	for _, v := range applied {
		_, _ = fmt.Fprintf(out, "applied %s\n", v)
	}
	return nil
}

func main() {
	if err := runMigrate(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// Command migrate applies the goose migrations in migrations/goose_sql.
//
//	migrate [up|down|status|version|redo|reset]
package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/maxviazov/realty-marketplace/internal/config"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dir := flag.String("dir", "migrations/goose_sql", "migrations directory")
	flag.Parse()

	command, args := "up", []string(nil)
	if flag.NArg() > 0 {
		command, args = flag.Arg(0), flag.Args()[1:]
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	db, err := sql.Open("pgx", repository.DSN(cfg.Postgres))
	if err != nil {
		log.Fatalf("❌ Postgres open failed: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ goose dialect: %v", err)
	}
	if err := goose.Run(command, db, *dir, args...); err != nil {
		log.Fatalf("❌ goose %s: %v", command, err)
	}
}

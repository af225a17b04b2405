package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sudo-init-do/restful-users/internal/config"
	"github.com/sudo-init-do/restful-users/internal/db"
	"github.com/sudo-init-do/restful-users/internal/logging"
	"github.com/sudo-init-do/restful-users/internal/user"
)

// migrate manages the users schema of the configured SQL store.
// Usage:
//
//	go run ./cmd/adminutil/migrate            # apply pending migrations
//	go run ./cmd/adminutil/migrate -seed      # apply, then insert default users
//	go run ./cmd/adminutil/migrate -down      # revert the last migration
func main() {
	down := flag.Bool("down", false, "Revert the most recent migration")
	seedUsers := flag.Bool("seed", false, "Insert the default users when the table is empty")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	var conn *sqlx.DB
	switch cfg.Store {
	case config.StorePostgres:
		conn, err = db.Open(ctx, db.DriverPostgres, cfg.DatabaseURL)
	case config.StoreSQLite:
		conn, err = db.Open(ctx, db.DriverSQLite, cfg.SQLitePath)
	default:
		log.Fatalf("STORE=%s has no schema; use postgres or sqlite", cfg.Store)
	}
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()

	if *down {
		if err := db.Rollback(ctx, conn); err != nil {
			log.Fatalf("failed to roll back: %v", err)
		}
	} else if err := db.Migrate(ctx, conn); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if *seedUsers && !*down {
		logger, err := logging.New(log.Writer(), cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			log.Fatalf("failed to set up logging: %v", err)
		}
		svc := user.NewService(user.NewSQLStore(conn), logger)
		if err := svc.Seed(ctx, user.DefaultUsers(time.Now())...); err != nil {
			log.Fatalf("failed to seed users: %v", err)
		}
	}

	v, err := db.Version(ctx, conn)
	if err != nil {
		log.Fatalf("failed to read schema version: %v", err)
	}
	fmt.Printf("Schema for %s store at version %d.\n", cfg.Store, v)
}

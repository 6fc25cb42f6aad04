package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"ms-attendance/internal/config"
	"ms-attendance/internal/database/migrations"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate all tables")
	seed := flag.Bool("seed", false, "insert sample data after migrating")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}
	cfg := config.Load()

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Database.DSN())))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if *reset {
		if err := migrations.Reset(ctx, db); err != nil {
			log.Fatalf("schema reset failed: %v", err)
		}
		log.Println("schema reset complete")
	} else {
		if err := migrations.CreateSchema(ctx, db); err != nil {
			log.Fatalf("schema migration failed: %v", err)
		}
		log.Println("schema migration complete")
	}

	if *seed {
		if err := migrations.Seed(ctx, db); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		log.Println("sample data seeded")
	}
}

// Package main is a development tool that prepares a database for local use:
// it applies all pending migrations and fills the catalog tables with
// synthetic departure locations, destinations, transport slots, rooms and
// activities covering the next 60 days.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/lmercier/triptailor/internal/config"
	"github.com/lmercier/triptailor/migrations"
	"github.com/lmercier/triptailor/testutil"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// goose needs database/sql; seeding uses the pgx pool.
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		slog.Error("failed to create goose provider", "error", err)
		os.Exit(1)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "count", len(results))

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	from := time.Now().UTC().Truncate(24 * time.Hour)
	summary, err := testutil.SeedCatalog(ctx, pool, nil, from, from.AddDate(0, 0, 60))
	if err != nil {
		slog.Error("failed to seed catalog", "error", err)
		os.Exit(1)
	}

	slog.Info("catalog seeded",
		"departure_locations", summary.DepartureLocations,
		"destinations", summary.Destinations,
		"transport_slots", summary.TransportSlots,
		"rooms", summary.Rooms,
		"extras", summary.Extras,
		"activities", summary.Activities,
	)
}

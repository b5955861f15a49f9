package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite"

	"github.com/cocodems/elections/config"
	"github.com/cocodems/elections/models"
)

// Setup opens the configured database and checks it is reachable.
func Setup(ctx context.Context, cfg config.Database) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.Type {
	case "sqlite":
		sqldb, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		// One writer at a time; a single connection also keeps :memory: databases shared.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
		db = bun.NewDB(sqldb, pgdialect.New())
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// CreateTables creates all tables and indexes. It is safe to run repeatedly.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Election)(nil),
		(*models.Jurisdiction)(nil),
		(*models.Office)(nil),
		(*models.Individual)(nil),
		(*models.Race)(nil),
		(*models.Campaign)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS offices_no_dupes ON offices (jurisdiction_id, office_name)`,
		`CREATE INDEX IF NOT EXISTS races_election_id ON races (election_id)`,
		`CREATE INDEX IF NOT EXISTS campaigns_race_id ON campaigns (race_id)`,
		`CREATE INDEX IF NOT EXISTS campaigns_contact_id ON campaigns (contact_id)`,
		`CREATE INDEX IF NOT EXISTS individuals_names ON individuals (last_name, first_name)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("index: %w", err)
		}
	}

	return nil
}

package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	"github.com/peekknuf/skatergrade/internal/criteria"
)

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS players (
    slug TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    team TEXT,
    position TEXT,
    games INTEGER,
    ice_time_minutes REAL,
    overall_grade TEXT,
    overall_percentile REAL
)`, `
CREATE TABLE IF NOT EXISTS player_categories (
    slug TEXT NOT NULL,
    criterion TEXT NOT NULL,
    percentile REAL,
    grade TEXT,
    rating TEXT,
    value REAL,
    xg_pct REAL,
    takeaways_p60 REAL,
    blocks_p60 REAL,
    label TEXT,
    PRIMARY KEY (slug, criterion)
)`, `
CREATE TABLE IF NOT EXISTS export_runs (
    build_id TEXT PRIMARY KEY,
    generated_at DATETIME,
    source TEXT,
    players INTEGER
)`}

// SQLiteWriter stores the bundle in a SQLite database. Each write replaces
// the player tables so the file always mirrors the latest export.
type SQLiteWriter struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	for _, stmt := range sqliteSchema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return &SQLiteWriter{db: db, path: path}, nil
}

func (w *SQLiteWriter) Name() string { return "sqlite:" + w.path }

// Counts returns the number of stored players and category rows.
func (w *SQLiteWriter) Counts(ctx context.Context) (players, categories int, err error) {
	if err := w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&players); err != nil {
		return 0, 0, fmt.Errorf("failed to count players: %w", err)
	}
	if err := w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM player_categories").Scan(&categories); err != nil {
		return 0, 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return players, categories, nil
}

// Close releases the database.
func (w *SQLiteWriter) Close() error { return w.db.Close() }

// Write replaces all players in a single transaction.
func (w *SQLiteWriter) Write(ctx context.Context, b *Bundle) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM player_categories", "DELETE FROM players"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear previous export: %w", err)
		}
	}

	playerStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (slug, name, team, position, games, ice_time_minutes, overall_grade, overall_percentile)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare player insert: %w", err)
	}
	defer playerStmt.Close()

	categoryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO player_categories (slug, criterion, percentile, grade, rating, value, xg_pct, takeaways_p60, blocks_p60, label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare category insert: %w", err)
	}
	defer categoryStmt.Close()

	for _, p := range b.Players {
		if _, err := playerStmt.ExecContext(ctx, p.Slug, p.Name, p.Team, p.Position, p.Games,
			p.IceTimeMinutes, p.OverallGrade, p.OverallPercentile); err != nil {
			return fmt.Errorf("failed to insert %s: %w", p.Slug, err)
		}

		for _, c := range categoryRows(p) {
			if _, err := categoryStmt.ExecContext(ctx, p.Slug, c.criterion, c.Percentile, c.Grade, c.Rating,
				c.value, c.xgPct, c.takeawaysP60, c.blocksP60, c.Label); err != nil {
				return fmt.Errorf("failed to insert %s/%s: %w", p.Slug, c.criterion, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO export_runs (build_id, generated_at, source, players) VALUES (?, ?, ?, ?)`,
		b.Manifest.BuildID, b.Manifest.GeneratedAt, b.Manifest.Source, b.Manifest.Players); err != nil {
		return fmt.Errorf("failed to record export run: %w", err)
	}

	return tx.Commit()
}

type categoryRow struct {
	Category
	criterion                      string
	value                          sql.NullFloat64
	xgPct, takeawaysP60, blocksP60 sql.NullFloat64
}

func categoryRows(p Player) []categoryRow {
	rows := make([]categoryRow, 0, 6)
	for _, c := range criteria.All {
		cat := p.Categories.Get(c)
		row := categoryRow{Category: *cat, criterion: string(c)}
		if cat.Value != nil {
			row.value = sql.NullFloat64{Float64: *cat.Value, Valid: true}
		}
		if cat.Components != nil {
			row.xgPct = sql.NullFloat64{Float64: cat.Components.XGPct, Valid: true}
			row.takeawaysP60 = sql.NullFloat64{Float64: cat.Components.TakeawaysP60, Valid: true}
			row.blocksP60 = sql.NullFloat64{Float64: cat.Components.BlocksP60, Valid: true}
		}
		rows = append(rows, row)
	}
	return rows
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"market-climber/src/helpers"
	"market-climber/src/logger"
	"market-climber/src/models"

	_ "github.com/lib/pq"
)

var schemaUnsafe = regexp.MustCompile(`[^a-z0-9_]+`)

// -----------------------------------------------------------------------------

type PostgresWatchlist struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

// NewPostgresWatchlist keeps its table in a schema named after the application.
func NewPostgresWatchlist(cfg *models.MConfig, log *logger.Logger) *PostgresWatchlist {
	return &PostgresWatchlist{
		Config: cfg,
		Schema: SchemaName(cfg.Name),
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// SchemaName turns an application name into a safe identifier.
func SchemaName(name string) string {
	s := schemaUnsafe.ReplaceAllString(strings.ToLower(name), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "market_climber"
	}
	return s
}

// -----------------------------------------------------------------------------

func (d *PostgresWatchlist) table() string {
	return fmt.Sprintf(`"%s".watchlist`, d.Schema)
}

// -----------------------------------------------------------------------------

func (d *PostgresWatchlist) Initialize(ctx context.Context) error {
	db, err := sql.Open("postgres", d.Config.Storage.DBConnectionString)
	if err != nil {
		return helpers.NewDatabaseError(err, "open postgres")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return helpers.NewDatabaseError(err, "ping postgres")
	}
	d.DB = db

	// Create Schema
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return helpers.NewDatabaseError(err, "create schema %s", d.Schema)
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			symbol TEXT PRIMARY KEY,
			id UUID NOT NULL,
			added_at TIMESTAMPTZ NOT NULL
		);
	`, d.table())
	if _, err := db.ExecContext(ctx, query); err != nil {
		return helpers.NewDatabaseError(err, "create watchlist table")
	}

	d.Logger.Info("Postgres watchlist ready in schema %s", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresWatchlist) Add(ctx context.Context, symbol string) (models.MWatchlistItem, error) {
	s, err := ValidateSymbol(symbol)
	if err != nil {
		return models.MWatchlistItem{}, err
	}

	item := newItem(s, time.Now())
	query := fmt.Sprintf(`
		INSERT INTO %s (symbol, id, added_at) VALUES ($1, $2, $3)
		ON CONFLICT (symbol) DO UPDATE SET symbol = EXCLUDED.symbol
		RETURNING id, added_at
	`, d.table())
	if err := d.DB.QueryRowContext(ctx, query, item.Symbol, item.ID, item.AddedAt).Scan(&item.ID, &item.AddedAt); err != nil {
		return models.MWatchlistItem{}, helpers.NewDatabaseError(err, "insert %s", s)
	}
	item.AddedAt = item.AddedAt.UTC()
	return item, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresWatchlist) Remove(ctx context.Context, symbol string) (bool, error) {
	s, err := ValidateSymbol(symbol)
	if err != nil {
		return false, err
	}

	res, err := d.DB.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE symbol = $1`, d.table()), s)
	if err != nil {
		return false, helpers.NewDatabaseError(err, "delete %s", s)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, helpers.NewDatabaseError(err, "delete %s", s)
	}
	return n > 0, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresWatchlist) List(ctx context.Context) ([]models.MWatchlistItem, error) {
	rows, err := d.DB.QueryContext(ctx, fmt.Sprintf(`SELECT id, symbol, added_at FROM %s ORDER BY added_at, symbol`, d.table()))
	if err != nil {
		return nil, helpers.NewDatabaseError(err, "list watchlist")
	}
	defer rows.Close()

	items := []models.MWatchlistItem{}
	for rows.Next() {
		var item models.MWatchlistItem
		if err := rows.Scan(&item.ID, &item.Symbol, &item.AddedAt); err != nil {
			return nil, helpers.NewDatabaseError(err, "scan watchlist row")
		}
		item.AddedAt = item.AddedAt.UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, helpers.NewDatabaseError(err, "iterate watchlist")
	}
	return items, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresWatchlist) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"time"

	"market-climber/src/helpers"
	"market-climber/src/logger"
	"market-climber/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteWatchlist struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteWatchlist(cfg *models.MConfig, log *logger.Logger) *SQLiteWatchlist {
	return &SQLiteWatchlist{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (d *SQLiteWatchlist) Initialize(ctx context.Context) error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return helpers.NewDatabaseError(err, "open sqlite %s", dsn)
	}
	if dsn == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return helpers.NewDatabaseError(err, "ping sqlite %s", dsn)
	}
	d.DB = db

	// PRAGMA optimizations
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	query := `
		CREATE TABLE IF NOT EXISTS watchlist (
			symbol TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			added_at INTEGER NOT NULL
		);
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return helpers.NewDatabaseError(err, "create watchlist table")
	}

	d.Logger.Info("SQLite watchlist ready at %s", dsn)
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteWatchlist) Add(ctx context.Context, symbol string) (models.MWatchlistItem, error) {
	s, err := ValidateSymbol(symbol)
	if err != nil {
		return models.MWatchlistItem{}, err
	}

	item := newItem(s, time.Now())
	_, err = d.DB.ExecContext(ctx,
		`INSERT INTO watchlist (symbol, id, added_at) VALUES (?, ?, ?) ON CONFLICT(symbol) DO NOTHING`,
		item.Symbol, item.ID, item.AddedAt.UnixMilli())
	if err != nil {
		return models.MWatchlistItem{}, helpers.NewDatabaseError(err, "insert %s", s)
	}

	// Return what is stored, which is the earlier row when the symbol already existed
	var addedAt int64
	row := d.DB.QueryRowContext(ctx, `SELECT id, added_at FROM watchlist WHERE symbol = ?`, s)
	if err := row.Scan(&item.ID, &addedAt); err != nil {
		return models.MWatchlistItem{}, helpers.NewDatabaseError(err, "read back %s", s)
	}
	item.AddedAt = time.UnixMilli(addedAt).UTC()
	return item, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteWatchlist) Remove(ctx context.Context, symbol string) (bool, error) {
	s, err := ValidateSymbol(symbol)
	if err != nil {
		return false, err
	}

	res, err := d.DB.ExecContext(ctx, `DELETE FROM watchlist WHERE symbol = ?`, s)
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

func (d *SQLiteWatchlist) List(ctx context.Context) ([]models.MWatchlistItem, error) {
	rows, err := d.DB.QueryContext(ctx, `SELECT id, symbol, added_at FROM watchlist ORDER BY added_at, symbol`)
	if err != nil {
		return nil, helpers.NewDatabaseError(err, "list watchlist")
	}
	defer rows.Close()

	items := []models.MWatchlistItem{}
	for rows.Next() {
		var item models.MWatchlistItem
		var addedAt int64
		if err := rows.Scan(&item.ID, &item.Symbol, &addedAt); err != nil {
			return nil, helpers.NewDatabaseError(err, "scan watchlist row")
		}
		item.AddedAt = time.UnixMilli(addedAt).UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, helpers.NewDatabaseError(err, "iterate watchlist")
	}
	return items, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteWatchlist) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"market-climber/src/helpers"
	"market-climber/src/logger"
	"market-climber/src/models"

	"github.com/redis/go-redis/v9"
)

// -----------------------------------------------------------------------------

// RedisWatchlist keeps the watchlist in one hash: field = symbol, value = JSON item.
type RedisWatchlist struct {
	Config *models.MConfig
	Client *redis.Client
	Key    string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewRedisWatchlist(cfg *models.MConfig, log *logger.Logger) *RedisWatchlist {
	return &RedisWatchlist{
		Config: cfg,
		Key:    fmt.Sprintf("%s:watchlist", SchemaName(cfg.Name)),
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (r *RedisWatchlist) Initialize(ctx context.Context) error {
	if r.Client == nil {
		r.Client = redis.NewClient(&redis.Options{
			Addr:         r.Config.Storage.RedisAddr,
			Password:     r.Config.Storage.RedisPassword,
			DB:           r.Config.Storage.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
	}

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return helpers.NewDatabaseError(err, "connect to redis at %s", r.Config.Storage.RedisAddr)
	}

	r.Logger.Info("Redis watchlist ready at %s (key %s)", r.Config.Storage.RedisAddr, r.Key)
	return nil
}

// -----------------------------------------------------------------------------

func (r *RedisWatchlist) Add(ctx context.Context, symbol string) (models.MWatchlistItem, error) {
	s, err := ValidateSymbol(symbol)
	if err != nil {
		return models.MWatchlistItem{}, err
	}

	item := newItem(s, time.Now())
	data, err := json.Marshal(item)
	if err != nil {
		return models.MWatchlistItem{}, fmt.Errorf("failed to marshal watchlist item: %w", err)
	}

	// HSETNX keeps the first insert
	if err := r.Client.HSetNX(ctx, r.Key, s, data).Err(); err != nil {
		return models.MWatchlistItem{}, helpers.NewDatabaseError(err, "insert %s", s)
	}

	stored, err := r.Client.HGet(ctx, r.Key, s).Result()
	if err != nil {
		return models.MWatchlistItem{}, helpers.NewDatabaseError(err, "read back %s", s)
	}
	var out models.MWatchlistItem
	if err := json.Unmarshal([]byte(stored), &out); err != nil {
		return models.MWatchlistItem{}, helpers.NewDatabaseError(err, "decode %s", s)
	}
	return out, nil
}

// -----------------------------------------------------------------------------

func (r *RedisWatchlist) Remove(ctx context.Context, symbol string) (bool, error) {
	s, err := ValidateSymbol(symbol)
	if err != nil {
		return false, err
	}

	n, err := r.Client.HDel(ctx, r.Key, s).Result()
	if err != nil {
		return false, helpers.NewDatabaseError(err, "delete %s", s)
	}
	return n > 0, nil
}

// -----------------------------------------------------------------------------

func (r *RedisWatchlist) List(ctx context.Context) ([]models.MWatchlistItem, error) {
	all, err := r.Client.HGetAll(ctx, r.Key).Result()
	if err != nil && err != redis.Nil {
		return nil, helpers.NewDatabaseError(err, "list watchlist")
	}

	items := make([]models.MWatchlistItem, 0, len(all))
	for symbol, raw := range all {
		var item models.MWatchlistItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			r.Logger.Warning("Skipping corrupt watchlist entry %s: %v", symbol, err)
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].Symbol < items[j].Symbol
		}
		return items[i].AddedAt.Before(items[j].AddedAt)
	})
	return items, nil
}

// -----------------------------------------------------------------------------

func (r *RedisWatchlist) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

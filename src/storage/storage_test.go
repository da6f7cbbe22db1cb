package storage

import (
	"context"
	"io"
	"testing"

	"market-climber/src/helpers"
	"market-climber/src/logger"
	"market-climber/src/models"
)

func newMemoryStore(t *testing.T) *SQLiteWatchlist {
	t.Helper()
	cfg := &models.MConfig{Storage: models.MStorageConfig{DBType: "sqlite", DBPath: ":memory:"}}
	store := NewSQLiteWatchlist(cfg, logger.NewLogger(cfg, "StorageTest").WithOutput(io.Discard))
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestValidateSymbol(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"aapl", "AAPL", true},
		{" brk.b ", "BRK.B", true},
		{"BF-B", "BF-B", true},
		{"", "", false},
		{"TOOLONGSYMBOL1", "", false},
		{"AA PL", "", false},
		{"DROP;TABLE", "", false},
	}
	for _, tc := range cases {
		got, err := ValidateSymbol(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ValidateSymbol(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && helpers.ErrorKind(err) != helpers.KindMalformed {
			t.Errorf("ValidateSymbol(%q) expected validation error, got %v", tc.in, err)
		}
	}
}

func TestSQLiteAddListRemove(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, "aapl")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.Symbol != "AAPL" || first.ID == "" {
		t.Errorf("unexpected item %+v", first)
	}

	again, err := store.Add(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Add again: %v", err)
	}
	if again.ID != first.ID || !again.AddedAt.Equal(first.AddedAt) {
		t.Errorf("adding twice should return the stored item, got %+v vs %+v", again, first)
	}

	if _, err := store.Add(ctx, "gme"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}

	removed, err := store.Remove(ctx, "aapl")
	if err != nil || !removed {
		t.Errorf("Remove: %v, %v", removed, err)
	}
	removed, err = store.Remove(ctx, "AAPL")
	if err != nil || removed {
		t.Errorf("second Remove should report nothing removed: %v, %v", removed, err)
	}

	items, _ = store.List(ctx)
	if len(items) != 1 || items[0].Symbol != "GME" {
		t.Errorf("expected only GME left, got %+v", items)
	}
}

func TestSQLiteRejectsInvalidSymbol(t *testing.T) {
	store := newMemoryStore(t)
	if _, err := store.Add(context.Background(), "not valid!"); err == nil {
		t.Errorf("expected validation error")
	}
}

func TestEmptyListIsNotNil(t *testing.T) {
	store := newMemoryStore(t)
	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", items)
	}
}

func TestNewWatchlistStoreFactory(t *testing.T) {
	for _, dbType := range []string{"sqlite", "postgres", "redis"} {
		cfg := &models.MConfig{Name: "Market Climber", Storage: models.MStorageConfig{DBType: dbType}}
		store, err := NewWatchlistStore(cfg, nil)
		if err != nil || store == nil {
			t.Errorf("%s: %v", dbType, err)
		}
	}

	if _, err := NewWatchlistStore(&models.MConfig{Storage: models.MStorageConfig{DBType: "mongo"}}, nil); err == nil {
		t.Errorf("expected error for unknown backend")
	}
}

func TestSchemaName(t *testing.T) {
	cases := map[string]string{
		"Market Climber":  "market_climber",
		"market-climber":  "market_climber",
		"":                "market_climber",
		"climber\"; DROP": "climber_drop",
	}
	for in, want := range cases {
		if got := SchemaName(in); got != want {
			t.Errorf("SchemaName(%q) = %q, want %q", in, got, want)
		}
	}
}

package models

import "time"

// MWatchlistItem is a symbol the user pinned from the detail panel.
type MWatchlistItem struct {
	ID      string    `json:"id"`
	Symbol  string    `json:"symbol"`
	AddedAt time.Time `json:"addedAt"`
}

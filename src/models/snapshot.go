package models

// Snapshot sources
const (
	SnapshotSourceLive     = "live"
	SnapshotSourceFallback = "fallback"
)

// MMarketSnapshot is one complete fetch result. Gainers and losers keep the
// order the upstream delivered them in.
type MMarketSnapshot struct {
	Gainers        []MSymbol `json:"gainers"`
	Losers         []MSymbol `json:"losers"`
	Timestamp      string    `json:"timestamp"`
	Source         string    `json:"source"`
	FallbackReason string    `json:"fallbackReason,omitempty"`
}

// -----------------------------------------------------------------------------

// IsEmpty reports whether the snapshot carries no movers at all.
func (s MMarketSnapshot) IsEmpty() bool {
	return len(s.Gainers) == 0 && len(s.Losers) == 0
}

// -----------------------------------------------------------------------------

// UsedFallback reports whether the snapshot is the static reference data.
func (s MMarketSnapshot) UsedFallback() bool {
	return s.Source == SnapshotSourceFallback
}

// -----------------------------------------------------------------------------

// Find looks a ticker up in gainers first, then losers.
func (s MMarketSnapshot) Find(symbol string) (MSymbol, bool) {
	for _, g := range s.Gainers {
		if g.Symbol == symbol {
			return g, true
		}
	}
	for _, l := range s.Losers {
		if l.Symbol == symbol {
			return l, true
		}
	}
	return MSymbol{}, false
}

// -----------------------------------------------------------------------------

// Clone returns a deep copy so callers can never mutate a published snapshot.
func (s MMarketSnapshot) Clone() MMarketSnapshot {
	out := s
	out.Gainers = append([]MSymbol(nil), s.Gainers...)
	out.Losers = append([]MSymbol(nil), s.Losers...)
	if out.Gainers == nil {
		out.Gainers = []MSymbol{}
	}
	if out.Losers == nil {
		out.Losers = []MSymbol{}
	}
	return out
}

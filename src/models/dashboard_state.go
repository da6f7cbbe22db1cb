package models

// -----------------------------------------------------------------------------
// Dashboard State Structure
// -----------------------------------------------------------------------------

// State message types
const (
	StateTypeInitial = "INITIAL"
	StateTypeUpdate  = "UPDATE"
)

// MDashboardState is the Display Layer cell pushed to every dashboard.
type MDashboardState struct {
	Type       string           `json:"type"` // "INITIAL" or "UPDATE"
	Sequence   uint64           `json:"sequence"`
	Snapshot   *MMarketSnapshot `json:"snapshot"`
	Summary    *MMarketSummary  `json:"summary,omitempty"`
	Loading    bool             `json:"loading"`
	Refreshing bool             `json:"refreshing"`
	Error      string           `json:"error,omitempty"`
	UpdatedAt  int64            `json:"updatedAt"`
	Market     MMarketStatus    `json:"market"`
}

// MMarketStatus reports whether the tracked exchange is trading.
type MMarketStatus struct {
	Exchange string `json:"exchange"`
	Open     bool   `json:"open"`
}

// -----------------------------------------------------------------------------

// Clone deep-copies the state including the snapshot.
func (s MDashboardState) Clone() MDashboardState {
	out := s
	if s.Snapshot != nil {
		snap := s.Snapshot.Clone()
		out.Snapshot = &snap
	}
	if s.Summary != nil {
		sum := *s.Summary
		out.Summary = &sum
	}
	return out
}

// -----------------------------------------------------------------------------
// MMovers is the top-K view of a snapshot for one layout
// -----------------------------------------------------------------------------

type MMovers struct {
	Layout    string    `json:"layout"`
	Depth     int       `json:"depth"`
	Gainers   []MSymbol `json:"gainers"`
	Losers    []MSymbol `json:"losers"`
	Timestamp string    `json:"timestamp"`
	Source    string    `json:"source"`
}

// -----------------------------------------------------------------------------
// MClientCommand for websocket client messages
// -----------------------------------------------------------------------------

type MClientCommand struct {
	Command string `json:"command"` // "subscribe" or "refresh"
	Layout  string `json:"layout"`
}

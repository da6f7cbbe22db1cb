package tui

import "market-climber/src/models"

// StatePublisher hands dashboard states to the terminal UI. Only the latest
// state is kept; every state is a full picture, so older ones can be skipped.
type StatePublisher struct {
	updates chan models.MDashboardState
}

// NewStatePublisher creates a publisher for the poller to feed.
func NewStatePublisher() *StatePublisher {
	return &StatePublisher{updates: make(chan models.MDashboardState, 1)}
}

// Publish replaces any state the UI has not picked up yet
func (p *StatePublisher) Publish(state models.MDashboardState) {
	for {
		select {
		case p.updates <- state:
			return
		default:
		}
		// Channel is full, drop the stale state
		select {
		case <-p.updates:
		default:
		}
	}
}

// Updates is read by the UI model
func (p *StatePublisher) Updates() <-chan models.MDashboardState {
	return p.updates
}

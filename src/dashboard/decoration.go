package dashboard

import (
	"time"

	"market-climber/src/models"
)

// StairCount is the height of the gainers staircase
const StairCount = 10

// Stair is one step of the staircase; Symbol is nil when unoccupied.
type Stair struct {
	Level  int
	Symbol *models.MSymbol
}

// -----------------------------------------------------------------------------

// StairSteps places gainers on a staircase listed bottom to top. The first
// gainer stands on the top step, the next one below it, and so on.
func StairSteps(gainers []models.MSymbol, stairs int) []Stair {
	steps := make([]Stair, stairs)
	for i := range steps {
		steps[i].Level = i + 1
	}
	for i := 0; i < len(gainers) && i < stairs; i++ {
		g := gainers[i]
		steps[stairs-1-i].Symbol = &g
	}
	return steps
}

// -----------------------------------------------------------------------------

// ElevatorState is the decoration shown above the losers list.
type ElevatorState struct {
	Floor     int
	DoorsOpen bool
}

// ElevatorClock derives the elevator decoration from elapsed time. Doors open
// every Cycle and close Open later; each close moves the car down one floor,
// wrapping from the ground floor back to the top.
type ElevatorClock struct {
	Floors int
	Cycle  time.Duration
	Open   time.Duration
}

// -----------------------------------------------------------------------------

func NewElevatorClock(cfg models.MDashboardConfig) ElevatorClock {
	return ElevatorClock{
		Floors: StairCount,
		Cycle:  time.Duration(cfg.DoorCycleSeconds) * time.Second,
		Open:   time.Duration(cfg.DoorOpenSeconds) * time.Second,
	}
}

// -----------------------------------------------------------------------------

// At returns the state after elapsed time.
func (c ElevatorClock) At(elapsed time.Duration) ElevatorState {
	if c.Floors <= 0 || c.Cycle <= 0 || elapsed < 0 {
		return ElevatorState{Floor: c.Floors}
	}

	closes := 0
	if elapsed >= c.Cycle+c.Open {
		closes = int((elapsed - c.Open) / c.Cycle)
	}

	floor := ((c.Floors-1-closes)%c.Floors+c.Floors)%c.Floors + 1
	open := elapsed >= c.Cycle && elapsed%c.Cycle < c.Open

	return ElevatorState{Floor: floor, DoorsOpen: open}
}

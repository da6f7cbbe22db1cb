package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"market-climber/src/analysis"
	"market-climber/src/interfaces"
	"market-climber/src/logger"
	"market-climber/src/models"
	"market-climber/src/utils"
)

// ErrEmptySnapshot is reported when upstream yields no movers at all
var ErrEmptySnapshot = errors.New("upstream returned no gainers and no losers")

// MinPollInterval bounds SetPollInterval
const MinPollInterval = time.Second

// Poller owns the dashboard state: it fetches on start, on every tick and on
// demand, and applies a result only if it is newer than the applied one.
type Poller struct {
	Config    *models.MConfig
	Provider  interfaces.IMarketDataProvider
	Scheduler *utils.MarketScheduler
	Logger    *logger.Logger
	Now       func() time.Time

	seq      atomic.Uint64
	interval atomic.Int64
	resetCh  chan struct{}
	running  atomic.Bool

	mu       sync.RWMutex
	state    models.MDashboardState
	applied  uint64
	inflight int
	version  uint64

	pubMu      sync.Mutex
	published  uint64
	publishers []interfaces.IStatePublisher
}

// -----------------------------------------------------------------------------

func NewPoller(cfg *models.MConfig, provider interfaces.IMarketDataProvider, scheduler *utils.MarketScheduler, log *logger.Logger) *Poller {
	if log == nil {
		log = logger.NewLogger(cfg, "Poller")
	}
	p := &Poller{
		Config:    cfg,
		Provider:  provider,
		Scheduler: scheduler,
		Logger:    log,
		Now:       time.Now,
		resetCh:   make(chan struct{}, 1),
		state: models.MDashboardState{
			Type:    models.StateTypeInitial,
			Loading: true,
		},
	}
	p.interval.Store(int64(time.Duration(cfg.DataSource.UpdateIntervalSeconds) * time.Second))
	return p
}

// -----------------------------------------------------------------------------

// AddPublisher registers a receiver for every new state
func (p *Poller) AddPublisher(pub interfaces.IStatePublisher) {
	p.pubMu.Lock()
	defer p.pubMu.Unlock()
	p.publishers = append(p.publishers, pub)
}

// -----------------------------------------------------------------------------

// State returns a deep copy of the current state
func (p *Poller) State() models.MDashboardState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.Clone()
}

// -----------------------------------------------------------------------------

// Snapshot returns a copy of the applied snapshot, if any
func (p *Poller) Snapshot() (models.MMarketSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.state.Snapshot == nil {
		return models.MMarketSnapshot{}, false
	}
	return p.state.Snapshot.Clone(), true
}

// -----------------------------------------------------------------------------

// Refresh fetches once and applies the result unless a newer fetch already
// landed or ctx ended first. It returns the state current after the fetch.
func (p *Poller) Refresh(ctx context.Context) models.MDashboardState {
	// 1. Take a sequence number and flag the refresh
	seq := p.seq.Add(1)
	p.commit(func(st *models.MDashboardState) {
		p.inflight++
		st.Refreshing = true
	})

	// 2. Fetch (never fails, may be fallback data)
	snapshot := p.Provider.GetMarketSnapshot(ctx)

	// 3. Apply if still the newest result. A fetch cut short by the caller's
	// own cancellation says nothing about the upstream and is dropped.
	cancelled := ctx.Err()
	return p.commit(func(st *models.MDashboardState) {
		p.inflight--
		st.Refreshing = p.inflight > 0

		if cancelled != nil {
			p.Logger.Debug("Discarding cancelled fetch #%d: %v", seq, cancelled)
			return
		}
		if seq <= p.applied {
			p.Logger.Debug("Discarding stale fetch #%d (applied #%d)", seq, p.applied)
			return
		}
		p.applied = seq
		st.Sequence = seq
		st.Type = models.StateTypeUpdate
		st.Loading = false
		st.UpdatedAt = p.Now().UnixMilli()

		if snapshot.IsEmpty() && !p.Config.Dashboard.AllowEmptySnapshot {
			st.Error = ErrEmptySnapshot.Error()
			p.Logger.Warning("Fetch #%d: %v; keeping previous snapshot", seq, ErrEmptySnapshot)
			return
		}

		snap := snapshot.Clone()
		summary := analysis.Summarize(snap)
		st.Snapshot = &snap
		st.Summary = &summary
		st.Error = ""
		p.Logger.Info("Applied fetch #%d: %d gainers, %d losers (%s)",
			seq, len(snap.Gainers), len(snap.Losers), snap.Source)
	})
}

// -----------------------------------------------------------------------------

// commit mutates the state under the lock, then publishes the result in order
func (p *Poller) commit(mutate func(st *models.MDashboardState)) models.MDashboardState {
	p.mu.Lock()
	mutate(&p.state)
	p.state.Market = p.marketStatus()
	p.version++
	version := p.version
	out := p.state.Clone()
	p.mu.Unlock()

	p.publish(version, out)
	return out
}

// -----------------------------------------------------------------------------

func (p *Poller) publish(version uint64, st models.MDashboardState) {
	p.pubMu.Lock()
	defer p.pubMu.Unlock()

	if version <= p.published {
		return
	}
	p.published = version
	for _, pub := range p.publishers {
		pub.Publish(st.Clone())
	}
}

// -----------------------------------------------------------------------------

func (p *Poller) marketStatus() models.MMarketStatus {
	if p.Scheduler == nil {
		return models.MMarketStatus{}
	}
	return models.MMarketStatus{
		Exchange: p.Scheduler.Exchange(),
		Open:     p.Scheduler.IsOpenAt(p.Now()),
	}
}

// -----------------------------------------------------------------------------

// PollInterval returns the current automatic refresh interval
func (p *Poller) PollInterval() time.Duration {
	return time.Duration(p.interval.Load())
}

// -----------------------------------------------------------------------------

// SetPollInterval changes the tick interval of the running loop
func (p *Poller) SetPollInterval(d time.Duration) error {
	if d < MinPollInterval {
		return fmt.Errorf("poll interval %v is below the minimum of %v", d, MinPollInterval)
	}
	p.interval.Store(int64(d))

	p.mu.Lock()
	p.Config.DataSource.UpdateIntervalSeconds = int(d / time.Second)
	p.mu.Unlock()

	// The loop re-reads the interval, so one pending signal is enough
	select {
	case p.resetCh <- struct{}{}:
	default:
	}

	p.Logger.Info("Poll interval set to %v", d)
	return nil
}

// -----------------------------------------------------------------------------

// Start fetches once, then on every tick until ctx is cancelled.
func (p *Poller) Start(ctx context.Context, wg *sync.WaitGroup) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("poller is already running")
	}

	wg.Add(1)
	go p.runLoop(ctx, wg)
	p.Logger.Info("Started poller (interval %v)", p.PollInterval())
	return nil
}

// -----------------------------------------------------------------------------

func (p *Poller) runLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer p.running.Store(false)

	p.Refresh(ctx)

	ticker := time.NewTicker(p.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Logger.Info("Poller stopped")
			return
		case <-p.resetCh:
			ticker.Reset(p.PollInterval())
		case <-ticker.C:
			if p.shouldSkipTick() {
				p.Logger.Debug("Exchange %s closed, skipping scheduled fetch", p.Scheduler.Exchange())
				continue
			}
			p.Refresh(ctx)
		}
	}
}

// -----------------------------------------------------------------------------

func (p *Poller) shouldSkipTick() bool {
	return p.Config.DataSource.PauseWhenClosed && p.Scheduler != nil && !p.Scheduler.IsOpenAt(p.Now())
}

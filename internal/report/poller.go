package report

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// StatsFetcher recomputes the dashboard stats from the live collections.
type StatsFetcher func(ctx context.Context) (DashboardStats, error)

// Snapshot is the last poll result. A failed refresh keeps the previous
// stats and carries the error; the next tick simply tries again, there is no
// backoff or retry beyond the fixed interval.
type Snapshot struct {
	Stats       DashboardStats
	Err         error
	RefreshedAt time.Time
}

// Poller refreshes the dashboard stats on a fixed interval. Ticks fire
// whether or not the previous refresh finished; whichever result lands last
// wins the snapshot.
type Poller struct {
	fetch    StatsFetcher
	interval time.Duration
	log      zerolog.Logger

	mu   sync.RWMutex
	last Snapshot

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewPoller(fetch StatsFetcher, interval time.Duration, log zerolog.Logger) *Poller {
	return &Poller{
		fetch:    fetch,
		interval: interval,
		log:      log.With().Str("component", "stats-poller").Logger(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling until Stop is called or ctx ends. The first refresh
// runs immediately so the dashboard never serves a zero snapshot for a full
// interval.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		defer close(p.done)

		p.refresh(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stop:
				return
			case <-ticker.C:
				go p.refresh(ctx)
			}
		}
	}()
}

// Stop ends the polling loop and waits for it to wind down.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}

// Latest returns the most recent snapshot.
func (p *Poller) Latest() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

func (p *Poller) refresh(ctx context.Context) {
	stats, err := p.fetch(ctx)

	p.mu.Lock()
	if err != nil {
		p.last.Err = err
		p.last.RefreshedAt = time.Now()
	} else {
		p.last = Snapshot{Stats: stats, RefreshedAt: time.Now()}
	}
	p.mu.Unlock()

	if err != nil {
		p.log.Error().Err(err).Msg("dashboard stats refresh failed")
	}
}

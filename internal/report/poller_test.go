package report

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestPollerRefreshesImmediately(t *testing.T) {
	var calls int64
	fetch := func(ctx context.Context) (DashboardStats, error) {
		atomic.AddInt64(&calls, 1)
		return DashboardStats{TotalPatients: 7}, nil
	}

	p := NewPoller(fetch, time.Hour, zerolog.Nop())
	p.Start(context.Background())
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := p.Latest(); !snap.RefreshedAt.IsZero() {
			if snap.Stats.TotalPatients != 7 {
				t.Errorf("TotalPatients = %d, want 7", snap.Stats.TotalPatients)
			}
			if snap.Err != nil {
				t.Errorf("Err = %v, want nil", snap.Err)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("poller never produced a snapshot")
}

func TestPollerKeepsStatsOnFetchError(t *testing.T) {
	var fail atomic.Bool
	fetch := func(ctx context.Context) (DashboardStats, error) {
		if fail.Load() {
			return DashboardStats{}, errors.New("postgres down")
		}
		return DashboardStats{TotalPatients: 3}, nil
	}

	p := NewPoller(fetch, 10*time.Millisecond, zerolog.Nop())
	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool { return p.Latest().Stats.TotalPatients == 3 })

	fail.Store(true)
	waitFor(t, func() bool { return p.Latest().Err != nil })

	// The last good numbers stay up while the fetch keeps failing.
	if snap := p.Latest(); snap.Stats.TotalPatients != 3 {
		t.Errorf("TotalPatients after failure = %d, want 3", snap.Stats.TotalPatients)
	}

	fail.Store(false)
	waitFor(t, func() bool { return p.Latest().Err == nil })
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := NewPoller(func(ctx context.Context) (DashboardStats, error) {
		return DashboardStats{}, nil
	}, time.Hour, zerolog.Nop())

	p.Start(context.Background())
	p.Stop()
	p.Stop()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

package prayer

import (
	"context"
	"time"
)

// Ticker re-runs Resolve on a fixed cadence against whatever schedule the snapshot
// func returns at that moment. It owns no schedule state of its own.
type Ticker struct {
	Interval time.Duration
	Snapshot func() Schedule
	Now      func() time.Time
}

func NewTicker(interval time.Duration, snapshot func() Schedule, now func() time.Time) *Ticker {
	if now == nil {
		now = time.Now
	}
	return &Ticker{Interval: interval, Snapshot: snapshot, Now: now}
}

// Run calls fn once immediately and then every Interval until ctx is done.
func (t *Ticker) Run(ctx context.Context, fn func(Next)) error {
	tk := time.NewTicker(t.Interval)
	defer tk.Stop()

	fn(Resolve(t.Snapshot(), t.Now()))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
			fn(Resolve(t.Snapshot(), t.Now()))
		}
	}
}

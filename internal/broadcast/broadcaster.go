// Package broadcast drives the next-prayer countdown and fans each tick out to
// the configured sinks (websocket clients, Redis, MQTT).
package broadcast

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

// Publisher is one destination for countdown updates.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, msg model.NextPrayer) error
}

// Recorder receives per-tick metrics. *metrics.Collector satisfies it.
type Recorder interface {
	RecordBroadcast(sink string, err error)
	SetSecondsToNext(seconds int64)
}

type Broadcaster struct {
	ticker     *prayer.Ticker
	publishers []Publisher
	recorder   Recorder

	mu      sync.RWMutex
	latest  model.NextPrayer
	hasLast bool
	failing map[string]bool
}

func New(ticker *prayer.Ticker, recorder Recorder, publishers ...Publisher) *Broadcaster {
	return &Broadcaster{
		ticker:     ticker,
		publishers: publishers,
		recorder:   recorder,
		failing:    make(map[string]bool),
	}
}

// Latest returns the payload of the most recent tick.
func (b *Broadcaster) Latest() (model.NextPrayer, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest, b.hasLast
}

// Run blocks until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) error {
	names := make([]string, 0, len(b.publishers))
	for _, p := range b.publishers {
		names = append(names, p.Name())
	}
	log.Info().Strs("sinks", names).Dur("interval", b.ticker.Interval).Msg("countdown broadcaster started")

	err := b.ticker.Run(ctx, func(n prayer.Next) {
		b.tick(ctx, model.NewNextPrayer(n))
	})
	log.Info().Msg("countdown broadcaster stopped")
	return err
}

func (b *Broadcaster) tick(ctx context.Context, msg model.NextPrayer) {
	b.mu.Lock()
	b.latest = msg
	b.hasLast = true
	b.mu.Unlock()

	if b.recorder != nil {
		b.recorder.SetSecondsToNext(msg.SecondsRemaining)
	}

	for _, p := range b.publishers {
		pctx, cancel := context.WithTimeout(ctx, publishTimeout(b.ticker.Interval))
		err := p.Publish(pctx, msg)
		cancel()

		if b.recorder != nil {
			b.recorder.RecordBroadcast(p.Name(), err)
		}
		b.trackFailure(p.Name(), err)
	}
}

// trackFailure logs only transitions so a dead sink does not flood the log once per tick.
func (b *Broadcaster) trackFailure(sink string, err error) {
	b.mu.Lock()
	wasFailing := b.failing[sink]
	b.failing[sink] = err != nil
	b.mu.Unlock()

	switch {
	case err != nil && !wasFailing:
		log.Warn().Err(err).Str("sink", sink).Msg("countdown publish failing")
	case err == nil && wasFailing:
		log.Info().Str("sink", sink).Msg("countdown publish recovered")
	}
}

func publishTimeout(interval time.Duration) time.Duration {
	if interval < time.Second {
		return time.Second
	}
	return interval
}

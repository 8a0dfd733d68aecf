package service

import (
	"context"
	"sync"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// DefaultEventRetryIntervals are the waits between delivery attempts.
var DefaultEventRetryIntervals = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	15 * time.Second,
	1 * time.Minute,
}

// EventDispatcher wraps an EventPublisher and delivers events in the
// background, retrying failed deliveries on a fixed schedule. Once a Wait
// gives up, pending retries are abandoned.
type EventDispatcher struct {
	next      ports.EventPublisher
	intervals []time.Duration
	log       zerolog.Logger
	wg        sync.WaitGroup
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewEventDispatcher creates a new background dispatcher around next.
func NewEventDispatcher(next ports.EventPublisher, intervals []time.Duration, log zerolog.Logger) *EventDispatcher {
	return &EventDispatcher{
		next:      next,
		intervals: intervals,
		log:       log,
		stop:      make(chan struct{}),
	}
}

// PublishTransferCompleted schedules delivery and returns immediately.
func (d *EventDispatcher) PublishTransferCompleted(ctx context.Context, event *domain.TransferCompleted) error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliverWithRetries(context.WithoutCancel(ctx), event)
	}()
	return nil
}

// Wait blocks until in-flight deliveries finish or ctx is done. When ctx
// ends first, deliveries still waiting to retry stop without another attempt.
func (d *EventDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.stopOnce.Do(func() { close(d.stop) })
		return ctx.Err()
	}
}

func (d *EventDispatcher) deliverWithRetries(ctx context.Context, event *domain.TransferCompleted) {
	for attempt := 0; attempt <= len(d.intervals); attempt++ {
		if attempt > 0 && !d.sleep(d.intervals[attempt-1]) {
			d.log.Warn().
				Int64("source_wallet_id", event.SourceWalletID).
				Int("attempt", attempt).
				Msg("event: dispatcher stopped, dropping pending retry")
			return
		}

		err := d.next.PublishTransferCompleted(ctx, event)
		if err == nil {
			d.log.Debug().
				Int64("source_wallet_id", event.SourceWalletID).
				Int("attempt", attempt+1).
				Msg("event: delivered")
			return
		}

		d.log.Warn().
			Err(err).
			Int64("source_wallet_id", event.SourceWalletID).
			Int("attempt", attempt+1).
			Msg("event: delivery failed")
	}

	d.log.Error().
		Int64("source_wallet_id", event.SourceWalletID).
		Int64("target_wallet_id", event.TargetWalletID).
		Msg("event: all retry attempts exhausted")
}

// sleep waits for d or until the dispatcher is stopped. It reports whether
// the full wait elapsed.
func (d *EventDispatcher) sleep(dur time.Duration) bool {
	timer := time.NewTimer(dur)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-d.stop:
		return false
	}
}

package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"moving-dispatch-service/internal/domain"
)

// DefaultQuoteInterval is how often a subscription re-quotes when the caller
// does not specify an interval.
const DefaultQuoteInterval = 30 * time.Second

// SubscribeToPriceUpdates delivers an immediate quote and then re-quotes on a
// fixed interval, invoking callback with each result (or the error that
// produced no result). It returns a cancel function.
//
// Cancel is idempotent and may be called from inside the callback itself, so
// a one-shot subscriber can take the first quote and unsubscribe. After cancel
// returns no new delivery starts; a callback already executing when cancel is
// called from another goroutine finishes normally. Cancelling the context has
// the same effect.
func (e *PricingEngine) SubscribeToPriceUpdates(
	ctx context.Context,
	factors domain.PricingFactors,
	callback func(domain.PricingResult, error),
	interval time.Duration,
) (func(), error) {
	if callback == nil {
		return nil, fmt.Errorf("subscribe to price updates: %w: callback must be non-nil", domain.ErrInvalidInput)
	}
	if err := factors.Validate(); err != nil {
		return nil, fmt.Errorf("subscribe to price updates: %w", err)
	}
	if interval <= 0 {
		interval = DefaultQuoteInterval
	}

	sub := &priceSubscription{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			result, err := e.CalculateDynamicPrice(ctx, factors)
			if !sub.deliver(callback, result, err) {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-sub.stop:
				return
			case <-ticker.C:
			}
		}
	}()

	return sub.cancel, nil
}

type priceSubscription struct {
	cancelled atomic.Bool
	stop      chan struct{}
	once      sync.Once
}

// deliver invokes the callback unless the subscription has been cancelled.
// The cancelled flag is re-checked after the callback returns: when the
// callback itself calls cancel, no further delivery starts. No lock is held
// across the callback, so reentrant cancellation cannot deadlock.
func (s *priceSubscription) deliver(cb func(domain.PricingResult, error), result domain.PricingResult, err error) bool {
	if s.cancelled.Load() {
		return false
	}
	cb(result, err)
	return !s.cancelled.Load()
}

func (s *priceSubscription) cancel() {
	s.cancelled.Store(true)
	s.once.Do(func() { close(s.stop) })
}

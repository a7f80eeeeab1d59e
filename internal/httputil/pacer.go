// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"sync"
	"time"
)

// Pacer spaces outgoing requests at least Interval apart. The zero value
// and a nil *Pacer never wait. A Pacer is safe for concurrent use.
type Pacer struct {
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewPacer returns a Pacer enforcing interval between requests.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{Interval: interval}
}

// Wait blocks until Interval has elapsed since the previous call returned,
// then reserves the current slot. It returns ctx.Err() if the context is
// cancelled first; the slot is not consumed in that case.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() && p.Interval > 0 {
		if wait := p.Interval - time.Since(p.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p.last = time.Now()
	return nil
}

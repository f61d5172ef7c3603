// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run classifies once immediately, then on every tick, and emits each
// PollResult on out. One goroutine per node. No overlap. No retries.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	if !p.emit(ctx, out) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.emit(ctx, out) {
				return
			}
		}
	}
}

func (p *Poller) emit(ctx context.Context, out chan<- PollResult) bool {
	res := p.PollOnce()
	select {
	case <-ctx.Done():
		return false
	case out <- res:
		return true
	}
}

// internal/watch/node.go
package watch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tamzrod/engine-watch/internal/poller"
)

// RunNode pairs a poller with its orchestrator until ctx is done.
func RunNode(ctx context.Context, p *poller.Poller, o *Orchestrator) error {
	out := make(chan poller.PollResult)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.Run(gctx, out)
		return nil
	})
	g.Go(func() error {
		o.Run(gctx, out)
		return nil
	})

	return g.Wait()
}

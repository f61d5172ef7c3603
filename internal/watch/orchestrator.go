// internal/watch/orchestrator.go
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/tamzrod/engine-watch/internal/engine"
	"github.com/tamzrod/engine-watch/internal/logging"
	"github.com/tamzrod/engine-watch/internal/poller"
	"github.com/tamzrod/engine-watch/internal/status"
	"github.com/tamzrod/engine-watch/internal/writer"
)

// Orchestrator owns one node's status snapshot.
// It consumes poll results, ticks the not-validated counter at 1Hz and
// delivers changes to the status writer when one is configured.
type Orchestrator struct {
	nodeID  string
	sw      writer.StatusWriter
	tracker *status.Tracker
	log     *slog.Logger

	last engine.Status
}

// NewOrchestrator builds an orchestrator. sw may be nil (publication disabled).
func NewOrchestrator(nodeID string, sw writer.StatusWriter, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		nodeID:  nodeID,
		sw:      sw,
		tracker: status.NewTracker(),
		log:     logging.ForNode(log, nodeID),
	}
}

// Snapshot returns the current published state.
func (o *Orchestrator) Snapshot() status.Snapshot {
	return o.tracker.Snapshot()
}

// Run blocks until ctx is done.
func (o *Orchestrator) Run(ctx context.Context, in <-chan poller.PollResult) {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	// Full block write on start (identity re-assert).
	o.publish("start")

	for {
		select {
		case <-ctx.Done():
			return
		case res := <-in:
			o.Handle(res)
		case <-secTicker.C:
			o.Tick()
		}
	}
}

// Handle folds one poll result into the snapshot.
func (o *Orchestrator) Handle(res poller.PollResult) {
	if res.Err != nil {
		o.log.Error("classification failed", slog.Any("err", res.Err))
	} else {
		o.logTransition(res.Status)
	}

	if o.tracker.Observe(res.Status, res.Err) {
		o.publish("result")
	}
}

// Tick advances seconds_not_validated while the node is not validated.
func (o *Orchestrator) Tick() {
	if o.tracker.Tick() {
		o.publish("tick")
	}
}

func (o *Orchestrator) logTransition(s engine.Status) {
	if s == o.last {
		return
	}
	from := o.last
	o.last = s

	attrs := []any{slog.String("from", from.String()), slog.String("to", s.String())}
	switch s {
	case engine.StatusValidated:
		o.log.Info("engine validated", attrs...)
	case engine.StatusUnavailable, engine.StatusOldVersion:
		o.log.Warn("engine status changed", attrs...)
	default:
		o.log.Info("engine status changed", attrs...)
	}
}

func (o *Orchestrator) publish(reason string) {
	if o.sw == nil {
		return
	}
	if err := o.sw.WriteStatus(o.tracker.Snapshot()); err != nil {
		o.log.Error("status write failed", slog.String("reason", reason), slog.Any("err", err))
	}
}

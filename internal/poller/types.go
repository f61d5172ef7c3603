// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/engine-watch/internal/engine"
)

// PollResult is what one classification cycle produced.
type PollResult struct {
	NodeID string
	At     time.Time

	// Status is valid only when Err is nil.
	Status engine.Status
	Err    error // non-nil means the classification propagated a local error
}

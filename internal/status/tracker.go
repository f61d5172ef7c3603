// internal/status/tracker.go
package status

import (
	"errors"

	"github.com/tamzrod/engine-watch/internal/engine"
)

// Tracker owns one node's Snapshot between classifications.
// It is not safe for concurrent use; one orchestrator goroutine owns it.
type Tracker struct {
	snap Snapshot
}

// NewTracker starts in the boot state.
func NewTracker() *Tracker {
	return &Tracker{snap: Snapshot{StatusCode: CodeUnclassified}}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

// Observe folds one classification outcome into the snapshot.
// A non-nil classifyErr is a propagated local error; s is ignored then.
// It reports whether anything changed.
func (t *Tracker) Observe(s engine.Status, classifyErr error) bool {
	next := t.snap

	if classifyErr != nil {
		next.StatusCode = CodeClassifyFailed
		next.LastErrorCode = ErrorCode(classifyErr)
	} else {
		next.StatusCode = s.Code()
		if s == engine.StatusValidated {
			next.LastErrorCode = 0
			next.SecondsNotValidated = 0
		}
	}

	changed := next != t.snap
	t.snap = next
	return changed
}

// Tick advances the not-validated counter by one second.
// It reports whether the snapshot changed.
func (t *Tracker) Tick() bool {
	if t.snap.Validated() {
		return false
	}
	if t.snap.SecondsNotValidated >= MaxSeconds {
		return false
	}
	t.snap.SecondsNotValidated++
	return true
}

// ErrorCode extracts a best-effort code from an error without assuming concrete types.
// If the error does not expose a code, returns 1 (generic error).
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	var pe *engine.ProbeError
	if errors.As(err, &pe) {
		return clampCode(pe.Code)
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	return 1
}

func clampCode(c int) uint16 {
	switch {
	case c <= 0:
		return 1
	case c > 0xFFFF:
		return 0xFFFF
	default:
		return uint16(c)
	}
}

// internal/status/snapshot.go
package status

import "github.com/tamzrod/engine-watch/internal/engine"

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	StatusCode          uint16
	LastErrorCode       uint16
	SecondsNotValidated uint16
}

// Validated reports whether the snapshot holds engine.StatusValidated.
func (s Snapshot) Validated() bool {
	return s.StatusCode == engine.StatusValidated.Code()
}

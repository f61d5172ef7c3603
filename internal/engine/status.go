// internal/engine/status.go
package engine

// Status is the lifecycle state of a managed node.
// The zero value is not a valid Status.
type Status uint16

const (
	StatusValidated Status = iota + 1
	StatusNeedsWallet
	StatusLocked
	StatusUnlocked
	StatusNotSynced
	StatusOldVersion
	StatusUnavailable
)

// Statuses lists every Status in code order.
func Statuses() []Status {
	return []Status{
		StatusValidated,
		StatusNeedsWallet,
		StatusLocked,
		StatusUnlocked,
		StatusNotSynced,
		StatusOldVersion,
		StatusUnavailable,
	}
}

func (s Status) String() string {
	switch s {
	case StatusValidated:
		return "VALIDATED"
	case StatusNeedsWallet:
		return "NEEDS_WALLET"
	case StatusLocked:
		return "LOCKED"
	case StatusUnlocked:
		return "UNLOCKED"
	case StatusNotSynced:
		return "NOT_SYNCED"
	case StatusOldVersion:
		return "OLD_VERSION"
	case StatusUnavailable:
		return "UNAVAILABLE"
	default:
		return "INVALID"
	}
}

// Valid reports whether s is one of the seven lifecycle states.
func (s Status) Valid() bool {
	return s >= StatusValidated && s <= StatusUnavailable
}

// Code is the register value published for s.
func (s Status) Code() uint16 {
	return uint16(s)
}

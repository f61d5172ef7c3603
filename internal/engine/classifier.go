// internal/engine/classifier.go
package engine

import (
	"errors"
	"fmt"
)

// step is one probe call in a classification pass.
type step uint8

const (
	stepInfo step = iota
	stepSeed
	stepAvailability
)

func (s step) String() string {
	switch s {
	case stepInfo:
		return "info"
	case stepSeed:
		return "seed"
	case stepAvailability:
		return "availability"
	default:
		return fmt.Sprintf("step(%d)", uint8(s))
	}
}

// outcome is a probe result reduced to what the tables branch on.
type outcome uint8

const (
	outcomeOK outcome = iota
	outcomeNotImplemented
	outcomeWalletExists
	outcomeOther
)

func (o outcome) String() string {
	switch o {
	case outcomeOK:
		return "ok"
	case outcomeNotImplemented:
		return "not_implemented"
	case outcomeWalletExists:
		return "wallet_exists"
	default:
		return "other"
	}
}

func outcomeOf(k ErrorKind) outcome {
	switch k {
	case KindNotImplemented:
		return outcomeNotImplemented
	case KindWalletExists:
		return outcomeWalletExists
	default:
		return outcomeOther
	}
}

type action uint8

const (
	actFinal     action = iota // return result
	actNext                    // run next step
	actInspect                 // decide from the info payload
	actPropagate               // hand the probe error to the caller
)

type transition[T any] struct {
	act    action
	next   step
	result T
}

func final[T any](v T) transition[T] {
	return transition[T]{act: actFinal, result: v}
}

func goTo[T any](s step) transition[T] {
	return transition[T]{act: actNext, next: s}
}

func inspect[T any]() transition[T] {
	return transition[T]{act: actInspect}
}

func propagate[T any]() transition[T] {
	return transition[T]{act: actPropagate}
}

// decisionTable is keyed by (step, outcome). Every reachable pair must be present.
type decisionTable[T any] map[step]map[outcome]transition[T]

var statusTable = decisionTable[Status]{
	stepInfo: {
		outcomeOK:             inspect[Status](),
		outcomeNotImplemented: goTo[Status](stepSeed),
		outcomeWalletExists:   final(StatusUnavailable),
		outcomeOther:          final(StatusUnavailable),
	},
	stepSeed: {
		// Unlocker accepted a seed request: no wallet was ever created.
		outcomeOK:             final(StatusNeedsWallet),
		outcomeNotImplemented: final(StatusUnavailable),
		outcomeWalletExists:   goTo[Status](stepAvailability),
		outcomeOther:          final(StatusUnavailable),
	},
	stepAvailability: {
		// Primary RPC came up after the info probe: unlocked out of band.
		outcomeOK:             final(StatusUnlocked),
		outcomeNotImplemented: final(StatusLocked),
		outcomeWalletExists:   final(StatusUnlocked),
		outcomeOther:          final(StatusUnlocked),
	},
}

// On the seed step, not_implemented means the unlocker never started and the
// primary RPC owns the port.
var unlockTable = decisionTable[bool]{
	stepSeed: {
		outcomeOK:             final(false),
		outcomeNotImplemented: final(true),
		outcomeWalletExists:   goTo[bool](stepAvailability),
		outcomeOther:          propagate[bool](),
	},
	stepAvailability: {
		outcomeOK:             final(true),
		outcomeNotImplemented: final(false),
		outcomeWalletExists:   final(true),
		outcomeOther:          final(true),
	},
}

// Classifier derives node lifecycle state from indirect probes.
// It holds no per-node state and is safe for concurrent use.
type Classifier struct {
	errs ErrorClassifier
}

// NewClassifier returns a Classifier using ec to read probe failures.
func NewClassifier(ec ErrorClassifier) *Classifier {
	return &Classifier{errs: ec}
}

// Classify runs one pass of the status decision table against e.
// Probe failures with a recognised shape become a Status; anything else is
// returned as an error.
func (c *Classifier) Classify(e *Engine) (Status, error) {
	if e == nil {
		return 0, errors.New("engine: nil engine")
	}
	return run(c, e, statusTable, stepInfo, func(info *Info) (Status, error) {
		return c.inspectInfo(e, info)
	})
}

// Unlocked reports whether the node's wallet is open.
// A seed probe failure of unknown kind is returned to the caller.
func (c *Classifier) Unlocked(e *Engine) (bool, error) {
	if e == nil {
		return false, errors.New("engine: nil engine")
	}
	return run(c, e, unlockTable, stepSeed, nil)
}

func (c *Classifier) inspectInfo(e *Engine, info *Info) (Status, error) {
	if len(info.Chains) != 1 || info.Chains[0].Chain != e.ChainName {
		return StatusUnlocked, nil
	}

	ok, err := AtLeast(info.Version, e.MinVersion)
	if err != nil {
		return 0, err
	}
	if !ok {
		return StatusOldVersion, nil
	}
	if !info.SyncedToChain {
		return StatusNotSynced, nil
	}
	return StatusValidated, nil
}

// probeResult is the observed effect of one step.
type probeResult struct {
	outcome outcome
	info    *Info
	err     error
}

// probe calls the probe behind s. The returned error is set only for
// failures that cannot be classified.
func (c *Classifier) probe(e *Engine, s step) (probeResult, error) {
	var (
		info *Info
		err  error
	)

	switch s {
	case stepInfo:
		if e.Info == nil {
			return probeResult{}, errors.New("engine: info probe not configured")
		}
		info, err = e.Info.GetInfo()
		if err == nil && info == nil {
			return probeResult{}, ErrMalformedInfo
		}
	case stepSeed:
		if e.Seed == nil {
			return probeResult{}, errors.New("engine: seed probe not configured")
		}
		err = e.Seed.GenSeed()
	case stepAvailability:
		if e.Availability == nil {
			return probeResult{}, errors.New("engine: availability probe not configured")
		}
		err = e.Availability.CheckAvailable()
	default:
		return probeResult{}, fmt.Errorf("engine: unknown %s", s)
	}

	if err == nil {
		return probeResult{outcome: outcomeOK, info: info}, nil
	}

	kind, ok := c.errs.Match(err)
	if !ok {
		return probeResult{}, fmt.Errorf("engine: %s probe: %w", s, err)
	}
	return probeResult{outcome: outcomeOf(kind), err: err}, nil
}

// run walks table from start. Each step is attempted at most once.
func run[T any](c *Classifier, e *Engine, table decisionTable[T], start step, inspectFn func(*Info) (T, error)) (T, error) {
	var zero T
	visited := make(map[step]bool, len(table))

	for cur := start; ; {
		if visited[cur] {
			return zero, fmt.Errorf("engine: %s step revisited", cur)
		}
		visited[cur] = true

		res, err := c.probe(e, cur)
		if err != nil {
			return zero, err
		}

		t, ok := table[cur][res.outcome]
		if !ok {
			return zero, fmt.Errorf("engine: no transition for %s/%s", cur, res.outcome)
		}

		switch t.act {
		case actFinal:
			return t.result, nil
		case actNext:
			cur = t.next
		case actInspect:
			if inspectFn == nil || res.info == nil {
				return zero, fmt.Errorf("engine: %s step cannot be inspected", cur)
			}
			return inspectFn(res.info)
		case actPropagate:
			return zero, res.err
		default:
			return zero, fmt.Errorf("engine: unknown action %d", t.act)
		}
	}
}

// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	"github.com/tamzrod/engine-watch/internal/engine"
)

// Classifier is the one operation the poller needs.
type Classifier interface {
	Classify(e *engine.Engine) (engine.Status, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	NodeID   string
	Interval time.Duration
}

// Poller is a dumb, clock-driven classifier loop for one node.
type Poller struct {
	cfg        Config
	engine     *engine.Engine
	classifier Classifier
	now        func() time.Time
}

// New creates a poller with immutable config.
func New(cfg Config, e *engine.Engine, c Classifier) (*Poller, error) {
	if cfg.NodeID == "" {
		return nil, errors.New("poller: node id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if e == nil {
		return nil, errors.New("poller: engine required")
	}
	if c == nil {
		return nil, errors.New("poller: classifier required")
	}
	return &Poller{cfg: cfg, engine: e, classifier: c, now: time.Now}, nil
}

// NodeID returns the node this poller watches.
func (p *Poller) NodeID() string {
	return p.cfg.NodeID
}

// PollOnce performs exactly one classification.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		NodeID: p.cfg.NodeID,
		At:     p.now(),
	}

	s, err := p.classifier.Classify(p.engine)
	if err != nil {
		res.Err = err
		return res
	}

	res.Status = s
	return res
}

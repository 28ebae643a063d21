package world

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/hauntedhouse/internal/assets"
)

// LoadState tracks a model request. A load leaves StateLoading exactly once.
type LoadState int

const (
	StateLoading LoadState = iota
	StateAttached
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAttached:
		return "attached"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// PendingLoad is one requested model and where it goes once loaded.
type PendingLoad struct {
	ID    uuid.UUID
	Spec  ModelSpec
	State LoadState
	Err   error
}

// LoadStats counts loads by state.
type LoadStats struct {
	Loading  int
	Attached int
	Failed   int
}

// Total returns the number of registered loads.
func (s LoadStats) Total() int {
	return s.Loading + s.Attached + s.Failed
}

// Loads is the registry of model requests, keyed by request ID.
type Loads struct {
	log     *zap.Logger
	pending map[uuid.UUID]*PendingLoad
	order   []uuid.UUID
}

// NewLoads creates an empty registry.
func NewLoads(log *zap.Logger) *Loads {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loads{
		log:     log,
		pending: make(map[uuid.UUID]*PendingLoad),
	}
}

// Register records a request in the loading state.
func (l *Loads) Register(id uuid.UUID, spec ModelSpec) *PendingLoad {
	p := &PendingLoad{ID: id, Spec: spec, State: StateLoading}
	if _, ok := l.pending[id]; !ok {
		l.order = append(l.order, id)
	}
	l.pending[id] = p
	return p
}

// Settle applies a completed result. It returns the load and true when the
// result succeeded and its subgraph should be attached now. Results for
// unknown or already settled requests are dropped.
func (l *Loads) Settle(r assets.ModelResult) (*PendingLoad, bool) {
	p, ok := l.pending[r.ID]
	if !ok {
		l.log.Debug("result for unknown load", zap.Stringer("id", r.ID), zap.String("path", r.Path))
		return nil, false
	}
	if p.State != StateLoading {
		l.log.Debug("duplicate load result",
			zap.String("name", p.Spec.Name),
			zap.Stringer("state", p.State))
		return p, false
	}

	if r.Err != nil || r.Root == nil {
		err := r.Err
		if err == nil {
			err = fmt.Errorf("load %s: empty scene", r.Path)
		}
		p.State = StateFailed
		p.Err = err
		l.log.Error("model load failed",
			zap.String("name", p.Spec.Name),
			zap.String("path", p.Spec.Path()),
			zap.Error(err))
		return p, false
	}

	p.State = StateAttached
	return p, true
}

// Get returns the load registered under id.
func (l *Loads) Get(id uuid.UUID) (*PendingLoad, bool) {
	p, ok := l.pending[id]
	return p, ok
}

// All returns every load in registration order.
func (l *Loads) All() []*PendingLoad {
	out := make([]*PendingLoad, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.pending[id])
	}
	return out
}

// Stats counts loads by state.
func (l *Loads) Stats() LoadStats {
	var s LoadStats
	for _, p := range l.pending {
		switch p.State {
		case StateLoading:
			s.Loading++
		case StateAttached:
			s.Attached++
		case StateFailed:
			s.Failed++
		}
	}
	return s
}

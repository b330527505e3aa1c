package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/huydhb/greenfarm-backend/pkg/logger"
)

const (
	defaultSessionTTL    = 2 * time.Hour
	defaultSweepInterval = time.Minute
	sweepJobName         = "session_sweep"
)

// SessionGauge receives the live session count after every change.
type SessionGauge interface {
	SetSessions(n int)
}

// SweepObserver records janitor runs.
type SweepObserver interface {
	ObserveRun(job string, duration time.Duration, removed int)
}

// RegistryParams configure the session registry.
type RegistryParams struct {
	Logger        *logger.Logger
	NewController func() *Controller
	TTL           time.Duration
	SweepInterval time.Duration
	Gauge         SessionGauge
	Sweeps        SweepObserver
	Now           func() time.Time
}

type session struct {
	mu       sync.Mutex
	ctrl     *Controller
	lastSeen time.Time
	inflight int
}

// Registry owns one Controller per session id and serialises the operations
// of each session.
type Registry struct {
	logg          *logger.Logger
	newController func() *Controller
	ttl           time.Duration
	interval      time.Duration
	gauge         SessionGauge
	sweeps        SweepObserver
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.NewController == nil {
		return nil, fmt.Errorf("controller factory required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	interval := params.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		logg:          params.Logger,
		newController: params.NewController,
		ttl:           ttl,
		interval:      interval,
		gauge:         params.Gauge,
		sweeps:        params.Sweeps,
		now:           now,
		sessions:      make(map[string]*session),
	}, nil
}

// Do runs fn against the controller of session id, creating the session on
// first use. Calls for the same id run one at a time in arrival order of the
// session lock.
func (r *Registry) Do(id string, fn func(*Controller) error) error {
	s := r.acquire(id)
	defer r.release(s)

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ctrl)
}

func (r *Registry) acquire(id string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &session{ctrl: r.newController()}
		r.sessions[id] = s
		r.reportLocked()
	}
	s.inflight++
	s.lastSeen = r.now()
	return s
}

func (r *Registry) release(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.inflight--
	s.lastSeen = r.now()
}

// Exists reports whether id names a live session.
func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed. Sessions with an operation in flight are never evicted.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.inflight > 0 || s.lastSeen.After(cutoff) {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	if removed > 0 {
		r.reportLocked()
	}
	return removed
}

// Run sweeps on a fixed cadence until the context is canceled.
func (r *Registry) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = r.logg.WithField(ctx, "job", sweepJobName)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logg.Info(ctx, "session janitor context canceled")
			return ctx.Err()
		case <-ticker.C:
			r.runSweep(ctx)
		}
	}
}

func (r *Registry) runSweep(ctx context.Context) {
	start := time.Now()
	removed := r.Sweep()
	duration := time.Since(start)
	if r.sweeps != nil {
		r.sweeps.ObserveRun(sweepJobName, duration, removed)
	}
	if removed == 0 {
		return
	}
	ctx = r.logg.WithFields(ctx, map[string]any{
		"event":       "session.sweep",
		"removed":     removed,
		"remaining":   r.Len(),
		"duration_ms": duration.Milliseconds(),
	})
	r.logg.Info(ctx, "idle sessions evicted")
}

func (r *Registry) reportLocked() {
	if r.gauge != nil {
		r.gauge.SetSessions(len(r.sessions))
	}
}

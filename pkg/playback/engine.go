package playback

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

// Engine drives playback sessions. There is at most one session per target.
// The engine is not safe for concurrent use, it is meant to be ticked from
// the frame loop.
type Engine struct {
	sessions map[string]*Session
	order    []string // target ids in start order
	hooks    Hooks
	l        *log.Logger
}

type EngineOption func(e *Engine)

// WithDefaultHooks sets the hooks used by sessions that don't bring their own.
func WithDefaultHooks(h Hooks) EngineOption {
	return func(e *Engine) {
		e.hooks = h
	}
}

func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) {
		e.l = l
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		sessions: make(map[string]*Session),
		order:    make([]string, 0),
		hooks:    NopHooks{},
		l:        log.Default().Named("playback"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type (
	startConfig struct {
		loop      bool
		exclusive bool
		hooks     Hooks
		onFinish  func(s *Session)
	}
	StartOption func(cfg *startConfig)
)

// WithLoop restarts the sequence from the first sample when exhausted.
func WithLoop(loop bool) StartOption {
	return func(cfg *startConfig) {
		cfg.loop = loop
	}
}

// WithExclusive makes Start fail with model.ErrInvalidState instead of
// replacing an active session on the same target.
func WithExclusive() StartOption {
	return func(cfg *startConfig) {
		cfg.exclusive = true
	}
}

func WithHooks(h Hooks) StartOption {
	return func(cfg *startConfig) {
		cfg.hooks = h
	}
}

// WithOnFinish registers a callback for the end of a non looping sequence.
// It is not called on explicit Stop.
func WithOnFinish(f func(s *Session)) StartOption {
	return func(cfg *startConfig) {
		cfg.onFinish = f
	}
}

// Start begins playback of seq on target. An existing session on the same
// target is stopped first. The session works on a copy of seq.
//
//nolint:whitespace // editor/linter issue
func (e *Engine) Start(
	seq []model.Pose,
	interval float64,
	target Target,
	opts ...StartOption,
) (*Session, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("start playback on %s: %w", target.ID(), model.ErrEmptySequence)
	}
	if !(interval > 0) {
		return nil, model.ErrInvalidInterval
	}
	cfg := &startConfig{hooks: e.hooks}
	for _, opt := range opts {
		opt(cfg)
	}

	if e.Active(target.ID()) && cfg.exclusive {
		return nil, fmt.Errorf("target %s already has an active session: %w",
			target.ID(), model.ErrInvalidState)
	}
	e.Stop(target.ID())

	s := &Session{
		id:       uuid.New(),
		engine:   e,
		target:   target,
		seq:      slices.Clone(seq),
		interval: interval,
		loop:     cfg.loop,
		hooks:    cfg.hooks,
		onFinish: cfg.onFinish,
	}
	s.hooks.Setup(target)
	s.prime()
	s.active = true
	e.sessions[target.ID()] = s
	e.order = append(e.order, target.ID())
	e.l.Debug("started playback",
		log.String("session", s.id.String()),
		log.String("target", target.ID()),
		log.Int("samples", len(s.seq)),
		log.Bool("loop", s.loop))
	return s, nil
}

// StartLap is a shortcut for Start with the samples of l.
//
//nolint:whitespace // editor/linter issue
func (e *Engine) StartLap(
	l *lap.Lap,
	interval float64,
	target Target,
	opts ...StartOption,
) (*Session, error) {
	return e.Start(l.Samples(), interval, target, opts...)
}

// Tick advances all active sessions in the order they were started.
func (e *Engine) Tick(dt float64) {
	for _, id := range slices.Clone(e.order) {
		if s, ok := e.sessions[id]; ok {
			s.Tick(dt)
		}
	}
}

// Stop terminates the session on the target. No-op if there is none.
func (e *Engine) Stop(targetID string) {
	if s, ok := e.sessions[targetID]; ok {
		s.Stop()
	}
}

// StopAll terminates every session.
func (e *Engine) StopAll() {
	for _, id := range slices.Clone(e.order) {
		e.Stop(id)
	}
}

func (e *Engine) Active(targetID string) bool {
	_, ok := e.sessions[targetID]
	return ok
}

func (e *Engine) Session(targetID string) (*Session, bool) {
	s, ok := e.sessions[targetID]
	return s, ok
}

func (e *Engine) remove(s *Session) {
	if cur, ok := e.sessions[s.target.ID()]; ok && cur == s {
		delete(e.sessions, s.target.ID())
		e.order = slices.DeleteFunc(e.order, func(id string) bool {
			return id == s.target.ID()
		})
	}
}

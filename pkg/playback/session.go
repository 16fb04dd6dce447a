package playback

import (
	"math"

	"github.com/google/uuid"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

// Session replays one sample sequence on one target.
//
// Invariant while active: 0 <= acc < interval after each Tick, so the
// interpolation fraction stays within [0,1).
type Session struct {
	id       uuid.UUID
	engine   *Engine
	target   Target
	seq      []model.Pose
	interval float64
	cursor   int // index of the next sample to fetch
	acc      float64
	last     model.Pose
	next     model.Pose
	loop     bool
	active   bool
	hooks    Hooks
	onFinish func(s *Session)
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Target() Target {
	return s.target
}

func (s *Session) Active() bool {
	return s.active
}

func (s *Session) Loop() bool {
	return s.loop
}

// Cursor returns the index of the next sample to be fetched.
func (s *Session) Cursor() int {
	return s.cursor
}

// Fraction returns the current interpolation fraction.
func (s *Session) Fraction() float64 {
	return s.acc / s.interval
}

// prime snaps the target onto the first sample, which counts as fetched.
func (s *Session) prime() {
	s.acc = 0
	s.next = s.seq[0]
	s.last = s.next
	s.cursor = 1
	s.target.SetPose(s.next)
}

func (s *Session) fetch() bool {
	if s.cursor >= len(s.seq) {
		return false
	}
	s.next = s.seq[s.cursor]
	s.cursor++
	return true
}

// Tick advances the session by dt seconds and updates the target pose.
// If dt spans several intervals the intermediate samples are skipped so the
// target catches up with real time. A negative dt is ignored.
func (s *Session) Tick(dt float64) {
	if !s.active || dt < 0 || math.IsNaN(dt) {
		return
	}
	s.acc += dt
	for s.acc >= s.interval {
		s.last = s.next
		if !s.fetch() {
			if !s.loop {
				s.target.SetPose(s.last)
				s.finish()
				return
			}
			s.cursor = 0
			s.fetch()
		}
		s.acc -= s.interval
	}
	s.target.SetPose(model.Interpolate(s.last, s.next, s.acc/s.interval))
}

// Stop ends the session and hands the target back to its owner.
// Safe to call on an inactive session.
func (s *Session) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.engine.remove(s)
	s.hooks.Restore(s.target)
	s.engine.l.Debug("stopped playback",
		log.String("session", s.id.String()),
		log.String("target", s.target.ID()),
		log.Int("cursor", s.cursor))
}

func (s *Session) finish() {
	s.Stop()
	if s.onFinish != nil {
		s.onFinish(s)
	}
}

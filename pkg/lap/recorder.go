package lap

import (
	"fmt"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

// Recorder samples the pose of an entity into the current lap.
type Recorder struct {
	interval float64
	acc      float64
	current  *Lap
	l        *log.Logger
}

type RecorderOption func(r *Recorder)

func WithLogger(l *log.Logger) RecorderOption {
	return func(r *Recorder) {
		r.l = l
	}
}

func NewRecorder(interval float64, opts ...RecorderOption) (*Recorder, error) {
	if !(interval > 0) {
		return nil, model.ErrInvalidInterval
	}
	r := &Recorder{
		interval: interval,
		l:        log.Default().Named("recorder"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Recorder) Interval() float64 {
	return r.interval
}

// BeginLap starts recording a fresh lap. A lap still being recorded is
// dropped.
func (r *Recorder) BeginLap(number int) *Lap {
	if r.current != nil {
		r.l.Warn("discarding unsealed lap", log.Int("lap", r.current.Number))
	}
	r.current = New(number)
	r.acc = 0
	r.l.Debug("begin lap", log.Int("lap", number))
	return r.current
}

// Tick must be called once per frame after the entity pose has settled.
func (r *Recorder) Tick(dt float64, pose model.Pose) {
	if r.current == nil {
		return
	}
	dt = clampDelta(dt)
	//nolint:errcheck // current is never sealed while recording
	r.current.AddTime(dt)
	var emit int
	r.acc, emit = Advance(r.acc, dt, r.interval)
	if emit > 0 {
		//nolint:errcheck // see above
		r.current.Append(pose)
	}
}

// SealLap stops sampling and returns the completed lap.
func (r *Recorder) SealLap() (*Lap, error) {
	if r.current == nil {
		return nil, fmt.Errorf("no lap is being recorded: %w", model.ErrInvalidState)
	}
	ret := r.current
	ret.Seal()
	r.current = nil
	r.l.Debug("sealed lap",
		log.Int("lap", ret.Number),
		log.Float("duration", ret.Duration),
		log.Int("samples", ret.Len()))
	return ret, nil
}

func (r *Recorder) Recording() bool {
	return r.current != nil
}

// Current returns the lap being recorded, nil if none.
func (r *Recorder) Current() *Lap {
	return r.current
}

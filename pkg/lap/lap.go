package lap

import (
	"fmt"

	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

// Lap holds the samples recorded during one lap.
// Samples are only appended while the lap is open. Once sealed the lap is
// read-only and may be shared with playback sessions and aggregates.
type Lap struct {
	Number   int
	Duration float64 // seconds
	samples  []model.Pose
	sealed   bool
}

func New(number int) *Lap {
	return &Lap{Number: number, samples: make([]model.Pose, 0)}
}

// FromSamples creates a sealed lap, used when importing persisted data.
func FromSamples(number int, duration float64, samples []model.Pose) *Lap {
	s := make([]model.Pose, len(samples))
	copy(s, samples)
	return &Lap{Number: number, Duration: duration, samples: s, sealed: true}
}

func (l *Lap) Append(p model.Pose) error {
	if l.sealed {
		return fmt.Errorf("append to sealed lap %d: %w", l.Number, model.ErrInvalidState)
	}
	l.samples = append(l.samples, p)
	return nil
}

// AddTime accumulates recording time on an open lap.
func (l *Lap) AddTime(dt float64) error {
	if l.sealed {
		return fmt.Errorf("add time to sealed lap %d: %w", l.Number, model.ErrInvalidState)
	}
	l.Duration += dt
	return nil
}

func (l *Lap) Seal() {
	l.sealed = true
}

func (l *Lap) Sealed() bool {
	return l.sealed
}

func (l *Lap) Len() int {
	return len(l.samples)
}

// SampleAt returns the sample at index i. ok is false if i is out of range.
func (l *Lap) SampleAt(i int) (p model.Pose, ok bool) {
	if i < 0 || i >= len(l.samples) {
		return model.Pose{Rotation: model.IdentityQuat()}, false
	}
	return l.samples[i], true
}

// Samples returns a copy of the recorded samples.
func (l *Lap) Samples() []model.Pose {
	ret := make([]model.Pose, len(l.samples))
	copy(ret, l.samples)
	return ret
}

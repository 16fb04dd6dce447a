package race

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

// Race groups the completed laps of one race on a track.
type Race struct {
	TrackID   string
	LapCount  int     // number of laps the race is run over
	TotalTime float64 // seconds
	laps      []*lap.Lap
	sealed    bool
}

func New(trackID string, lapCount int) *Race {
	return &Race{
		TrackID:  trackID,
		LapCount: lapCount,
		laps:     make([]*lap.Lap, 0, max(lapCount, 0)),
	}
}

// AddLap appends a completed lap. Lap numbers must be strictly increasing.
func (r *Race) AddLap(l *lap.Lap) error {
	switch {
	case r.sealed:
		return fmt.Errorf("race on %s is sealed: %w", r.TrackID, model.ErrInvalidState)
	case len(r.laps) >= r.LapCount:
		return fmt.Errorf("race on %s already has %d laps: %w",
			r.TrackID, r.LapCount, model.ErrInvalidState)
	case len(r.laps) > 0 && l.Number <= r.laps[len(r.laps)-1].Number:
		return fmt.Errorf("lap %d does not follow lap %d: %w",
			l.Number, r.laps[len(r.laps)-1].Number, model.ErrInvalidState)
	}
	l.Seal()
	r.laps = append(r.laps, l)
	r.TotalTime += l.Duration
	return nil
}

func (r *Race) Seal() {
	r.sealed = true
}

func (r *Race) Sealed() bool {
	return r.sealed
}

// Complete reports whether all laps of the race are recorded.
func (r *Race) Complete() bool {
	return len(r.laps) == r.LapCount
}

func (r *Race) Laps() []*lap.Lap {
	ret := make([]*lap.Lap, len(r.laps))
	copy(ret, r.laps)
	return ret
}

func (r *Race) BestLap() (*lap.Lap, bool) {
	return BestLap(r.laps)
}

// BestLap returns the lap with the shortest duration.
// On ties the earliest lap wins.
func BestLap(laps []*lap.Lap) (*lap.Lap, bool) {
	if len(laps) == 0 {
		return nil, false
	}
	return lo.MinBy(laps, func(a, b *lap.Lap) bool {
		return a.Duration < b.Duration
	}), true
}

// Merge concatenates the samples of laps into one composite lap (number 0).
// The composite is sealed and may be used as a single playback source.
func Merge(laps ...*lap.Lap) *lap.Lap {
	samples := lo.FlatMap(laps, func(l *lap.Lap, _ int) []model.Pose {
		return l.Samples()
	})
	duration := lo.SumBy(laps, func(l *lap.Lap) float64 { return l.Duration })
	return lap.FromSamples(0, duration, samples)
}

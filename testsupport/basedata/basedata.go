// Package basedata provides sample laps and races for tests.
package basedata

import (
	"log"

	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
)

const TestTrack = "Monza"

// SamplePoses returns n poses along the x axis, one unit apart, starting at
// offset.
func SamplePoses(n int, offset float64) []model.Pose {
	ret := make([]model.Pose, n)
	for i := range n {
		ret[i] = model.NewPose(
			model.Vec3{X: offset + float64(i)},
			model.IdentityQuat())
	}
	return ret
}

// SampleLap creates a sealed lap with n samples.
func SampleLap(number int, duration float64, n int) *lap.Lap {
	return lap.FromSamples(number, duration, SamplePoses(n, float64(number*100)))
}

// SampleRace creates a sealed race with one lap per given duration.
// Each lap has 3 samples.
func SampleRace(track string, durations ...float64) *race.Race {
	r := race.New(track, len(durations))
	for i, d := range durations {
		if err := r.AddLap(SampleLap(i+1, d, 3)); err != nil {
			log.Fatalf("SampleRace: %v", err)
		}
	}
	r.Seal()
	return r
}

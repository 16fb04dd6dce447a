package codec

import (
	"encoding/json"
	"fmt"

	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
)

func ToLapRecord(l *lap.Lap) LapRecord {
	samples := l.Samples()
	ret := LapRecord{
		LapNo:        l.Number,
		LapTime:      l.Duration,
		CarPositions: make([]model.Vec3, len(samples)),
		CarRotations: make([]model.Quat, len(samples)),
	}
	for i, s := range samples {
		ret.CarPositions[i] = s.Position
		ret.CarRotations[i] = s.Rotation
	}
	return ret
}

// FromLapRecord validates rec and creates a sealed lap with the given number.
func FromLapRecord(rec *LapRecord, number int) (*lap.Lap, error) {
	if len(rec.CarPositions) != len(rec.CarRotations) {
		return nil, fmt.Errorf("%d positions but %d rotations: %w",
			len(rec.CarPositions), len(rec.CarRotations), model.ErrMalformedRecord)
	}
	samples := make([]model.Pose, len(rec.CarPositions))
	for i := range rec.CarPositions {
		samples[i] = model.NewPose(rec.CarPositions[i], rec.CarRotations[i])
	}
	return lap.FromSamples(number, rec.LapTime, samples), nil
}

func ToRaceRecord(r *race.Race) RaceRecord {
	laps := r.Laps()
	ret := RaceRecord{
		TrackName: r.TrackID,
		LapNumber: r.LapCount,
		RaceTime:  r.TotalTime,
		Laps:      make([]LapRecord, len(laps)),
	}
	for i, l := range laps {
		ret.Laps[i] = ToLapRecord(l)
	}
	return ret
}

type (
	importConfig struct {
		renumber bool
	}
	ImportOption func(cfg *importConfig)
)

// WithRenumber controls lap numbering on race import. When enabled (the
// default) laps are numbered 1..n in stored order. Otherwise the stored lap
// numbers are used, records without a number keep their position.
func WithRenumber(renumber bool) ImportOption {
	return func(cfg *importConfig) {
		cfg.renumber = renumber
	}
}

func FromRaceRecord(rec *RaceRecord, opts ...ImportOption) (*race.Race, error) {
	cfg := &importConfig{renumber: true}
	for _, opt := range opts {
		opt(cfg)
	}
	lapCount := rec.LapNumber
	if len(rec.Laps) > lapCount {
		if lapCount != 0 {
			return nil, fmt.Errorf("%d laps stored for a %d lap race: %w",
				len(rec.Laps), rec.LapNumber, model.ErrMalformedRecord)
		}
		lapCount = len(rec.Laps) // field missing
	}
	r := race.New(rec.TrackName, lapCount)
	for i := range rec.Laps {
		number := i + 1
		if !cfg.renumber && rec.Laps[i].LapNo > 0 {
			number = rec.Laps[i].LapNo
		}
		l, err := FromLapRecord(&rec.Laps[i], number)
		if err != nil {
			return nil, fmt.Errorf("lap %d: %w", i+1, err)
		}
		if err := r.AddLap(l); err != nil {
			return nil, fmt.Errorf("lap %d: %w: %w", i+1, model.ErrMalformedRecord, err)
		}
	}
	// the stored race time wins over the sum of the lap times
	if rec.RaceTime > 0 {
		r.TotalTime = rec.RaceTime
	}
	r.Seal()
	return r, nil
}

func ExportLap(l *lap.Lap) ([]byte, error) {
	return json.Marshal(ToLapRecord(l))
}

// ImportLap parses a lap record. Missing fields are treated as default values.
func ImportLap(data []byte, number int) (*lap.Lap, error) {
	var rec LapRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedRecord, err)
	}
	return FromLapRecord(&rec, number)
}

func ExportRace(r *race.Race) ([]byte, error) {
	return json.Marshal(ToRaceRecord(r))
}

func ImportRace(data []byte, opts ...ImportOption) (*race.Race, error) {
	var rec RaceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedRecord, err)
	}
	return FromRaceRecord(&rec, opts...)
}

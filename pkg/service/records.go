//nolint:whitespace //can't make both the linter and editor happy :(
package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/codec"
	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
	"github.com/mpapenbr/ghostlap-go/pkg/store"
)

var meter = otel.Meter("github.com/mpapenbr/ghostlap-go/pkg/service")

// RecordService keeps the best race per track and lap count and the best
// lap per track.
type RecordService struct {
	store      *store.Layered
	importOpts []codec.ImportOption
	raceTimes  metric.Float64Histogram
	l          *log.Logger
}

// SubmitResult tells which records were replaced by a submitted race.
type SubmitResult struct {
	BestRace bool
	BestLap  bool
}

type RecordServiceOption func(s *RecordService)

func WithImportOptions(opts ...codec.ImportOption) RecordServiceOption {
	return func(s *RecordService) {
		s.importOpts = opts
	}
}

func WithLogger(l *log.Logger) RecordServiceOption {
	return func(s *RecordService) {
		s.l = l
	}
}

func NewRecordService(st *store.Layered, opts ...RecordServiceOption) *RecordService {
	ret := &RecordService{
		store: st,
		l:     log.Default().Named("records"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	var err error
	if ret.raceTimes, err = meter.Float64Histogram("ghostlap.race.time",
		metric.WithDescription("total time of submitted races"),
		metric.WithUnit("s")); err != nil {
		ret.l.Warn("could not create race time histogram", log.ErrorField(err))
	}
	return ret
}

// LoadBestRace returns the best race for track with the given number of laps.
// found is false if there is none.
func (s *RecordService) LoadBestRace(
	ctx context.Context,
	track string,
	laps int,
) (r *race.Race, found bool, err error) {
	key := store.BestRaceKey(track, laps)
	data, found, err := s.store.Lookup(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	if r, err = codec.ImportRace(data, s.importOpts...); err != nil {
		return nil, false, fmt.Errorf("%s: %w", key, err)
	}
	return r, true, nil
}

// LoadBestLap returns the best lap for track. found is false if there is none.
func (s *RecordService) LoadBestLap(
	ctx context.Context,
	track string,
) (l *lap.Lap, found bool, err error) {
	key := store.BestLapKey(track)
	data, found, err := s.store.Lookup(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	if l, err = codec.ImportLap(data, 1); err != nil {
		return nil, false, fmt.Errorf("%s: %w", key, err)
	}
	return l, true, nil
}

// SubmitRace stores r as best race if it is faster than the stored one
// (or there is none). Its best lap replaces the stored best lap of the track
// under the same condition. r must be a sealed race with all laps driven.
// If the best race was stored but the best lap could not be, the returned
// result has BestRace set along with the error.
func (s *RecordService) SubmitRace(ctx context.Context, r *race.Race) (*SubmitResult, error) {
	if !r.Sealed() || !r.Complete() {
		return nil, fmt.Errorf("race on %s is not finished: %w", r.TrackID, model.ErrInvalidState)
	}
	if s.raceTimes != nil {
		s.raceTimes.Record(ctx, r.TotalTime,
			metric.WithAttributes(attribute.String("track", r.TrackID)))
	}
	ret := &SubmitResult{}

	prev, found, err := s.LoadBestRace(ctx, r.TrackID, r.LapCount)
	if err != nil {
		return nil, err
	}
	if !found || r.TotalTime < prev.TotalTime {
		data, err := codec.ExportRace(r)
		if err != nil {
			return nil, err
		}
		if err := s.store.Save(ctx, store.BestRaceKey(r.TrackID, r.LapCount), data); err != nil {
			return nil, err
		}
		ret.BestRace = true
		s.l.Info("new best race",
			log.String("track", r.TrackID),
			log.Int("laps", r.LapCount),
			log.Float("time", r.TotalTime))
	}

	best, ok := r.BestLap()
	if !ok {
		return ret, nil
	}
	// ret tells the caller about a best race stored before a failure
	prevLap, found, err := s.LoadBestLap(ctx, r.TrackID)
	if err != nil {
		return ret, err
	}
	if !found || best.Duration < prevLap.Duration {
		data, err := codec.ExportLap(best)
		if err != nil {
			return ret, err
		}
		if err := s.store.Save(ctx, store.BestLapKey(r.TrackID), data); err != nil {
			return ret, err
		}
		ret.BestLap = true
		s.l.Info("new best lap",
			log.String("track", r.TrackID),
			log.Int("lap", best.Number),
			log.Float("time", best.Duration))
	}
	return ret, nil
}

// ReplayBestRace returns the laps of the best race merged into one lap,
// ready to be replayed in a single playback session.
func (s *RecordService) ReplayBestRace(
	ctx context.Context,
	track string,
	laps int,
) (l *lap.Lap, found bool, err error) {
	r, found, err := s.LoadBestRace(ctx, track, laps)
	if err != nil || !found {
		return nil, false, err
	}
	return race.Merge(r.Laps()...), true, nil
}

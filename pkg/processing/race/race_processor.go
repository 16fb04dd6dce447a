package race

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/playback"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
)

const DefaultSampleInterval = 0.1

var (
	ErrNoCheckpoints = errors.New("at least one checkpoint (the goal line) is required")
	ErrInvalidLaps   = errors.New("number of laps must be > 0")
)

// RaceProcessor drives a single player race: it follows the player through
// the checkpoint ring, records every lap and lets the ghost of the best lap
// so far drive alongside from the second lap on.
type RaceProcessor struct {
	track       string
	lapCount    int
	checkpoints []*Checkpoint
	next        int
	interval    float64
	recorder    *lap.Recorder
	engine      *playback.Engine
	ghost       playback.Target
	race        *race.Race
	active      bool
	elapsed     float64
	handler     EventHandler
	l           *log.Logger
}

type RaceProcessorOption func(rp *RaceProcessor)

func WithSampleInterval(interval float64) RaceProcessorOption {
	return func(rp *RaceProcessor) {
		rp.interval = interval
	}
}

// WithGhost sets the engine and the entity that replays the best lap.
// Without it no ghost is shown.
func WithGhost(engine *playback.Engine, target playback.Target) RaceProcessorOption {
	return func(rp *RaceProcessor) {
		rp.engine = engine
		rp.ghost = target
	}
}

func WithEventHandler(h EventHandler) RaceProcessorOption {
	return func(rp *RaceProcessor) {
		rp.handler = h
	}
}

func WithLogger(l *log.Logger) RaceProcessorOption {
	return func(rp *RaceProcessor) {
		rp.l = l
	}
}

// NewRaceProcessor creates a processor for a race of lapCount laps.
// checkpoints[0] is the goal line. All checkpoints are bound to the
// processor.
//
//nolint:whitespace // editor/linter issue
func NewRaceProcessor(
	track string,
	lapCount int,
	checkpoints []*Checkpoint,
	opts ...RaceProcessorOption,
) (*RaceProcessor, error) {
	if len(checkpoints) == 0 {
		return nil, ErrNoCheckpoints
	}
	if lapCount <= 0 {
		return nil, ErrInvalidLaps
	}
	ret := &RaceProcessor{
		track:       track,
		lapCount:    lapCount,
		checkpoints: checkpoints,
		interval:    DefaultSampleInterval,
		handler:     NopEventHandler{},
		l:           log.Default().Named("race"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	var err error
	if ret.recorder, err = lap.NewRecorder(ret.interval,
		lap.WithLogger(ret.l.Named("recorder"))); err != nil {
		return nil, err
	}
	for _, cp := range checkpoints {
		cp.Bind(ret)
	}
	return ret, nil
}

// PassCheckpoint handles the player crossing cp. Crossing any checkpoint
// other than the expected next one only raises WrongCheckpoint.
func (p *RaceProcessor) PassCheckpoint(cp *Checkpoint) error {
	if p.Finished() {
		return fmt.Errorf("race on %s is finished: %w", p.track, model.ErrInvalidState)
	}
	idx := lo.IndexOf(p.checkpoints, cp)
	if idx != p.next {
		p.l.Debug("wrong checkpoint",
			log.String("checkpoint", cp.Name),
			log.String("expected", p.checkpoints[p.next].Name))
		p.handler.WrongCheckpoint(cp)
		return nil
	}
	if idx == 0 {
		if err := p.passGoal(); err != nil {
			return err
		}
	}
	p.next = (p.next + 1) % len(p.checkpoints)
	return nil
}

func (p *RaceProcessor) passGoal() error {
	if p.race == nil {
		p.race = race.New(p.track, p.lapCount)
		p.active = true
		p.l.Info("race started",
			log.String("track", p.track), log.Int("laps", p.lapCount))
		p.beginLap(1)
		return nil
	}

	p.stopGhost()
	done, err := p.recorder.SealLap()
	if err != nil {
		return err
	}
	if err := p.race.AddLap(done); err != nil {
		return err
	}
	best, _ := p.race.BestLap()
	p.l.Info("lap completed",
		log.Int("lap", done.Number),
		log.Float("time", done.Duration),
		log.Bool("best", best == done))
	p.handler.LapCompleted(done, best == done)

	if p.race.Complete() {
		p.race.Seal()
		p.active = false
		p.l.Info("race finished",
			log.String("track", p.track),
			log.Float("time", p.race.TotalTime))
		p.handler.RaceFinished(p.race)
		return nil
	}
	p.beginLap(done.Number + 1)
	p.startGhost(best)
	return nil
}

func (p *RaceProcessor) beginLap(number int) {
	p.recorder.BeginLap(number)
	p.handler.LapStarted(number, number == p.lapCount)
}

func (p *RaceProcessor) startGhost(best *lap.Lap) {
	if p.engine == nil || p.ghost == nil || best == nil {
		return
	}
	if _, err := p.engine.StartLap(best, p.interval, p.ghost); err != nil {
		// a lap shorter than one sample interval has nothing to replay
		p.l.Warn("ghost not started",
			log.Int("lap", best.Number), log.ErrorField(err))
	}
}

func (p *RaceProcessor) stopGhost() {
	if p.engine != nil && p.ghost != nil {
		p.engine.Stop(p.ghost.ID())
	}
}

// Tick advances recording and ghost playback by dt seconds. pose is the
// player pose at the end of the frame.
func (p *RaceProcessor) Tick(dt float64, pose model.Pose) {
	if p.active {
		if dt > 0 {
			p.elapsed += dt
		}
		p.recorder.Tick(dt, pose)
	}
	if p.engine != nil {
		p.engine.Tick(dt)
	}
}

func (p *RaceProcessor) Started() bool {
	return p.race != nil
}

func (p *RaceProcessor) Finished() bool {
	return p.race != nil && p.race.Sealed()
}

// Race returns the race being driven, nil before the start.
func (p *RaceProcessor) Race() *race.Race {
	return p.race
}

// CurrentLap returns the number of the lap being recorded, 0 if none.
func (p *RaceProcessor) CurrentLap() int {
	if l := p.recorder.Current(); l != nil {
		return l.Number
	}
	return 0
}

// NextCheckpoint is the checkpoint the player has to cross next.
func (p *RaceProcessor) NextCheckpoint() *Checkpoint {
	return p.checkpoints[p.next]
}

// Elapsed is the wall time since the start of the race.
func (p *RaceProcessor) Elapsed() float64 {
	return p.elapsed
}

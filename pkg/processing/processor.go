package processing

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/playback"
	"github.com/mpapenbr/ghostlap-go/pkg/processing/car"
	"github.com/mpapenbr/ghostlap-go/pkg/processing/race"
	"github.com/mpapenbr/ghostlap-go/pkg/processing/util"
)

const GhostID = "ghost"

// Processor feeds recorded player frames into a race processor. It owns the
// playback engine and the ghost car.
type Processor struct {
	raceProcessor *race.RaceProcessor
	checkpoints   map[string]*race.Checkpoint
	engine        *playback.Engine
	ghost         *car.Car
	frames        int
	l             *log.Logger
}

type config struct {
	interval float64
	handler  race.EventHandler
	ghost    bool
	l        *log.Logger
}

type ProcessorOption func(cfg *config)

func WithSampleInterval(interval float64) ProcessorOption {
	return func(cfg *config) {
		cfg.interval = interval
	}
}

func WithEventHandler(h race.EventHandler) ProcessorOption {
	return func(cfg *config) {
		cfg.handler = h
	}
}

// WithoutGhost disables the live ghost of the best lap.
func WithoutGhost() ProcessorOption {
	return func(cfg *config) {
		cfg.ghost = false
	}
}

func WithLogger(l *log.Logger) ProcessorOption {
	return func(cfg *config) {
		cfg.l = l
	}
}

// NewProcessor creates a processor for a race of lapCount laps on track.
// checkpointNames is the ring of checkpoints, the first one is the goal line.
//
//nolint:whitespace // editor/linter issue
func NewProcessor(
	track string,
	lapCount int,
	checkpointNames []string,
	opts ...ProcessorOption,
) (*Processor, error) {
	cfg := &config{
		interval: race.DefaultSampleInterval,
		handler:  race.NopEventHandler{},
		ghost:    true,
		l:        log.Default().Named("processing"),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(lo.Uniq(checkpointNames)) != len(checkpointNames) {
		return nil, fmt.Errorf("duplicate checkpoint names in %v", checkpointNames)
	}
	cps := lo.Map(checkpointNames, func(name string, _ int) *race.Checkpoint {
		return race.NewCheckpoint(name)
	})
	ret := &Processor{
		checkpoints: lo.KeyBy(cps, func(cp *race.Checkpoint) string { return cp.Name }),
		engine: playback.NewEngine(
			playback.WithDefaultHooks(car.GhostHooks{}),
			playback.WithLogger(cfg.l.Named("playback"))),
		ghost: car.NewCar(GhostID, car.WithHidden()),
		l:     cfg.l,
	}
	raceOpts := []race.RaceProcessorOption{
		race.WithSampleInterval(cfg.interval),
		race.WithEventHandler(cfg.handler),
		race.WithLogger(cfg.l.Named("race")),
	}
	if cfg.ghost {
		raceOpts = append(raceOpts, race.WithGhost(ret.engine, ret.ghost))
	}
	var err error
	if ret.raceProcessor, err = race.NewRaceProcessor(
		track, lapCount, cps, raceOpts...); err != nil {
		return nil, err
	}
	return ret, nil
}

// ProcessFrame advances the race by one frame.
func (p *Processor) ProcessFrame(f *util.Frame) error {
	p.frames++
	p.raceProcessor.Tick(f.Dt, f.Pose())
	if f.Cross == "" {
		return nil
	}
	cp, ok := p.checkpoints[f.Cross]
	if !ok {
		return fmt.Errorf("frame %d: unknown checkpoint %q: %w",
			p.frames, f.Cross, model.ErrMalformedRecord)
	}
	return cp.Cross()
}

func (p *Processor) RaceProcessor() *race.RaceProcessor {
	return p.raceProcessor
}

// Ghost returns the car driven by the best lap ghost.
func (p *Processor) Ghost() *car.Car {
	return p.ghost
}

func (p *Processor) Frames() int {
	return p.frames
}

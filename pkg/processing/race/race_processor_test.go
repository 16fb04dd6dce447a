//nolint:funlen // ok for tests
package race

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/playback"
	"github.com/mpapenbr/ghostlap-go/pkg/processing/car"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
)

// eventLog collects the events as readable strings
type eventLog struct {
	NopEventHandler
	events []string
}

func (e *eventLog) LapStarted(lapNo int, last bool) {
	e.events = append(e.events, fmt.Sprintf("started:%d:%v", lapNo, last))
}

func (e *eventLog) LapCompleted(l *lap.Lap, best bool) {
	e.events = append(e.events, fmt.Sprintf("completed:%d:%v", l.Number, best))
}

func (e *eventLog) WrongCheckpoint(cp *Checkpoint) {
	e.events = append(e.events, "wrong:"+cp.Name)
}

func (e *eventLog) RaceFinished(r *race.Race) {
	e.events = append(e.events, fmt.Sprintf("finished:%d", len(r.Laps())))
}

func ring(names ...string) []*Checkpoint {
	ret := make([]*Checkpoint, len(names))
	for i, n := range names {
		ret[i] = NewCheckpoint(n)
	}
	return ret
}

func poseAt(x float64) model.Pose {
	return model.NewPose(model.Vec3{X: x}, model.IdentityQuat())
}

// drive ticks n frames of dt, moving the player along x starting at x0
func drive(p *RaceProcessor, n int, dt, x0 float64) {
	for i := range n {
		p.Tick(dt, poseAt(x0+float64(i)))
	}
}

// lapThrough crosses all checkpoints after the goal line and the goal line
func lapThrough(t *testing.T, cps []*Checkpoint) {
	t.Helper()
	for _, cp := range cps[1:] {
		require.NoError(t, cp.Cross())
	}
	require.NoError(t, cps[0].Cross())
}

func TestNewRaceProcessor(t *testing.T) {
	tests := []struct {
		name    string
		laps    int
		cps     []*Checkpoint
		opts    []RaceProcessorOption
		wantErr error
	}{
		{"no checkpoints", 3, nil, nil, ErrNoCheckpoints},
		{"no laps", 0, ring("goal"), nil, ErrInvalidLaps},
		{"bad interval", 3, ring("goal"), []RaceProcessorOption{WithSampleInterval(0)},
			model.ErrInvalidInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaceProcessor("Monza", tt.laps, tt.cps, tt.opts...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnboundCheckpoint(t *testing.T) {
	err := NewCheckpoint("goal").Cross()
	assert.ErrorIs(t, err, model.ErrInvalidState)
}

func TestRaceFlow(t *testing.T) {
	cps := ring("goal", "cp1", "cp2")
	events := &eventLog{}
	ghost := car.NewCar("ghost", car.WithHidden(), car.WithHistory())
	engine := playback.NewEngine(playback.WithDefaultHooks(car.GhostHooks{}))
	p, err := NewRaceProcessor("Monza", 2, cps,
		WithSampleInterval(0.25),
		WithEventHandler(events),
		WithGhost(engine, ghost))
	require.NoError(t, err)

	// nothing is recorded before the start
	drive(p, 4, 0.25, 0)
	assert.False(t, p.Started())
	assert.Equal(t, 0.0, p.Elapsed())

	require.NoError(t, cps[0].Cross())
	assert.True(t, p.Started())
	assert.Equal(t, 1, p.CurrentLap())
	assert.Equal(t, cps[1], p.NextCheckpoint())

	// wrong checkpoint does not change the state
	require.NoError(t, cps[2].Cross())
	assert.Equal(t, cps[1], p.NextCheckpoint())

	drive(p, 4, 0.25, 10)
	lapThrough(t, cps)

	// lap 2: the ghost replays lap 1
	assert.Equal(t, 2, p.CurrentLap())
	assert.True(t, engine.Active("ghost"))
	assert.True(t, ghost.Visible)
	assert.Equal(t, 10.0, ghost.Pose().Position.X, "ghost snaps to the first sample")

	drive(p, 2, 0.25, 20)
	assert.InDelta(t, 11.0, ghost.Pose().Position.X, 1e-9)

	drive(p, 4, 0.25, 22)
	lapThrough(t, cps)

	assert.True(t, p.Finished())
	assert.False(t, engine.Active("ghost"))
	assert.False(t, ghost.Visible)
	assert.Equal(t, 0, p.CurrentLap())

	r := p.Race()
	require.Len(t, r.Laps(), 2)
	assert.Equal(t, 4, r.Laps()[0].Len())
	assert.Equal(t, 6, r.Laps()[1].Len())
	assert.InDelta(t, 1.0, r.Laps()[0].Duration, 1e-9)
	assert.InDelta(t, 1.5, r.Laps()[1].Duration, 1e-9)
	assert.InDelta(t, 2.5, r.TotalTime, 1e-9)
	assert.InDelta(t, 2.5, p.Elapsed(), 1e-9)

	assert.Equal(t, []string{
		"started:1:false",
		"wrong:cp2",
		"completed:1:true",
		"started:2:true",
		"completed:2:false",
		"finished:2",
	}, events.events)

	// the race is over
	assert.ErrorIs(t, cps[0].Cross(), model.ErrInvalidState)
}

func TestGhostIsBestLap(t *testing.T) {
	cps := ring("goal")
	ghost := car.NewCar("ghost", car.WithHidden())
	engine := playback.NewEngine()
	p, err := NewRaceProcessor("Spa", 4, cps,
		WithSampleInterval(1),
		WithGhost(engine, ghost))
	require.NoError(t, err)

	require.NoError(t, cps[0].Cross())
	drive(p, 3, 1, 100) // lap 1: 3s
	require.NoError(t, cps[0].Cross())
	assert.Equal(t, 100.0, ghost.Pose().Position.X)

	drive(p, 2, 1, 200) // lap 2: 2s, new best
	require.NoError(t, cps[0].Cross())
	assert.Equal(t, 200.0, ghost.Pose().Position.X)

	drive(p, 5, 1, 300) // lap 3: slower, lap 2 stays best
	require.NoError(t, cps[0].Cross())
	assert.Equal(t, 200.0, ghost.Pose().Position.X)
	assert.Equal(t, 4, p.CurrentLap())
}

func TestEmptyLapStartsNoGhost(t *testing.T) {
	cps := ring("goal")
	ghost := car.NewCar("ghost", car.WithHidden())
	engine := playback.NewEngine()
	p, err := NewRaceProcessor("Spa", 3, cps, WithGhost(engine, ghost))
	require.NoError(t, err)

	require.NoError(t, cps[0].Cross())
	require.NoError(t, cps[0].Cross())
	assert.Equal(t, 2, p.CurrentLap())
	assert.False(t, engine.Active("ghost"))
}

func TestWithoutGhost(t *testing.T) {
	cps := ring("goal", "cp1")
	p, err := NewRaceProcessor("Spa", 1, cps, WithSampleInterval(0.5))
	require.NoError(t, err)

	require.NoError(t, cps[0].Cross())
	drive(p, 3, 0.5, 0)
	lapThrough(t, cps)
	assert.True(t, p.Finished())
	assert.Equal(t, 3, p.Race().Laps()[0].Len())
}

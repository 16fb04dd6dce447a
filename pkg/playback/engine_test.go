//nolint:funlen // ok for tests
package playback

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
)

const eps = 1e-9

// spyTarget records every pose written by the engine
type spyTarget struct {
	id    string
	poses []model.Pose
}

func (s *spyTarget) ID() string { return s.id }

func (s *spyTarget) SetPose(p model.Pose) {
	s.poses = append(s.poses, p)
}

func (s *spyTarget) last() model.Pose {
	return s.poses[len(s.poses)-1]
}

// spyHooks records the hook invocations as "<event>:<tag>"
type spyHooks struct {
	tag    string
	events *[]string
}

func (h spyHooks) Setup(Target)   { *h.events = append(*h.events, "setup:"+h.tag) }
func (h spyHooks) Restore(Target) { *h.events = append(*h.events, "restore:"+h.tag) }

func poseAt(x float64) model.Pose {
	return model.NewPose(model.Vec3{X: x, Y: 1}, model.IdentityQuat())
}

func seqOf(xs ...float64) []model.Pose {
	ret := make([]model.Pose, 0, len(xs))
	for _, x := range xs {
		ret = append(ret, poseAt(x))
	}
	return ret
}

func assertPose(t *testing.T, want, got model.Pose) {
	t.Helper()
	assert.True(t, want.ApproxEqual(got, eps), "want %+v got %+v", want, got)
}

func TestStartEmptySequence(t *testing.T) {
	e := NewEngine()
	target := &spyTarget{id: "ghost"}
	events := []string{}
	s, err := e.Start(nil, 0.25, target, WithHooks(spyHooks{"a", &events}))
	assert.ErrorIs(t, err, model.ErrEmptySequence)
	assert.Nil(t, s)
	assert.Empty(t, target.poses)
	assert.Empty(t, events)
	assert.False(t, e.Active("ghost"))

	_, err = e.StartLap(race.Merge(), 0.25, target)
	assert.ErrorIs(t, err, model.ErrEmptySequence)
}

func TestStartInvalidInterval(t *testing.T) {
	e := NewEngine()
	for _, interval := range []float64{0, -0.1, math.NaN()} {
		_, err := e.Start(seqOf(1), interval, &spyTarget{id: "ghost"})
		assert.ErrorIs(t, err, model.ErrInvalidInterval, "interval %v", interval)
	}
}

func TestStartSnapsToFirstSample(t *testing.T) {
	e := NewEngine()
	target := &spyTarget{id: "ghost"}
	s, err := e.Start(seqOf(5, 6, 7), 0.25, target)
	require.NoError(t, err)
	assert.True(t, s.Active())
	require.Len(t, target.poses, 1)
	assertPose(t, poseAt(5), target.poses[0])
	assert.True(t, e.Active("ghost"))
}

func TestStopsAfterLastSample(t *testing.T) {
	e := NewEngine()
	target := &spyTarget{id: "ghost"}
	finished := 0
	s, err := e.Start(seqOf(1, 2, 3), 0.25, target,
		WithOnFinish(func(*Session) { finished++ }))
	require.NoError(t, err)

	for i := 1; i <= 6; i++ {
		e.Tick(0.25)
		if i < 3 {
			assert.True(t, s.Active(), "tick %d", i)
		}
		if i == 3 {
			assert.False(t, s.Active(), "tick %d", i)
			assertPose(t, poseAt(3), target.last())
		}
	}
	// snap + 2 interpolated + final snap, nothing after stop
	assert.Len(t, target.poses, 4)
	assert.Equal(t, 1, finished)
	assert.False(t, e.Active("ghost"))
}

func TestSingleSample(t *testing.T) {
	t.Run("non looping stops on next advance", func(t *testing.T) {
		e := NewEngine()
		target := &spyTarget{id: "ghost"}
		s, err := e.Start(seqOf(9), 0.1, target)
		require.NoError(t, err)
		e.Tick(0.05)
		assert.True(t, s.Active())
		e.Tick(0.05)
		assert.False(t, s.Active())
		for _, p := range target.poses {
			assertPose(t, poseAt(9), p)
		}
	})
	t.Run("looping re-primes", func(t *testing.T) {
		e := NewEngine()
		target := &spyTarget{id: "ghost"}
		s, err := e.Start(seqOf(9), 0.125, target, WithLoop(true))
		require.NoError(t, err)
		for range 10 {
			e.Tick(0.125)
			assert.True(t, s.Active())
			assert.Equal(t, 1, s.Cursor())
		}
		for _, p := range target.poses {
			assertPose(t, poseAt(9), p)
		}
	})
}

func TestLoopWrapsAround(t *testing.T) {
	e := NewEngine()
	target := &spyTarget{id: "ghost"}
	s, err := e.Start(seqOf(1, 2), 0.5, target, WithLoop(true))
	require.NoError(t, err)
	e.Tick(0.5) // last=1 next=2
	assertPose(t, poseAt(1), target.last())
	e.Tick(0.5) // last=2 next=1 (wrapped)
	assertPose(t, poseAt(2), target.last())
	e.Tick(0.25) // half way back to the start
	assertPose(t, model.Interpolate(poseAt(2), poseAt(1), 0.5), target.last())
	e.Tick(0.25) // last=1 next=2
	assertPose(t, poseAt(1), target.last())
	assert.True(t, s.Active())
	assert.True(t, s.Loop())
}

func TestNegativeDeltaIgnored(t *testing.T) {
	e := NewEngine()
	target := &spyTarget{id: "ghost"}
	_, err := e.Start(seqOf(0, 4, 8), 0.5, target)
	require.NoError(t, err)
	e.Tick(0.5)
	e.Tick(0.125)
	written := len(target.poses)
	e.Tick(-0.5)
	e.Tick(math.NaN())
	assert.Len(t, target.poses, written)
	e.Tick(0.125)
	assertPose(t, model.Interpolate(poseAt(0), poseAt(4), 0.5), target.last())
}

func TestInterpolatesBetweenSamples(t *testing.T) {
	e := NewEngine()
	target := &spyTarget{id: "ghost"}
	_, err := e.Start(seqOf(0, 4, 8), 0.5, target)
	require.NoError(t, err)
	e.Tick(0.5)
	e.Tick(0.125)
	assertPose(t, model.Interpolate(poseAt(0), poseAt(4), 0.25), target.last())
}

func TestLargeDeltaCatchesUp(t *testing.T) {
	e := NewEngine()
	target := &spyTarget{id: "ghost"}
	s, err := e.Start(seqOf(0, 1, 2, 3, 4), 0.25, target)
	require.NoError(t, err)
	e.Tick(0.6)
	assert.Equal(t, 3, s.Cursor())
	assert.GreaterOrEqual(t, s.Fraction(), 0.0)
	assert.Less(t, s.Fraction(), 1.0)
	assertPose(t, model.Interpolate(poseAt(1), poseAt(2), s.Fraction()), target.last())
	assert.Len(t, target.poses, 2, "skipped samples are not written")
}

func TestRestartStopsOldSessionFirst(t *testing.T) {
	e := NewEngine()
	target := &spyTarget{id: "ghost"}
	events := []string{}
	first, err := e.Start(seqOf(1, 2), 0.25, target, WithHooks(spyHooks{"old", &events}))
	require.NoError(t, err)
	second, err := e.Start(seqOf(7, 8), 0.25, target, WithHooks(spyHooks{"new", &events}))
	require.NoError(t, err)

	assert.Equal(t, []string{"setup:old", "restore:old", "setup:new"}, events)
	assert.False(t, first.Active())
	assert.True(t, second.Active())
	got, ok := e.Session("ghost")
	assert.True(t, ok)
	assert.Same(t, second, got)
	assertPose(t, poseAt(7), target.last())
}

func TestStartExclusive(t *testing.T) {
	e := NewEngine()
	target := &spyTarget{id: "ghost"}
	first, err := e.Start(seqOf(1, 2), 0.25, target)
	require.NoError(t, err)
	_, err = e.Start(seqOf(3), 0.25, target, WithExclusive())
	assert.ErrorIs(t, err, model.ErrInvalidState)
	assert.True(t, first.Active())
}

func TestStopIsIdempotent(t *testing.T) {
	events := []string{}
	e := NewEngine(WithDefaultHooks(spyHooks{"d", &events}))
	target := &spyTarget{id: "ghost"}
	e.Stop("ghost") // idle, no-op
	s, err := e.Start(seqOf(1, 2), 0.25, target)
	require.NoError(t, err)
	s.Stop()
	s.Stop()
	e.Stop("ghost")
	assert.Equal(t, []string{"setup:d", "restore:d"}, events)
	n := len(target.poses)
	s.Tick(1)
	assert.Len(t, target.poses, n)
}

func TestSessionsPerTarget(t *testing.T) {
	e := NewEngine()
	a := &spyTarget{id: "a"}
	b := &spyTarget{id: "b"}
	_, err := e.Start(seqOf(1, 2, 3), 0.25, a)
	require.NoError(t, err)
	_, err = e.Start(seqOf(10, 20, 30), 0.25, b)
	require.NoError(t, err)
	e.Tick(0.25)
	e.Tick(0.25)
	assertPose(t, poseAt(2), a.last())
	assertPose(t, poseAt(20), b.last())
	e.StopAll()
	assert.False(t, e.Active("a"))
	assert.False(t, e.Active("b"))
}

// playing the merged laps shows the same poses as playing the laps one
// after the other
func TestMergedPlaybackMatchesSequential(t *testing.T) {
	lapA := lap.FromSamples(1, 1, seqOf(1, 2, 3))
	lapB := lap.FromSamples(2, 1, seqOf(4, 5))
	const interval = 0.25

	merged := &spyTarget{id: "merged"}
	e := NewEngine()
	_, err := e.StartLap(race.Merge(lapA, lapB), interval, merged)
	require.NoError(t, err)
	for range 10 {
		e.Tick(interval)
	}

	sequential := &spyTarget{id: "sequential"}
	e2 := NewEngine()
	_, err = e2.StartLap(lapA, interval, sequential,
		WithOnFinish(func(*Session) {
			_, startErr := e2.StartLap(lapB, interval, sequential)
			require.NoError(t, startErr)
		}))
	require.NoError(t, err)
	for range 10 {
		e2.Tick(interval)
	}

	same := func(a, b model.Pose) bool { return a.ApproxEqual(b, eps) }
	got := slices.CompactFunc(slices.Clone(merged.poses), same)
	want := slices.CompactFunc(slices.Clone(sequential.poses), same)
	require.Len(t, got, len(want))
	for i := range want {
		assertPose(t, want[i], got[i])
	}
	assertPose(t, poseAt(5), merged.last())
}

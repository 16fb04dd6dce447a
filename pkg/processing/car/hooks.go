package car

import "github.com/mpapenbr/ghostlap-go/pkg/playback"

// GhostHooks turn a Car into a ghost for the duration of a session:
// no input, no audio, no collisions, visible. Restore hides the ghost again.
type GhostHooks struct{}

// ReplayHooks take over a player car for a replay: input and audio are
// disabled and the car is shown. Restore brings back the visibility the car
// had before. Input and audio come back only if the car is visible again
// and still meant to be driven.
type ReplayHooks struct {
	// Drivable reports whether input should be re-enabled on restore.
	Drivable func() bool
}

var (
	_ playback.Hooks = GhostHooks{}
	_ playback.Hooks = ReplayHooks{}
)

func (GhostHooks) Setup(t playback.Target) {
	if c, ok := t.(*Car); ok {
		c.InputEnabled = false
		c.AudioEnabled = false
		c.Collidable = false
		c.Visible = true
	}
}

func (GhostHooks) Restore(t playback.Target) {
	if c, ok := t.(*Car); ok {
		c.Visible = false
	}
}

func (h ReplayHooks) Setup(t playback.Target) {
	if c, ok := t.(*Car); ok {
		c.wasVisible = c.Visible
		c.InputEnabled = false
		c.AudioEnabled = false
		c.Visible = true
	}
}

func (h ReplayHooks) Restore(t playback.Target) {
	c, ok := t.(*Car)
	if !ok {
		return
	}
	c.Visible = c.wasVisible
	if !c.Visible {
		return
	}
	if h.Drivable == nil || h.Drivable() {
		c.InputEnabled = true
		c.AudioEnabled = true
	}
}

package playback

import "github.com/mpapenbr/ghostlap-go/pkg/model"

// Target is the entity driven by a playback session.
// The owner of the entity implements it; the engine only writes poses.
type Target interface {
	ID() string
	SetPose(p model.Pose)
}

// Hooks are owner supplied side effects run when a session takes over a
// target (e.g. disable its input and audio) and when it releases it again.
// Restore should only re-enable what is still meant to be active.
type Hooks interface {
	Setup(t Target)
	Restore(t Target)
}

type NopHooks struct{}

func (NopHooks) Setup(Target)   {}
func (NopHooks) Restore(Target) {}

// HookFuncs adapts plain functions to Hooks. nil members are no-ops.
type HookFuncs struct {
	OnSetup   func(t Target)
	OnRestore func(t Target)
}

func (h HookFuncs) Setup(t Target) {
	if h.OnSetup != nil {
		h.OnSetup(t)
	}
}

func (h HookFuncs) Restore(t Target) {
	if h.OnRestore != nil {
		h.OnRestore(t)
	}
}

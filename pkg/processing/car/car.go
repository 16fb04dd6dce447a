package car

import (
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/playback"
)

// Car is a headless stand-in for a vehicle entity in the scene.
// It keeps the current pose and the flags a playback session toggles.
type Car struct {
	id           string
	pose         model.Pose
	InputEnabled bool
	AudioEnabled bool
	Collidable   bool
	Visible      bool
	wasVisible   bool // visibility before a replay took over the car
	history      []model.Pose
	keepHistory  bool
}

var _ playback.Target = (*Car)(nil)

type CarOption func(c *Car)

// WithHistory keeps every pose written to the car.
func WithHistory() CarOption {
	return func(c *Car) {
		c.keepHistory = true
	}
}

// WithHidden creates the car invisible until a session shows it.
func WithHidden() CarOption {
	return func(c *Car) {
		c.Visible = false
	}
}

func NewCar(id string, opts ...CarOption) *Car {
	c := &Car{
		id:           id,
		pose:         model.NewPose(model.Vec3{}, model.IdentityQuat()),
		InputEnabled: true,
		AudioEnabled: true,
		Collidable:   true,
		Visible:      true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Car) ID() string {
	return c.id
}

func (c *Car) SetPose(p model.Pose) {
	c.pose = p
	if c.keepHistory {
		c.history = append(c.history, p)
	}
}

func (c *Car) Pose() model.Pose {
	return c.pose
}

// History returns the poses written so far, only with WithHistory.
func (c *Car) History() []model.Pose {
	return c.history
}

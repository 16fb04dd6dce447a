package race

import (
	"fmt"

	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

// Checkpoint is one gate of the track. The goal line is the checkpoint at
// index 0 of the ring handed to NewRaceProcessor.
type Checkpoint struct {
	Name string
	p    *RaceProcessor
}

func NewCheckpoint(name string) *Checkpoint {
	return &Checkpoint{Name: name}
}

// Bind registers the processor notified by Cross.
func (c *Checkpoint) Bind(p *RaceProcessor) {
	c.p = p
}

// Cross reports that the player passed this checkpoint.
func (c *Checkpoint) Cross() error {
	if c.p == nil {
		return fmt.Errorf("checkpoint %s is not bound: %w", c.Name, model.ErrInvalidState)
	}
	return c.p.PassCheckpoint(c)
}

func (c *Checkpoint) String() string {
	return c.Name
}

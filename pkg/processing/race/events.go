package race

import (
	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
)

// EventHandler receives the notifications a UI would show.
type EventHandler interface {
	// LapStarted is called when recording of a lap begins.
	// last is true for the final lap of the race.
	LapStarted(lapNo int, last bool)
	// LapCompleted is called with the sealed lap. best is true if it is
	// the fastest lap of the race so far.
	LapCompleted(l *lap.Lap, best bool)
	WrongCheckpoint(cp *Checkpoint)
	RaceFinished(r *race.Race)
}

// NopEventHandler ignores all events. Embed it to implement only some.
type NopEventHandler struct{}

func (NopEventHandler) LapStarted(int, bool)        {}
func (NopEventHandler) LapCompleted(*lap.Lap, bool) {}
func (NopEventHandler) WrongCheckpoint(*Checkpoint) {}
func (NopEventHandler) RaceFinished(*race.Race)     {}

var _ EventHandler = NopEventHandler{}

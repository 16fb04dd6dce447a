package codec

import "github.com/mpapenbr/ghostlap-go/pkg/model"

// LapRecord is the persisted form of a lap.
// CarPositions and CarRotations are parallel arrays.
type LapRecord struct {
	LapNo        int          `json:"lapNo,omitempty"`
	LapTime      float64      `json:"lapTime"`
	CarPositions []model.Vec3 `json:"carPositions"`
	CarRotations []model.Quat `json:"carRotations"`
}

// RaceRecord is the persisted form of a race.
type RaceRecord struct {
	TrackName string      `json:"trackName"`
	LapNumber int         `json:"lapNumber"` // number of laps of the race
	RaceTime  float64     `json:"raceTime"`
	Laps      []LapRecord `json:"laps"`
}

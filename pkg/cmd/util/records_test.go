package util

import (
	"errors"
	"testing"

	"github.com/mpapenbr/ghostlap-go/pkg/codec"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/testsupport/basedata"
)

func TestDecodeRecord(t *testing.T) {
	raceData, err := codec.ExportRace(basedata.SampleRace("Monza", 10, 11))
	if err != nil {
		t.Fatal(err)
	}
	lapData, err := codec.ExportLap(basedata.SampleLap(1, 10, 4))
	if err != nil {
		t.Fatal(err)
	}

	r, l, err := DecodeRecord(raceData)
	if err != nil || r == nil || l != nil {
		t.Fatalf("race: got race=%v lap=%v err=%v", r, l, err)
	}
	if len(r.Laps()) != 2 {
		t.Errorf("expected 2 laps, got %d", len(r.Laps()))
	}

	r, l, err = DecodeRecord(lapData)
	if err != nil || r != nil || l == nil {
		t.Fatalf("lap: got race=%v lap=%v err=%v", r, l, err)
	}
	if l.Len() != 4 {
		t.Errorf("expected 4 samples, got %d", l.Len())
	}
}

func TestDecodeRecordErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{nope"},
		{"array", "[1,2]"},
		{"mismatched arrays", `{"lapTime":1,"carPositions":[{"x":0,"y":0,"z":0}],"carRotations":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeRecord([]byte(tt.data))
			if !errors.Is(err, model.ErrMalformedRecord) {
				t.Errorf("expected ErrMalformedRecord, got %v", err)
			}
		})
	}
}

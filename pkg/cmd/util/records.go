package util

import (
	"fmt"
	"io"

	"github.com/ohler55/ojg/oj"

	"github.com/mpapenbr/ghostlap-go/pkg/codec"
	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
)

// ReadRecord reads a race or a lap record from path ("-" is stdin).
// Exactly one of the results is set.
func ReadRecord(path string, opts ...codec.ImportOption) (*race.Race, *lap.Lap, error) {
	in, err := OpenInput(path)
	if err != nil {
		return nil, nil, err
	}
	defer in.Close()
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, nil, err
	}
	return DecodeRecord(data, opts...)
}

// DecodeRecord tells races from laps by the "laps" member.
func DecodeRecord(data []byte, opts ...codec.ImportOption) (*race.Race, *lap.Lap, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", model.ErrMalformedRecord, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("record is not an object: %w", model.ErrMalformedRecord)
	}
	if _, isRace := obj["laps"]; isRace {
		r, err := codec.ImportRace(data, opts...)
		return r, nil, err
	}
	l, err := codec.ImportLap(data, 1)
	return nil, l, err
}

// ReadLap reads a lap record, races are merged into one lap.
func ReadLap(path string) (*lap.Lap, error) {
	r, l, err := ReadRecord(path)
	if err != nil {
		return nil, err
	}
	if r != nil {
		return race.Merge(r.Laps()...), nil
	}
	return l, nil
}

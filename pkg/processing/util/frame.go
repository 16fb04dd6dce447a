package util

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mpapenbr/ghostlap-go/pkg/model"
)

// Frame is one simulation step of the player as read from a frame log
// (one JSON object per line). Cross optionally names the checkpoint crossed
// during the step; it is processed after the pose update.
type Frame struct {
	Dt       float64     `json:"dt"`
	Position model.Vec3  `json:"pos"`
	Rotation *model.Quat `json:"rot,omitempty"`
	Cross    string      `json:"cross,omitempty"`
}

// Pose returns the frame pose, a missing rotation is the identity.
func (f *Frame) Pose() model.Pose {
	rot := model.IdentityQuat()
	if f.Rotation != nil {
		rot = f.Rotation.Normalize()
	}
	return model.NewPose(f.Position, rot)
}

// FrameReader decodes a stream of frames.
type FrameReader struct {
	scanner *bufio.Scanner
	line    int
}

func NewFrameReader(r io.Reader) *FrameReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	return &FrameReader{scanner: s}
}

// Next returns the next frame or io.EOF. Blank lines are skipped.
func (fr *FrameReader) Next() (*Frame, error) {
	for fr.scanner.Scan() {
		fr.line++
		data := fr.scanner.Bytes()
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", fr.line, model.ErrMalformedRecord, err)
		}
		if f.Dt < 0 {
			return nil, fmt.Errorf("line %d: negative dt: %w", fr.line, model.ErrMalformedRecord)
		}
		return &f, nil
	}
	if err := fr.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// ReadAll decodes all remaining frames.
func (fr *FrameReader) ReadAll() ([]*Frame, error) {
	ret := make([]*Frame, 0)
	for {
		f, err := fr.Next()
		if errors.Is(err, io.EOF) {
			return ret, nil
		}
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
}

package replay

import (
	"bytes"
	"encoding/json"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/testsupport/basedata"
)

func decode(t *testing.T, buf *bytes.Buffer) []Frame {
	t.Helper()
	ret := []Frame{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var f Frame
		assert.NilError(t, dec.Decode(&f))
		ret = append(ret, f)
	}
	return ret
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	// samples at x=100,101,102
	n, err := Run(basedata.SampleLap(1, 0.3, 3), 0.1, 0.05, false, 1000, &buf)
	assert.NilError(t, err)

	frames := decode(t, &buf)
	assert.Equal(t, len(frames), n)
	assert.Equal(t, frames[0].Position.X, 100.0)
	assert.Equal(t, frames[len(frames)-1].Position.X, 102.0)
	// halfway between the first two samples
	assert.Assert(t, frames[3].Position.ApproxEqual(model.Vec3{X: 100.5}, 1e-9),
		"got %+v", frames[3].Position)
}

func TestRunLoopStopsAtMaxTicks(t *testing.T) {
	var buf bytes.Buffer
	n, err := Run(basedata.SampleLap(1, 0.3, 3), 0.1, 0.1, true, 10, &buf)
	assert.NilError(t, err)
	assert.Equal(t, n, 11)
	assert.Equal(t, len(decode(t, &buf)), 11)
}

func TestRunEmptyLap(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(lap.FromSamples(1, 0, nil), 0.1, 0.1, false, 10, &buf)
	assert.ErrorIs(t, err, model.ErrEmptySequence)
	assert.Equal(t, buf.Len(), 0)
}

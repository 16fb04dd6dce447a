package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/cmd/util"
	"github.com/mpapenbr/ghostlap-go/pkg/config"
	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/model"
	"github.com/mpapenbr/ghostlap-go/pkg/playback"
	"github.com/mpapenbr/ghostlap-go/pkg/processing/car"
)

type options struct {
	file     string
	track    string
	laps     int
	bestLap  bool
	dt       float64
	loop     bool
	maxTicks int
}

// Frame is one line of the replay output.
type Frame struct {
	Tick     int        `json:"tick"`
	Time     float64    `json:"t"`
	Position model.Vec3 `json:"pos"`
	Rotation model.Quat `json:"rot"`
}

func NewReplayCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "replays a lap or race and prints the poses per frame as JSON lines",
		Long: `Replays a record file (--file) or the best race/lap of a track from the
record store. Races are merged into one continuous lap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "record file to replay")
	cmd.Flags().StringVar(&opts.track, "track", "", "track of the stored record")
	cmd.Flags().IntVar(&opts.laps, "laps", 3, "lap count of the stored race")
	cmd.Flags().BoolVar(&opts.bestLap, "best-lap", false,
		"replay the stored best lap instead of the best race")
	cmd.Flags().Float64Var(&opts.dt, "dt", 0,
		"frame duration in seconds (default is the sample interval)")
	cmd.Flags().BoolVar(&opts.loop, "loop", false, "restart at the first sample")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", 100000, "stop after this many frames")
	cmd.MarkFlagsMutuallyExclusive("file", "track")
	cmd.MarkFlagsOneRequired("file", "track")
	return cmd
}

func runReplay(cmd *cobra.Command, opts *options) error {
	l, err := loadLap(cmd, opts)
	if err != nil {
		return err
	}
	dt := opts.dt
	if dt <= 0 {
		dt = config.SampleInterval
	}
	n, err := Run(l, config.SampleInterval, dt, opts.loop, opts.maxTicks, cmd.OutOrStdout())
	log.Debug("replay done", log.Int("frames", n))
	return err
}

func loadLap(cmd *cobra.Command, opts *options) (*lap.Lap, error) {
	if opts.file != "" {
		return util.ReadLap(opts.file)
	}
	records, st, err := util.OpenRecords(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer st.Close()
	var (
		l     *lap.Lap
		found bool
	)
	if opts.bestLap {
		l, found, err = records.LoadBestLap(cmd.Context(), opts.track)
	} else {
		l, found, err = records.ReplayBestRace(cmd.Context(), opts.track, opts.laps)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no record for %s: %w", opts.track, model.ErrNotFound)
	}
	return l, nil
}

// Run plays l headless, writing the pose after every frame of dt seconds
// to w. Frame 0 is the pose after the start. Returns the number of frames.
//
//nolint:whitespace // editor/linter issue
func Run(
	l *lap.Lap,
	interval, dt float64,
	loop bool,
	maxTicks int,
	w io.Writer,
) (int, error) {
	target := car.NewCar("replay")
	engine := playback.NewEngine(playback.WithDefaultHooks(car.ReplayHooks{}))
	if _, err := engine.StartLap(l, interval, target, playback.WithLoop(loop)); err != nil {
		if errors.Is(err, model.ErrEmptySequence) {
			return 0, fmt.Errorf("lap %d has no samples: %w", l.Number, err)
		}
		return 0, err
	}
	enc := json.NewEncoder(w)
	write := func(tick int) error {
		p := target.Pose()
		return enc.Encode(Frame{
			Tick:     tick,
			Time:     float64(tick) * dt,
			Position: p.Position,
			Rotation: p.Rotation,
		})
	}
	if err := write(0); err != nil {
		return 0, err
	}
	tick := 0
	for engine.Active(target.ID()) && tick < maxTicks {
		tick++
		engine.Tick(dt)
		if err := write(tick); err != nil {
			return tick, err
		}
	}
	engine.StopAll()
	return tick + 1, nil
}

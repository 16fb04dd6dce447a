package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/cmd/util"
	"github.com/mpapenbr/ghostlap-go/pkg/codec"
	"github.com/mpapenbr/ghostlap-go/pkg/config"
	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/processing"
	raceproc "github.com/mpapenbr/ghostlap-go/pkg/processing/race"
	putil "github.com/mpapenbr/ghostlap-go/pkg/processing/util"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
	"github.com/mpapenbr/ghostlap-go/pkg/utils"
)

type options struct {
	track       string
	laps        int
	checkpoints []string
	input       string
	output      string
	submit      bool
	noGhost     bool
}

func NewRecordCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "record",
		Short: "records a race from a frame log (one JSON frame per line)",
		Long: `Reads player frames {"dt":..,"pos":{..},"rot":{..},"cross":".."}
and drives a race through the given checkpoint ring. The first checkpoint is
the goal line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.track, "track", "", "track name")
	cmd.Flags().IntVar(&opts.laps, "laps", 3, "number of laps")
	cmd.Flags().StringSliceVar(&opts.checkpoints, "checkpoints", []string{"goal"},
		"checkpoint names in driving order, the first one is the goal line")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "frame log (- for stdin)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "",
		"write the race record to this file")
	cmd.Flags().BoolVar(&opts.submit, "submit", false,
		"submit the finished race to the record store")
	cmd.Flags().BoolVar(&opts.noGhost, "no-ghost", false,
		"do not replay the best lap while recording")
	//nolint:errcheck // flag exists
	cmd.MarkFlagRequired("track")
	return cmd
}

// printer shows the race events on the command output
type printer struct {
	raceproc.NopEventHandler
	w io.Writer
}

func (p printer) LapStarted(lapNo int, last bool) {
	if last {
		fmt.Fprintln(p.w, "Last lap!")
		return
	}
	fmt.Fprintf(p.w, "Lap %d\n", lapNo)
}

func (p printer) LapCompleted(l *lap.Lap, best bool) {
	suffix := ""
	if best {
		suffix = " (best)"
	}
	fmt.Fprintf(p.w, "Lap %d: %s%s\n", l.Number, utils.FormatLapTime(l.Duration), suffix)
}

func (p printer) WrongCheckpoint(cp *raceproc.Checkpoint) {
	fmt.Fprintf(p.w, "Wrong checkpoint! (%s)\n", cp.Name)
}

func (p printer) RaceFinished(r *race.Race) {
	fmt.Fprintf(p.w, "Race complete: %s\n", utils.FormatLapTime(r.TotalTime))
}

//nolint:cyclop // sequential steps
func runRecord(cmd *cobra.Command, opts *options) error {
	procOpts := []processing.ProcessorOption{
		processing.WithSampleInterval(config.SampleInterval),
		processing.WithEventHandler(printer{w: cmd.OutOrStdout()}),
	}
	if opts.noGhost {
		procOpts = append(procOpts, processing.WithoutGhost())
	}
	proc, err := processing.NewProcessor(opts.track, opts.laps, opts.checkpoints, procOpts...)
	if err != nil {
		return err
	}

	in, err := util.OpenInput(opts.input)
	if err != nil {
		return err
	}
	defer in.Close()

	reader := putil.NewFrameReader(in)
	for !proc.RaceProcessor().Finished() {
		f, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := proc.ProcessFrame(f); err != nil {
			return err
		}
	}
	log.Debug("frames processed", log.Int("frames", proc.Frames()))

	rp := proc.RaceProcessor()
	if !rp.Finished() {
		return fmt.Errorf("frame log ended in lap %d of %d", rp.CurrentLap(), opts.laps)
	}
	r := rp.Race()

	if opts.output != "" {
		data, err := codec.ExportRace(r)
		if err != nil {
			return err
		}
		if err := util.WriteOutput(opts.output, cmd.OutOrStdout(), data); err != nil {
			return err
		}
	}
	if opts.submit {
		records, st, err := util.OpenRecords(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()
		res, err := records.SubmitRace(cmd.Context(), r)
		if err != nil {
			return err
		}
		if res.BestRace {
			fmt.Fprintln(cmd.OutOrStdout(), "New best race!")
		}
		if res.BestLap {
			fmt.Fprintln(cmd.OutOrStdout(), "New best lap!")
		}
	}
	return nil
}

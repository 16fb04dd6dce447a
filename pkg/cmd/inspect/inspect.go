package inspect

import (
	"fmt"
	"io"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/ghostlap-go/pkg/cmd/util"
	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
	"github.com/mpapenbr/ghostlap-go/pkg/utils"
)

func NewInspectCmd() *cobra.Command {
	var jsonPath string
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "shows a summary of a race or lap record",
		Long: `Without --jsonpath a summary is printed. With --jsonpath the matching
values are printed as JSON, e.g. --jsonpath '$.laps[*].lapTime'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonPath != "" {
				return query(cmd.OutOrStdout(), args[0], jsonPath)
			}
			return summary(cmd.OutOrStdout(), args[0])
		},
	}
	cmd.Flags().StringVar(&jsonPath, "jsonpath", "", "JSONPath expression to evaluate")
	return cmd
}

func query(w io.Writer, path, expr string) error {
	x, err := jp.ParseString(expr)
	if err != nil {
		return fmt.Errorf("invalid jsonpath: %w", err)
	}
	in, err := util.OpenInput(path)
	if err != nil {
		return err
	}
	defer in.Close()
	data, err := oj.ParseReader(in)
	if err != nil {
		return err
	}
	for _, v := range x.Get(data) {
		fmt.Fprintln(w, oj.JSON(v, &oj.Options{Sort: true}))
	}
	return nil
}

func summary(w io.Writer, path string) error {
	r, l, err := util.ReadRecord(path)
	if err != nil {
		return err
	}
	if r != nil {
		printRace(w, r)
	} else {
		printLap(w, l)
	}
	return nil
}

func printRace(w io.Writer, r *race.Race) {
	fmt.Fprintf(w, "track: %s\n", r.TrackID)
	fmt.Fprintf(w, "laps:  %d\n", r.LapCount)
	fmt.Fprintf(w, "time:  %s\n", utils.FormatLapTime(r.TotalTime))
	best, _ := r.BestLap()
	for _, l := range r.Laps() {
		marker := ""
		if l == best {
			marker = " *"
		}
		fmt.Fprintf(w, "  lap %d: %s (%d samples)%s\n",
			l.Number, utils.FormatLapTime(l.Duration), l.Len(), marker)
	}
}

func printLap(w io.Writer, l *lap.Lap) {
	fmt.Fprintf(w, "lap time: %s\n", utils.FormatLapTime(l.Duration))
	fmt.Fprintf(w, "samples:  %d\n", l.Len())
}

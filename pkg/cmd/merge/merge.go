package merge

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/ghostlap-go/log"
	"github.com/mpapenbr/ghostlap-go/pkg/cmd/util"
	"github.com/mpapenbr/ghostlap-go/pkg/codec"
	"github.com/mpapenbr/ghostlap-go/pkg/lap"
	"github.com/mpapenbr/ghostlap-go/pkg/race"
)

func NewMergeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "merge <file>...",
		Short: "merges the laps of race or lap records into one lap record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := mergeFiles(args)
			if err != nil {
				return err
			}
			data, err := codec.ExportLap(merged)
			if err != nil {
				return err
			}
			return util.WriteOutput(output, cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")
	return cmd
}

// mergeFiles concatenates all laps of the given files in argument order.
func mergeFiles(paths []string) (*lap.Lap, error) {
	laps := make([]*lap.Lap, 0)
	for _, p := range paths {
		r, l, err := util.ReadRecord(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if r != nil {
			laps = append(laps, r.Laps()...)
		} else {
			laps = append(laps, l)
		}
	}
	merged := race.Merge(laps...)
	log.Debug("merged laps",
		log.Int("laps", len(laps)),
		log.Int("samples", merged.Len()),
		log.Float("duration", merged.Duration))
	return merged, nil
}

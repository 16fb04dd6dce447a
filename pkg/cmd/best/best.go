package best

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/ghostlap-go/pkg/cmd/util"
	"github.com/mpapenbr/ghostlap-go/pkg/service"
	"github.com/mpapenbr/ghostlap-go/pkg/store"
	"github.com/mpapenbr/ghostlap-go/pkg/utils"
)

var (
	track string
	laps  int
)

func NewBestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "best",
		Short: "commands to manage the best race and lap records",
	}
	cmd.PersistentFlags().StringVar(&track, "track", "", "track name")
	cmd.PersistentFlags().IntVar(&laps, "laps", 3, "lap count of the race")

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newDeleteCmd())
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "shows the best race and lap of a track",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, st, err := util.OpenRecords(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			return show(cmd, records)
		},
	}
}

func show(cmd *cobra.Command, records *service.RecordService) error {
	w := cmd.OutOrStdout()
	r, found, err := records.LoadBestRace(cmd.Context(), track, laps)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(w, "best race (%d laps): %s\n", laps, utils.FormatLapTime(r.TotalTime))
	} else {
		fmt.Fprintf(w, "best race (%d laps): -\n", laps)
	}
	l, found, err := records.LoadBestLap(cmd.Context(), track)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(w, "best lap: %s\n", utils.FormatLapTime(l.Duration))
	} else {
		fmt.Fprintln(w, "best lap: -")
	}
	return nil
}

func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <race-file>",
		Short: "submits a recorded race, records are only replaced by faster ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := util.ReadRecord(args[0])
			if err != nil {
				return err
			}
			if r == nil {
				return fmt.Errorf("%s is not a race record", args[0])
			}
			records, st, err := util.OpenRecords(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			res, err := records.SubmitRace(cmd.Context(), r)
			if res != nil {
				printResult(cmd.OutOrStdout(), res)
			}
			if err != nil {
				return err
			}
			return nil
		},
	}
}

func printResult(w io.Writer, res *service.SubmitResult) {
	fmt.Fprintf(w, "best race: %v\nbest lap:  %v\n", res.BestRace, res.BestLap)
}

func newDeleteCmd() *cobra.Command {
	var lapOnly bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "deletes the user records of a track, bundled defaults remain",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := util.OpenRecords(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			if !lapOnly {
				if err := st.Delete(cmd.Context(), store.BestRaceKey(track, laps)); err != nil {
					return err
				}
			}
			return st.Delete(cmd.Context(), store.BestLapKey(track))
		},
	}
	cmd.Flags().BoolVar(&lapOnly, "lap-only", false, "delete only the best lap")
	return cmd
}

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/conorfennell/preflopdrill/internal/library"
)

func newSRSCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "srs",
		Short: "Inspect spaced-repetition progress",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats [node-id]",
			Short: "Show review counts for every chart below a node",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var ids []string
				if len(args) == 1 {
					if _, ok := a.lib.FindByID(args[0]); !ok {
						return fmt.Errorf("%w: %s", library.ErrNotFound, args[0])
					}
					ids = args
				} else {
					for _, r := range a.lib.Roots() {
						ids = append(ids, r.ID)
					}
				}

				now := time.Now()
				data := pterm.TableData{{"Chart", "Reviewed", "Due", "Lapses", "Mean ease"}}
				for _, id := range ids {
					for _, c := range a.lib.Charts(id) {
						st := a.srs.Stats(c.ID, now)
						data = append(data, []string{
							a.lib.Path(c.ID),
							strconv.Itoa(st.Reviewed),
							strconv.Itoa(st.Due),
							strconv.Itoa(st.Lapses),
							fmt.Sprintf("%.2f", st.MeanEase),
						})
					}
				}
				out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget every review",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a.srs.Clear()
				fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprint("Review history cleared"))
				return nil
			},
		},
	)
	return cmd
}

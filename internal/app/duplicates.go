package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/models"
)

func newDuplicatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: "List cards with more than one copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection()
			if err != nil {
				return err
			}

			dupes := col.Duplicates()
			if len(dupes) == 0 {
				ok("no duplicates found")
				return nil
			}

			heading("%d duplicated cards", len(dupes))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSET\tCOUNT\tFINISH")
			for _, rec := range dupes {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", rec.Name, rec.SetCode, rec.Quantity, finishLabel(rec.Finish))
			}
			w.Flush()
			return nil
		},
	}
}

// finishLabel renders a finish for table output
func finishLabel(f models.Finish) string {
	if f == models.FinishNonfoil {
		return "-"
	}
	return string(f)
}

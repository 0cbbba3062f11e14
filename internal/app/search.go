package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/csvio"
	"github.com/codyseavey/mymanabox/internal/services"
)

func newSearchCmd() *cobra.Command {
	var caseSensitive bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the collection by card name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection()
			if err != nil {
				return err
			}

			matches := services.SearchByName(col, args[0], caseSensitive)
			if len(matches) == 0 {
				warn("no cards matching %q", args[0])
				return nil
			}

			heading("%d cards matching %q", len(matches), args[0])
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSET\tCOUNT\tFINISH\tPRICE")
			for _, rec := range matches {
				price := services.ResolveUnitPrice(rec)
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					rec.Name, rec.SetCode, rec.Quantity, finishLabel(rec.Finish), csvio.FormatPrice(&price))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match case exactly")
	return cmd
}

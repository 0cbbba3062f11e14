package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/csvio"
	"github.com/codyseavey/mymanabox/internal/services"
)

func newExpensiveCmd() *cobra.Command {
	var minPrice float64

	cmd := &cobra.Command{
		Use:   "expensive",
		Short: "List cards at or above a price threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection()
			if err != nil {
				return err
			}

			expensive := services.ExpensiveCards(col, minPrice)
			if len(expensive) == 0 {
				ok("no cards worth $%.2f or more", minPrice)
				return nil
			}

			heading("Cards worth $%.2f+", minPrice)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSET\tPRICE\tCOUNT\tTOTAL")
			for _, rec := range expensive {
				unit := services.ResolveUnitPrice(rec)
				total := unit * float64(rec.Quantity)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					rec.Name, rec.SetCode, csvio.FormatPrice(&unit), rec.Quantity, csvio.FormatPrice(&total))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().Float64Var(&minPrice, "min", 10.0, "Minimum unit price in USD")
	return cmd
}

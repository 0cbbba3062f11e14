package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/csvio"
	"github.com/codyseavey/mymanabox/internal/services"
)

func newSummaryCmd() *cobra.Command {
	var topN int
	var multiplier float64

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show collection totals and the most valuable cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection()
			if err != nil {
				return err
			}

			stats := services.Stats(col)
			heading("Collection Summary")
			fmt.Printf("Total cards:   %d\n", stats.TotalCards)
			fmt.Printf("Unique cards:  %d\n", stats.UniqueCards)
			fmt.Printf("Enriched:      %d\n", stats.Enriched)
			fmt.Printf("Total value:   %s\n", csvio.FormatPrice(&stats.TotalValue))

			if multiplier > 0 && multiplier != 1 {
				adj := services.ValueAdjustment{Name: "market premium", Multiplier: multiplier}
				adjusted := adj.Apply(stats.TotalValue)
				fmt.Printf("Adjusted (%s ×%.2f): %s\n", adj.Name, adj.Multiplier, csvio.FormatPrice(&adjusted))
			}

			if topN > 0 {
				top := services.TopValuable(col, topN)
				fmt.Println()
				heading("Top %d Most Valuable", len(top))
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tSET\tPRICE\tCOUNT")
				for _, rec := range top {
					price := services.ResolveUnitPrice(rec)
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", rec.Name, rec.SetCode, csvio.FormatPrice(&price), rec.Quantity)
				}
				w.Flush()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", 10, "Number of most valuable cards to list (0 to skip)")
	cmd.Flags().Float64Var(&multiplier, "adjust", 0, "Optional market-premium multiplier applied to the reported total")
	return cmd
}

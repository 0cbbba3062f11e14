package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/services"
)

func newCurveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curve",
		Short: "Show the collection's mana curve (requires enrichment)",
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection()
			if err != nil {
				return err
			}

			curve := services.ManaCurve(col)
			if len(curve) == 0 {
				warn("no enriched cards, run 'mymanabox enrich' first")
				return nil
			}

			costs := make([]int, 0, len(curve))
			maxCount := 0
			for cmc, count := range curve {
				costs = append(costs, cmc)
				if count > maxCount {
					maxCount = count
				}
			}
			sort.Ints(costs)

			heading("Mana Curve")
			for _, cmc := range costs {
				count := curve[cmc]
				bar := strings.Repeat("█", barWidth(count, maxCount))
				fmt.Printf("%2d  %-40s %d\n", cmc, bar, count)
			}
			return nil
		},
	}
}

func barWidth(count, max int) int {
	if max <= 0 {
		return 0
	}
	width := count * 40 / max
	if width == 0 && count > 0 {
		width = 1
	}
	return width
}

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/csvio"
	"github.com/codyseavey/mymanabox/internal/models"
	"github.com/codyseavey/mymanabox/internal/services"
)

func newSortCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:       "sort <color|set|rarity|type>",
		Short:     "Group the collection and export one CSV per bucket",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"color", "set", "rarity", "type"},
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection()
			if err != nil {
				return err
			}

			var groups map[string][]*models.CardRecord
			switch args[0] {
			case "color":
				groups = services.GroupByColor(col)
			case "set":
				groups = services.GroupBySet(col)
			case "rarity":
				groups = services.GroupByRarity(col)
			case "type":
				groups = services.GroupByType(col)
			default:
				return fmt.Errorf("unknown grouping %q (want color, set, rarity or type)", args[0])
			}

			dir := outputDir
			if dir == "" {
				dir = cfg.Collection.OutputDir
			}

			written, err := csvio.WriteGroups(dir, groups)
			if err != nil {
				return err
			}

			heading("Sorted by %s", args[0])
			for _, name := range services.SortedGroupNames(groups) {
				fmt.Printf("%-12s %d cards\n", name, len(groups[name]))
			}
			ok("wrote %d files to %s", len(written), dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for exported CSV files (default from config)")
	return cmd
}

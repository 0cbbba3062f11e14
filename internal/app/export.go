package app

import (
	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/csvio"
)

func newExportCmd() *cobra.Command {
	var out string
	var enriched bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection()
			if err != nil {
				return err
			}

			if enriched {
				err = csvio.WriteEnrichedCollection(out, col)
			} else {
				err = csvio.WriteCollection(out, col)
			}
			if err != nil {
				return err
			}
			ok("wrote %d cards to %s", col.UniqueCount(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "collection_export.csv", "Output CSV path")
	cmd.Flags().BoolVar(&enriched, "enriched", false, "Include all enrichment columns")
	return cmd
}

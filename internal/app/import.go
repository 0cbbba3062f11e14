package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/csvio"
	"github.com/codyseavey/mymanabox/internal/services"
)

func newImportCmd() *cobra.Command {
	var fromURL string
	var fromFile string
	var noBackup bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the collection from a Moxfield URL or a local CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (fromURL == "") == (fromFile == "") {
				return fmt.Errorf("specify exactly one of --url or --file")
			}

			importer := services.NewImporterService(cfg.Collection.BackupDir)
			target := cfg.Collection.CSVPath

			var err error
			if fromURL != "" {
				err = importer.ImportFromURL(cmd.Context(), fromURL, target, !noBackup)
			} else {
				err = importer.ImportFromFile(fromFile, target, !noBackup)
			}
			if err != nil {
				return err
			}

			col, err := csvio.LoadCollection(target)
			if err != nil {
				return fmt.Errorf("import succeeded but the collection failed to load: %w", err)
			}
			ok("imported %d cards (%d unique) into %s", col.TotalQuantity(), col.UniqueCount(), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromURL, "url", "", "Moxfield collection URL")
	cmd.Flags().StringVar(&fromFile, "file", "", "Local CSV file to import")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the backup of the existing collection file")
	return cmd
}

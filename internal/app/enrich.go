package app

import (
	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/cache"
	"github.com/codyseavey/mymanabox/internal/csvio"
	"github.com/codyseavey/mymanabox/internal/services"
)

func newEnrichCmd() *cobra.Command {
	var export string

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fill in Scryfall metadata and prices for every card",
		Long: `Enrich resolves each card against the local card cache, falling back to
the Scryfall API for cards the cache has not seen. Fetched records are cached,
so a second run makes no network calls.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection()
			if err != nil {
				return err
			}

			store, err := cache.Open(cfg.Collection.CachePath)
			if err != nil {
				return err
			}
			scryfall := services.NewScryfallServiceWithOptions(cfg.Scryfall.BaseURL, cfg.Scryfall.ThrottleInterval())
			enrichment := services.NewEnrichmentService(store, scryfall)

			result, err := enrichment.EnrichCollection(cmd.Context(), col)
			if err != nil {
				warn("enrichment interrupted: %v", err)
			}

			ok("enriched %d of %d cards (%d from cache, %d fetched)",
				result.Enriched, col.UniqueCount(), result.FromCache, result.Fetched)
			if result.Failed > 0 {
				warn("%d cards could not be matched", result.Failed)
			}

			if export != "" {
				if err := csvio.WriteEnrichedCollection(export, col); err != nil {
					return err
				}
				ok("wrote enriched collection to %s", export)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "Also write the enriched collection CSV to this path")
	return cmd
}

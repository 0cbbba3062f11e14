// Package app implements the mymanabox command tree.
package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codyseavey/mymanabox/internal/cache"
	"github.com/codyseavey/mymanabox/internal/config"
	"github.com/codyseavey/mymanabox/internal/csvio"
	"github.com/codyseavey/mymanabox/internal/models"
	"github.com/codyseavey/mymanabox/internal/services"
)

var (
	cfg *config.Config

	flagConfig  string
	flagCSV     string
	flagCache   string
	flagNoColor bool
)

// version is set from main via SetVersion
var version = "dev"

// SetVersion records the build version for the version command
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "mymanabox",
	Short: "Organize and value a Magic: The Gathering card collection",
	Long: `MyManaBox manages an MTG collection exported as CSV: it enriches cards
with Scryfall metadata and prices, groups and searches the collection, and
exports sorted or enriched CSV files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute is the entry point called from main
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/mymanabox/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagCSV, "csv", "", "Collection CSV file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCache, "cache", "", "Card cache file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		color.NoColor = color.NoColor || flagNoColor

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagCSV != "" {
			cfg.Collection.CSVPath = flagCSV
		}
		if flagCache != "" {
			cfg.Collection.CachePath = flagCache
		}
		return nil
	}

	rootCmd.AddCommand(
		newSummaryCmd(),
		newStatsCmd(),
		newSearchCmd(),
		newSortCmd(),
		newDuplicatesCmd(),
		newEnrichCmd(),
		newExpensiveCmd(),
		newCurveCmd(),
		newExportCmd(),
		newImportCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
}

// loadCollection reads the configured collection CSV and merges in whatever
// the card cache already holds. The cache pass makes no network calls, so
// reporting commands see prices, CMC and rarity from earlier enrich runs
// without paying for a fresh one.
func loadCollection() (*models.Collection, error) {
	col, err := csvio.LoadCollection(cfg.Collection.CSVPath)
	if err != nil {
		return nil, err
	}
	if col.UniqueCount() == 0 {
		return nil, fmt.Errorf("collection %s is empty", cfg.Collection.CSVPath)
	}

	store, err := cache.Open(cfg.Collection.CachePath)
	if err != nil {
		warn("card cache unavailable: %v", err)
		return col, nil
	}
	services.EnrichFromCache(store, col)
	return col, nil
}

// ok prints a green success line
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// heading prints a cyan section heading
func heading(format string, a ...interface{}) {
	fmt.Println(color.CyanString("=== " + fmt.Sprintf(format, a...) + " ==="))
}

package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codyseavey/mymanabox/internal/api"
	"github.com/codyseavey/mymanabox/internal/cache"
	"github.com/codyseavey/mymanabox/internal/config"
	"github.com/codyseavey/mymanabox/internal/database"
	"github.com/codyseavey/mymanabox/internal/models"
	"github.com/codyseavey/mymanabox/internal/services"
)

// RunServer starts the HTTP API and blocks until SIGINT/SIGTERM
func RunServer(cfg *config.Config) error {
	if err := database.Initialize(cfg.Serve.SnapshotDB); err != nil {
		return fmt.Errorf("failed to initialize snapshot database: %w", err)
	}

	store := services.NewCollectionStore(cfg.Collection.CSVPath)
	if err := store.Load(); err != nil {
		// The server can come up with an empty collection; import and
		// reload are both API operations.
		log.Printf("Warning: %v", err)
	}

	cacheStore, err := cache.Open(cfg.Collection.CachePath)
	if err != nil {
		return fmt.Errorf("failed to open card cache: %w", err)
	}
	log.Printf("Loaded %d cached card records", cacheStore.Len())

	scryfall := services.NewScryfallServiceWithOptions(cfg.Scryfall.BaseURL, cfg.Scryfall.ThrottleInterval())
	enrichment := services.NewEnrichmentService(cacheStore, scryfall)

	worker := services.NewEnrichWorker(func(ctx context.Context) (services.EnrichResult, error) {
		var result services.EnrichResult
		err := store.Update(func(col *models.Collection) error {
			var runErr error
			result, runErr = enrichment.EnrichCollection(ctx, col)
			return runErr
		})
		return result, err
	})

	snapshots := services.NewSnapshotService(database.GetDB(), store.Stats)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run the enrichment worker with panic recovery so a bad record cannot
	// take the server down
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in enrichment worker: %v - restarting in 30 seconds", r)
					}
				}()
				worker.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return
			case <-time.After(30 * time.Second):
				log.Println("Enrichment worker restarting after panic recovery...")
			}
		}
	}()

	go snapshots.Start(ctx)

	router := api.SetupRouter(store, worker, snapshots, cfg.Serve.CORSOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Serve.Host, cfg.Serve.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/mymanabox/internal/api/handlers"
	"github.com/codyseavey/mymanabox/internal/metrics"
	"github.com/codyseavey/mymanabox/internal/services"
)

// SetupRouter wires the HTTP API around the collection store and services
func SetupRouter(store *services.CollectionStore, worker *services.EnrichWorker, snapshots *services.SnapshotService, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = corsOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(config))
	router.Use(metricsMiddleware())

	collectionHandler := handlers.NewCollectionHandler(store)
	enrichHandler := handlers.NewEnrichHandler(worker)
	snapshotHandler := handlers.NewSnapshotHandler(snapshots)

	api := router.Group("/api")
	{
		collection := api.Group("/collection")
		{
			collection.GET("", collectionHandler.GetCollection)
			collection.GET("/stats", collectionHandler.GetStats)
			collection.GET("/groups/:kind", collectionHandler.GetGroups)
			collection.GET("/search", collectionHandler.Search)
			collection.GET("/duplicates", collectionHandler.GetDuplicates)
			collection.GET("/curve", collectionHandler.GetManaCurve)
			collection.GET("/expensive", collectionHandler.GetExpensive)
			collection.POST("/export", collectionHandler.Export)
			collection.POST("/reload", collectionHandler.Reload)
			collection.POST("/enrich", enrichHandler.StartEnrich)
			collection.GET("/enrich/status", enrichHandler.GetStatus)
		}

		snapshotsGroup := api.Group("/snapshots")
		{
			snapshotsGroup.GET("", snapshotHandler.GetHistory)
			snapshotsGroup.POST("", snapshotHandler.TakeSnapshot)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

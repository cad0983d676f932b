package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/natpakans-stack/carpark-live-dashboard/config"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/mw"
)

// NewRouter creates and configures a new Gin router. The response cache is
// the same instance the refresh scheduler flushes after a snapshot swap.
func NewRouter(h *Handler, cfg *config.ServerConfig, respCache *cache.Cache) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	caching := mw.Cache(respCache, time.Duration(cfg.CacheTTLSeconds)*time.Second)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/events", caching, h.GetEvents)
		api.GET("/facets", caching, h.GetFacets)
		api.GET("/recent", caching, h.GetRecent)

		api.GET("/stats/locations", caching, h.GetLocationStats)
		api.GET("/stats/floors", caching, h.GetFloorStats)
		api.GET("/stats/trend", caching, h.GetTrend)
		api.GET("/stats/averages", caching, h.GetAverages)
		api.GET("/stats/daily", caching, h.GetDailyStats)

		// Status carries a live countdown, so it is never cached.
		api.GET("/status", h.GetStatus)
		api.POST("/refresh", h.PostRefresh)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}

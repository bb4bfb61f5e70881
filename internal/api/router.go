package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"complaint-intake-backend/config"
	"complaint-intake-backend/internal/dialog"
	"complaint-intake-backend/internal/mw"
	"complaint-intake-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, engine *dialog.Engine, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, engine)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/healthz", handler.GetHealth)

	// Telephony providers deliver to a fixed path outside the API group.
	r.POST("/webhook/twilio", rateLimiter, handler.PostTwilioWebhook)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// POST /api/chat
		api.POST("/chat", handler.PostChat)

		// GET /api/resources
		api.GET("/resources", caching, handler.GetResources)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
	}

	return r
}

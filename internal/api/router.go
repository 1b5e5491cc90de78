package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"lasalleserve-backend/config"
	"lasalleserve-backend/internal/mw"
	"lasalleserve-backend/internal/session"
	"lasalleserve-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, sessions session.Store) *gin.Engine {
	r := gin.Default()

	if len(cfg.Server.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	handler := NewHandler(s)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	auth := mw.Auth(sessions, cfg.Session.CookieName)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Public registry reads
		api.GET("/assets", caching, handler.ListAssets)
		api.GET("/assets/:id", caching, handler.GetAsset)

		authed := api.Group("")
		authed.Use(auth)
		{
			authed.POST("/assets", handler.CreateAsset)
			authed.PUT("/assets/:id", handler.UpdateAsset)
			authed.DELETE("/assets/:id", handler.DeleteAsset)

			authed.POST("/loans", handler.SubmitLoan)
			authed.GET("/loans", handler.ListLoans)
			authed.GET("/loans/:id", handler.GetLoan)
			authed.POST("/loans/:id/approve", handler.ApproveLoan)
			authed.POST("/loans/:id/reject", handler.RejectLoan)
			authed.GET("/loans/:id/return", handler.OpenReturn)
			authed.POST("/loans/:id/return", handler.ProcessReturn)

			authed.POST("/reports", handler.FileReport)
			authed.GET("/reports", handler.ListReports)
			authed.PUT("/reports/:id/priority", handler.SetReportPriority)
			authed.PUT("/reports/:id/status", handler.AdvanceReportStatus)

			authed.GET("/stats", handler.GetStats)
		}
	}

	return r
}

package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kolinabir/hirelens/internal/handlers"
)

// NewRouter wires the REST API consumed by the admin dashboard.
func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // the dashboard is served from a separate origin
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api/v1")
	{
		api.POST("/extract", h.Extract)
		api.POST("/posts", h.IngestPosts)

		api.GET("/jobs", h.ListJobs)
		api.POST("/jobs", h.CreateJob)
		api.GET("/jobs/:id", h.GetJob)
		api.PUT("/jobs/:id", h.UpdateJob)
		api.DELETE("/jobs/:id", h.DeleteJob)

		api.GET("/targets", h.ListTargets)
		api.POST("/targets", h.CreateTarget)
		api.PUT("/targets/:id", h.UpdateTarget)
		api.DELETE("/targets/:id", h.DeleteTarget)

		api.GET("/subscribers", h.ListSubscribers)
		api.POST("/subscribers", h.CreateSubscriber)
		api.DELETE("/subscribers/:id", h.DeleteSubscriber)

		api.POST("/digest", h.SendDigest)
	}

	return r
}

package router

import (
	"event-scanner-service/handler"
	"event-scanner-service/middleware"
	"event-scanner-service/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(eventStore *store.Store) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.PrometheusMiddleware("event-scanner-service"))

	handler.InitStore(eventStore)

	r.GET("/api/events", handler.GetEvents)
	r.GET("/api/events/count", handler.GetEventCount)
	r.GET("/api/events/:id", handler.GetEvent)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "event-scanner-service"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "event-scanner-service"})
	})

	return r
}

package transport

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/gif-overlay/internal/pkg/metrics"
	"github.com/ds124wfegd/gif-overlay/internal/transport/middleware"
)

func InitRoutes(overlayHandler *OverlayHandler, m *metrics.Metrics) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}

	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig))
	router.Use(middleware.Logger())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "GIF Text Overlay API is running!"})
	})

	router.POST("/overlay-text", middleware.Recovery(msgProcessingFailed), overlayHandler.OverlayText)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "gif-overlay",
		})
	})

	router.GET("/metrics", gin.WrapH(m.Handler()))

	return router
}

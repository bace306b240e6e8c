// Package httpapi exposes the estimation pipeline over HTTP.
package httpapi

import (
	"net/http"
	"regexp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Vercel preview deploys get their own subdomains, so they are allowed by
// pattern in addition to the exact configured origin.
var previewOriginRegex = regexp.MustCompile(`^https://.*\.vercel\.app$`)

// NewRouter registers the HTTP routes and CORS policy.
func NewRouter(s *Server, corsOrigin string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Even a panic must come back as the structured error payload, never a
	// bare 500 or a dead process.
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}))

	corsConfig := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return previewOriginRegex.MatchString(origin)
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}
	if corsOrigin != "" {
		corsConfig.AllowOrigins = []string{corsOrigin}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/", s.root)
	router.GET("/health", s.health)
	router.POST("/estimate", s.postEstimate)
	return router
}

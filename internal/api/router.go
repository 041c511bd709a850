package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pharmacy-options-service/internal/api/handlers"
	"pharmacy-options-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns the gin
// engine. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(recommender *services.Recommender, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())
	r.Use(cors.New(corsConfig(allowOrigins)))

	recommendHandler := &handlers.RecommendHandler{Service: recommender}

	r.GET("/health", handlers.Health)
	r.POST("/best_options", recommendHandler.BestOptions)

	return r
}

func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}

	// gin-contrib/cors refuses credentials with a wildcard origin, so the
	// wildcard path switches to allow-all without credentials.
	if len(allowOrigins) == 1 && allowOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = allowOrigins
	cfg.AllowCredentials = true
	return cfg
}

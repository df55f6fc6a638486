package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/occulog/occulog/internal/api/handlers"
	"github.com/occulog/occulog/internal/api/middleware"
)

type Deps struct {
	Query  *handlers.QueryHandler
	Health *handlers.HealthHandler
	WS     *handlers.WSHandler

	Logger     *logrus.Logger
	AuthSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestLogger(d.Logger))

	r.GET("/health", d.Health.Check)

	api := r.Group("/")
	if d.AuthSecret != "" {
		api.Use(middleware.BearerAuth(d.AuthSecret))
	}

	api.POST("/rag/query", d.Query.Query)
	api.POST("/query", d.Query.Assist)
	api.GET("/ws/query", d.WS.QueryWS)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	corpusSize int
	indexSize  int
}

func NewHealthHandler(corpusSize, indexSize int) *HealthHandler {
	return &HealthHandler{corpusSize: corpusSize, indexSize: indexSize}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "occulog",
		"corpus":  h.corpusSize,
		"indexed": h.indexSize,
	})
}

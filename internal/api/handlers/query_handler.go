package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/occulog/occulog/internal/utils"
)

type QueryHandler struct {
	engine Answerer
}

func NewQueryHandler(engine Answerer) *QueryHandler {
	return &QueryHandler{engine: engine}
}

type QueryRequest struct {
	Question string `json:"question" binding:"required"`
	Model    string `json:"model"`
}

// Query answers one question in plain mode. The engine converts internal
// failures into answer strings, so this always returns 200 with a
// well-formed body once the request itself parses.
func (h *QueryHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "QueryHandler.Query", "invalid request body", err))
		return
	}

	res := h.engine.Answer(c.Request.Context(), req.Question, req.Model)
	c.JSON(http.StatusOK, res)
}

// Assist answers one question with query rewrite, conversation memory, and
// self-critique.
func (h *QueryHandler) Assist(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "QueryHandler.Assist", "invalid request body", err))
		return
	}

	res := h.engine.AnswerAssist(c.Request.Context(), req.Question, req.Model)
	c.JSON(http.StatusOK, res)
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/occulog/occulog/internal/retrieval"
	"github.com/occulog/occulog/internal/utils"
)

// Answerer is the slice of the retrieval engine the request layer needs.
type Answerer interface {
	Answer(ctx context.Context, question, model string) retrieval.Result
	AnswerAssist(ctx context.Context, question, model string) retrieval.Result
	Stream(ctx context.Context, question, model string) (<-chan string, <-chan error)
}

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huduassist/huduassist-be/types"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidInput),
		errors.Is(err, types.ErrUnreadableDocument),
		errors.Is(err, types.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrDuplicateSession):
		return http.StatusConflict
	case errors.Is(err, types.ErrEmbeddingService),
		errors.Is(err, types.ErrSynthesis):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func sendError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), types.DataResponse{
		Status:  "error",
		Message: err.Error(),
	})
}

func sendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   data,
	})
}

package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/huduassist/huduassist-be/service"
	"github.com/huduassist/huduassist-be/types"
)

type QueryHandler struct {
	ragService *service.RAGService
}

func NewQueryHandler(ragService *service.RAGService) *QueryHandler {
	return &QueryHandler{
		ragService: ragService,
	}
}

// HandleQuery answers a question. With a resolving session_id the answer is
// grounded in the uploaded document; otherwise it falls back to general mode,
// which is deliberate behavior, not an error.
func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, fmt.Errorf("%w: %v", types.ErrInvalidInput, err))
		return
	}

	resp, err := h.ragService.Answer(c.Request.Context(), req.Query, req.SessionID)
	if err != nil {
		sendError(c, err)
		return
	}

	sendSuccess(c, resp)
}

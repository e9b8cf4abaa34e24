package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/huduassist/huduassist-be/service"
	"github.com/huduassist/huduassist-be/types"
)

type SessionHandler struct {
	ragService *service.RAGService
}

func NewSessionHandler(ragService *service.RAGService) *SessionHandler {
	return &SessionHandler{
		ragService: ragService,
	}
}

// HandleDelete removes a session. Deleting an unknown id returns 404; a
// repeated delete gets the same 404, never a crash.
func (h *SessionHandler) HandleDelete(c *gin.Context) {
	sessionID := c.Param("id")
	if err := h.ragService.Delete(sessionID); err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, gin.H{
		"message":    "Session deleted successfully",
		"session_id": sessionID,
	})
}

// HandleList enumerates live sessions. This is a debugging surface with no
// access control; a production deployment must put its own auth in front.
func (h *SessionHandler) HandleList(c *gin.Context) {
	sessions := h.ragService.List()
	sendSuccess(c, types.SessionListResponse{
		ActiveSessions: len(sessions),
		Sessions:       sessions,
	})
}

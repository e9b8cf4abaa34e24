package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/huduassist/huduassist-be/service"
	"github.com/huduassist/huduassist-be/types"
)

type UploadHandler struct {
	fileService *service.FileService
	ragService  *service.RAGService
	maxSize     int64
}

func NewUploadHandler(fileService *service.FileService, ragService *service.RAGService, maxSize int64) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
		ragService:  ragService,
		maxSize:     maxSize,
	}
}

// UploadDocumentHandler ingests a multipart PDF upload and returns the
// session id for subsequent queries. An optional session_id form field lets
// the client choose its own id.
func (h *UploadHandler) UploadDocumentHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		sendError(c, fmt.Errorf("%w: missing file field", types.ErrInvalidInput))
		return
	}
	if file.Size > h.maxSize {
		sendError(c, fmt.Errorf("%w: file exceeds %d bytes", types.ErrInvalidInput, h.maxSize))
		return
	}
	preferredID := c.PostForm("session_id")

	path, cleanup, err := h.fileService.SaveUpload(file)
	if err != nil {
		sendError(c, err)
		return
	}
	defer cleanup()

	sessionID, err := h.ragService.Ingest(c.Request.Context(), path, file.Filename, preferredID)
	if err != nil {
		sendError(c, err)
		return
	}

	sendSuccess(c, types.UploadResponse{
		SessionID: sessionID,
		Filename:  file.Filename,
		Message:   "Document uploaded and processed successfully",
	})
}

// UploadFromURLHandler downloads a PDF from a URL and ingests it.
func (h *UploadHandler) UploadFromURLHandler(c *gin.Context) {
	var req types.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, fmt.Errorf("%w: %v", types.ErrInvalidInput, err))
		return
	}

	path, filename, cleanup, err := h.fileService.DownloadFromURL(c.Request.Context(), req.URL)
	if err != nil {
		sendError(c, err)
		return
	}
	defer cleanup()

	sessionID, err := h.ragService.Ingest(c.Request.Context(), path, filename, req.SessionID)
	if err != nil {
		sendError(c, err)
		return
	}

	sendSuccess(c, types.UploadResponse{
		SessionID: sessionID,
		Filename:  filename,
		Message:   "Document uploaded and processed successfully",
	})
}

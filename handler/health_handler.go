package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huduassist/huduassist-be/types"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

type HealthHandler struct {
	apiKeyConfigured bool
	modulesLoaded    bool
}

func NewHealthHandler(apiKeyConfigured, modulesLoaded bool) *HealthHandler {
	return &HealthHandler{
		apiKeyConfigured: apiKeyConfigured,
		modulesLoaded:    modulesLoaded,
	}
}

// HandleRoot serves the service banner.
func (h *HealthHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "HuduAssist KE API",
		"version": "1.0.0",
		"status":  "running",
	})
}

// HandleHealth reports readiness: healthy when the provider credential is
// configured and all modules initialized, degraded otherwise with itemized
// reasons.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	var reasons []string
	if !h.apiKeyConfigured {
		reasons = append(reasons, "API key is not configured")
	}
	if !h.modulesLoaded {
		reasons = append(reasons, "core modules failed to initialize")
	}

	status := statusHealthy
	if len(reasons) > 0 {
		status = statusDegraded
	}

	c.JSON(http.StatusOK, types.HealthResponse{
		Status:           status,
		APIKeyConfigured: h.apiKeyConfigured,
		ModulesLoaded:    h.modulesLoaded,
		Reasons:          reasons,
	})
}

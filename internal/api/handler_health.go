package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHealth handles the GET /healthz liveness probe.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

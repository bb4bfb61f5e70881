package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// resourceResponse is the diagnostic view of one catalog entry.
type resourceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// GetResources handles the GET /api/resources request: a diagnostic listing
// of the active catalog the resolver matches against.
func (h *Handler) GetResources(c *gin.Context) {
	resources, err := h.store.ListActiveResources(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve resources"})
		return
	}

	responses := make([]resourceResponse, 0, len(resources))
	for _, r := range resources {
		responses = append(responses, resourceResponse{
			ID:       r.ID,
			Name:     r.Name,
			Location: r.Location,
		})
	}
	c.JSON(http.StatusOK, responses)
}

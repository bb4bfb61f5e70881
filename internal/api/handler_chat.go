package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	UserID  string `json:"user_id" binding:"required,max=64"`
	Message string `json:"message" binding:"required"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// PostChat handles the POST /api/chat request: one inbound message, one reply.
func (h *Handler) PostChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.engine.Process(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

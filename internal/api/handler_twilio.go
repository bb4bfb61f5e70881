package api

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"
)

// twimlResponse is the markup envelope a telephony provider expects back.
// encoding/xml escapes the message body, so user-echoed text is safe to embed.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// PostTwilioWebhook handles the POST /webhook/twilio request. The provider
// sends sender/body form fields and expects a TwiML reply.
func (h *Handler) PostTwilioWebhook(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")
	if from == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "From is required"})
		return
	}

	reply, err := h.engine.Process(c.Request.Context(), from, body)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.XML(http.StatusOK, twimlResponse{Message: reply})
}

package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"medilink-backend/models"
	"medilink-backend/services"

	"github.com/gin-gonic/gin"
)

type ChatbotController struct {
	chatbotService *services.ChatbotService
}

func NewChatbotController(chatbotService *services.ChatbotService) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
	}
}

// HandleChat processes chat messages
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	// An empty body falls through to the missing message check.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	if req.Channel == "" {
		req.Channel = models.ChannelWeb
	}

	response, err := cc.chatbotService.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		status, body := chatError(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, response)
}

// chatError maps a ProcessMessage failure to its HTTP status and body
func chatError(err error) (int, gin.H) {
	switch {
	case errors.Is(err, services.ErrMissingMessage):
		return http.StatusBadRequest, gin.H{"error": "Missing message"}
	case errors.Is(err, services.ErrUpstreamFailed):
		log.Printf("Upstream chat failed: %v", err)
		return http.StatusBadGateway, gin.H{
			"error":   "Upstream error",
			"details": err.Error(),
		}
	default:
		log.Printf("Chat failed: %v", err)
		return http.StatusInternalServerError, gin.H{
			"error":   "Failed to process message",
			"details": err.Error(),
		}
	}
}

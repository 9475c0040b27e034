// controllers/whatsapp_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"medilink-backend/models"
	"medilink-backend/services"

	"github.com/gin-gonic/gin"
)

// webhookReplyTimeout bounds building and sending one WhatsApp reply.
const webhookReplyTimeout = 45 * time.Second

type WhatsAppController struct {
	whatsappService *services.WhatsAppService
	chatbotService  *services.ChatbotService

	inflight sync.WaitGroup
}

func NewWhatsAppController(whatsappService *services.WhatsAppService, chatbotService *services.ChatbotService) *WhatsAppController {
	return &WhatsAppController{
		whatsappService: whatsappService,
		chatbotService:  chatbotService,
	}
}

// VerifyWebhook handles the webhook verification request from WhatsApp
func (wc *WhatsAppController) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	verifyToken := wc.whatsappService.GetVerifyToken()
	if mode == "subscribe" && verifyToken != "" && token == verifyToken {
		log.Println("WhatsApp webhook verified")
		c.String(http.StatusOK, challenge)
		return
	}

	c.JSON(http.StatusForbidden, gin.H{"error": "Verification failed"})
}

// HandleWebhook processes incoming WhatsApp messages
func (wc *WhatsAppController) HandleWebhook(c *gin.Context) {
	var webhookData models.WhatsAppWebhookData

	if err := c.ShouldBindJSON(&webhookData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data"})
		return
	}

	// The reply outlives the webhook request.
	ctx := context.WithoutCancel(c.Request.Context())

	wc.inflight.Add(1)
	go func() {
		defer wc.inflight.Done()
		wc.processWebhookData(ctx, webhookData)
	}()

	// Respond immediately to WhatsApp
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// Wait blocks until every accepted webhook has been answered
func (wc *WhatsAppController) Wait() {
	wc.inflight.Wait()
}

func (wc *WhatsAppController) processWebhookData(ctx context.Context, webhookData models.WhatsAppWebhookData) {
	for _, entry := range webhookData.Entry {
		for _, change := range entry.Changes {
			if change.Field == "messages" {
				wc.processMessages(ctx, change.Value)
			}
		}
	}
}

func (wc *WhatsAppController) processMessages(ctx context.Context, value models.WhatsAppValue) {
	for _, message := range value.Messages {
		wc.handleIncomingMessage(ctx, message)
	}

	for _, status := range value.Statuses {
		log.Printf("Message %s to %s: %s", status.ID, status.RecipientID, status.Status)
	}
}

// handleIncomingMessage answers a text message with the chat reply; other
// message types are ignored.
func (wc *WhatsAppController) handleIncomingMessage(ctx context.Context, message models.WhatsAppMessage) {
	if message.Type != "text" || message.Text == nil {
		log.Printf("Ignoring WhatsApp %s message from %s", message.Type, message.From)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, webhookReplyTimeout)
	defer cancel()

	req := models.ChatRequest{
		Message:   strings.TrimSpace(message.Text.Body),
		SessionID: message.From,
		UserID:    message.From,
		Channel:   models.ChannelWhatsApp,
	}

	response, err := wc.chatbotService.ProcessMessage(ctx, req)
	if err != nil {
		log.Printf("Failed to answer WhatsApp message %s: %v", message.ID, err)
		return
	}

	if err := wc.whatsappService.SendTextMessage(ctx, message.From, response.Reply); err != nil {
		log.Printf("Failed to send WhatsApp reply to %s: %v", message.From, err)
	}
}

// GetStatus returns WhatsApp service status
func (wc *WhatsAppController) GetStatus(c *gin.Context) {
	count, last := wc.whatsappService.MessagesSent()

	status := gin.H{
		"enabled":       wc.whatsappService.Enabled(),
		"messages_sent": count,
	}
	if !last.IsZero() {
		status["last_message_at"] = last
	}
	c.JSON(http.StatusOK, status)
}

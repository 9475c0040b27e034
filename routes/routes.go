package routes

import (
	"context"
	"net/http"
	"time"

	"medilink-backend/config"
	"medilink-backend/controllers"
	"medilink-backend/middleware"
	"medilink-backend/services"

	"github.com/gin-gonic/gin"
)

// Dependencies are the services the route table is built from
type Dependencies struct {
	Config   *config.Config
	Chatbot  *services.ChatbotService
	WhatsApp *services.WhatsAppService
	Doctors  controllers.DoctorReader

	// HealthCheck pings the database; nil reports the database as not checked.
	HealthCheck func(ctx context.Context) error
}

// SetupRoutes registers every endpoint and returns the WhatsApp controller so
// callers can drain in-flight webhook replies on shutdown.
func SetupRoutes(router *gin.Engine, deps Dependencies) *controllers.WhatsAppController {
	chatbotController := controllers.NewChatbotController(deps.Chatbot)
	doctorController := controllers.NewDoctorController(deps.Doctors)
	wsController := controllers.NewWebSocketController(deps.Chatbot, deps.Config.AllowedOrigins)
	whatsappController := controllers.NewWhatsAppController(deps.WhatsApp, deps.Chatbot)

	router.GET("/health", healthHandler(deps))

	public := router.Group("/api/v1")
	{
		public.POST("/chat", chatbotController.HandleChat)
		public.GET("/doctors", doctorController.ListDoctors)
		public.GET("/doctors/:id", doctorController.GetDoctor)

		// WebSocket for real-time chat
		public.GET("/ws", wsController.HandleWebSocket)
	}

	// Legacy paths used by the web client
	router.POST("/api/medivirtuoso", chatbotController.HandleChat)
	router.GET("/api/doctors", doctorController.ListDoctorsArray)

	whatsapp := router.Group("/api/whatsapp")
	{
		whatsapp.GET("/webhook", whatsappController.VerifyWebhook)
		whatsapp.POST("/webhook",
			middleware.VerifyWhatsAppSignature(deps.WhatsApp.AppSecret()),
			whatsappController.HandleWebhook,
		)
		whatsapp.GET("/status", whatsappController.GetStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	return whatsappController
}

func healthHandler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":              "ok",
			"timestamp":           time.Now(),
			"database":            "unchecked",
			"upstream":            deps.Chatbot.UsesUpstream(),
			"whatsapp_configured": deps.WhatsApp.Enabled(),
		}

		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(c.Request.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["database"] = err.Error()
			} else {
				body["database"] = "ok"
			}
		}

		c.JSON(status, body)
	}
}

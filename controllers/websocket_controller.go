package controllers

import (
	"log"
	"net/http"
	"slices"

	"medilink-backend/models"
	"medilink-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketController struct {
	chatbotService *services.ChatbotService
	upgrader       websocket.Upgrader
}

// NewWebSocketController accepts upgrades from allowedOrigins; an empty list
// or a "*" entry allows any origin.
func NewWebSocketController(chatbotService *services.ChatbotService, allowedOrigins []string) *WebSocketController {
	return &WebSocketController{
		chatbotService: chatbotService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

type wsFrame struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := wc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")

	for {
		var frame wsFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("Read error:", err)
			}
			break
		}

		req := models.ChatRequest{
			Message:   frame.Message,
			SessionID: sessionID,
			UserID:    frame.UserID,
			Channel:   models.ChannelWebSocket,
		}

		response, err := wc.chatbotService.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			_, body := chatError(err)
			if err := conn.WriteJSON(body); err != nil {
				break
			}
			continue
		}

		if err := conn.WriteJSON(response); err != nil {
			log.Println("Write error:", err)
			break
		}
	}
}

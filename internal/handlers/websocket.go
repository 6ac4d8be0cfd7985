package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/seagalputra/talkbox/internal/database"
	"github.com/seagalputra/talkbox/internal/middleware"
	ws "github.com/seagalputra/talkbox/internal/websocket"
)

// WebSocketHandler открывает канал комнаты: одно соединение на одну комнату
type WebSocketHandler struct {
	db             *database.Database
	hub            *ws.Hub
	messageHandler *InboundMessageHandler
	upgrader       websocket.Upgrader
}

func NewWebSocketHandler(db *database.Database, hub *ws.Hub, messageHandler *InboundMessageHandler) *WebSocketHandler {
	return &WebSocketHandler{
		db:             db,
		hub:            hub,
		messageHandler: messageHandler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Проверить origin в prod
				return true
			},
		},
	}
}

// HandleRoomSocket обрабатывает соединение /ws/rooms/:id
func (h *WebSocketHandler) HandleRoomSocket(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "unauthorized"})
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid room id"})
		return
	}

	// Подключаться к комнате могут только её участники
	ok, err := h.db.IsParticipant(roomID.String(), userID.(uuid.UUID).String())
	if err != nil || !ok {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "you are not a participant of this room"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID.(uuid.UUID), roomID)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.messageHandler)
}

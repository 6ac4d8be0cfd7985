package handlers

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/seagalputra/talkbox/internal/database"
	"github.com/seagalputra/talkbox/internal/models"
	"github.com/seagalputra/talkbox/internal/websocket"
)

// InboundMessageHandler обрабатывает кадры {body, attachment} от сокетов:
// валидирует, сохраняет и рассылает эхо всем участникам комнаты
type InboundMessageHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewInboundMessageHandler(db *database.Database, hub *websocket.Hub) *InboundMessageHandler {
	return &InboundMessageHandler{
		db:  db,
		hub: hub,
	}
}

func (h *InboundMessageHandler) HandleInbound(client *websocket.Client, frame *websocket.Inbound) error {
	if strings.TrimSpace(frame.Body) == "" {
		return websocket.ErrEmptyBody
	}

	message := &models.Message{
		RoomID:     client.RoomID,
		UserID:     client.UserID,
		Body:       frame.Body,
		Attachment: frame.Attachment,
		CreatedAt:  time.Now(),
	}

	if err := h.db.SaveMessage(message); err != nil {
		log.Printf("Failed to save message: %v", err)
		return err
	}

	// Перечитываем с данными отправителя для эхо-кадра
	full, err := h.db.GetMessage(message.ID.String())
	if err != nil {
		log.Printf("Failed to load saved message: %v", err)
		return err
	}

	payload, err := json.Marshal(formatMessageResponse(full))
	if err != nil {
		return err
	}

	// Эхо всем в комнате, включая отправителя: клиент не делает
	// оптимистичной вставки и ждет подтверждения с сервера
	h.hub.Broadcast(client.RoomID, payload)

	go h.db.UpdateLastSeen(client.UserID.String())
	go h.db.TouchRoom(client.RoomID.String())

	return nil
}

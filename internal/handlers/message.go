package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seagalputra/talkbox/internal/database"
	"github.com/seagalputra/talkbox/internal/handlers/dto"
	"github.com/seagalputra/talkbox/internal/middleware"
	"github.com/seagalputra/talkbox/internal/models"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type MessageHandler struct {
	db *database.Database
}

func NewMessageHandler(db *database.Database) *MessageHandler {
	return &MessageHandler{db: db}
}

// GetRoomMessages отдаёт историю комнаты в конверте {status, meta, data}.
// Пустая комната дает success с пустым data, а не ошибку
func (h *MessageHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	roomID := c.Param("id")

	room, err := h.db.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "room not found"})
		return
	}

	if !isParticipant(room, userID) {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "you are not a participant of this room"})
		return
	}

	limit := defaultHistoryLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxHistoryLimit {
			limit = parsed
		}
	}

	var cursor *string
	var beforeID *uuid.UUID
	if before := c.Query("cursor"); before != "" {
		if id, err := uuid.Parse(before); err == nil {
			beforeID = &id
			cursor = &before
		}
	}

	messages, err := h.db.GetRoomMessages(roomID, limit, beforeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to get messages"})
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		result[i] = formatMessageResponse(&messages[i])
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Status: "success",
		Meta:   dto.Meta{Cursor: cursor, Size: len(result)},
		Data:   result,
	})
}

// formatMessageResponse форматирует ответ для сообщения
func formatMessageResponse(msg *models.Message) dto.MessageResponse {
	response := dto.MessageResponse{
		ID:         msg.ID,
		Body:       msg.Body,
		Attachment: msg.Attachment,
		UserID:     msg.UserID,
		RoomID:     msg.RoomID,
		CreatedAt:  msg.CreatedAt,
	}

	// Если загружена информация о пользователе
	if msg.User.ID != uuid.Nil {
		response.User = dto.UserInfo{
			ID:        msg.User.ID,
			FirstName: msg.User.FirstName,
			LastName:  msg.User.LastName,
			Username:  msg.User.Username,
			Email:     msg.User.Email,
			Avatar:    msg.User.Avatar,
		}
	}

	return response
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seagalputra/talkbox/internal/database"
	"github.com/seagalputra/talkbox/internal/middleware"
	"github.com/seagalputra/talkbox/internal/models"
	"github.com/seagalputra/talkbox/internal/websocket"
)

type RoomHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewRoomHandler(db *database.Database, hub *websocket.Hub) *RoomHandler {
	return &RoomHandler{db: db, hub: hub}
}

// CreateRoom создает или возвращает приватную комнату с другим пользователем
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		UserID string `json:"userId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	targetUserID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid user id"})
		return
	}

	if userID == targetUserID {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "cannot create room with yourself"})
		return
	}

	room, err := h.db.GetOrCreatePrivateRoom(userID, targetUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to create room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   formatRoomResponse(room),
	})
}

// GetMyRooms получает список диалогов пользователя для inbox
func (h *RoomHandler) GetMyRooms(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	rooms, err := h.db.GetUserRooms(userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to get rooms"})
		return
	}

	roomsResponse := make([]gin.H, len(rooms))
	for i, room := range rooms {
		roomResponse := formatRoomResponse(&room)

		// Последнее сообщение для превью диалога
		if last, err := h.db.GetLastMessage(room.ID.String()); err == nil {
			roomResponse["lastMessage"] = gin.H{
				"id":        last.ID,
				"body":      last.Body,
				"userId":    last.UserID,
				"createdAt": last.CreatedAt,
			}
		}

		// Собеседник, не совпадающий с текущим пользователем,
		// даёт имя и аватар диалога
		for _, p := range room.Participants {
			if p.ID != userID {
				roomResponse["peer"] = gin.H{
					"id":        p.ID,
					"firstName": p.FirstName,
					"lastName":  p.LastName,
					"username":  p.Username,
					"avatar":    p.Avatar,
				}
				break
			}
		}

		roomResponse["onlineCount"] = len(h.hub.GetRoomUsers(room.ID))

		roomsResponse[i] = roomResponse
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": roomsResponse})
}

// GetRoom получает информацию о конкретной комнате
func (h *RoomHandler) GetRoom(c *gin.Context) {
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

	response := formatRoomResponse(room)
	response["onlineUsers"] = h.hub.GetRoomUsers(room.ID)

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": response})
}

func isParticipant(room *models.Room, userID uuid.UUID) bool {
	for _, p := range room.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// formatRoomResponse форматирует ответ для комнаты
func formatRoomResponse(room *models.Room) gin.H {
	participants := make([]gin.H, len(room.Participants))
	for i, p := range room.Participants {
		participants[i] = gin.H{
			"id":        p.ID,
			"firstName": p.FirstName,
			"lastName":  p.LastName,
			"username":  p.Username,
			"email":     p.Email,
			"avatar":    p.Avatar,
		}
	}

	return gin.H{
		"id":           room.ID,
		"roomType":     room.Type,
		"createdAt":    room.CreatedAt,
		"updatedAt":    room.UpdatedAt,
		"participants": participants,
	}
}

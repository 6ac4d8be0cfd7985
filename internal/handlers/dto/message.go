package dto

import (
	"github.com/google/uuid"
	"time"
)

// MessageResponse описывает сообщение в том виде, в котором его видит клиент:
// и в истории по REST, и в эхо-кадре по сокету
type MessageResponse struct {
	ID         uuid.UUID `json:"id"`
	Body       string    `json:"body"`
	Attachment *string   `json:"attachment,omitempty"`
	UserID     uuid.UUID `json:"userId"`
	RoomID     uuid.UUID `json:"roomId"`
	CreatedAt  time.Time `json:"createdAt"`
	User       UserInfo  `json:"user"`
}

type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  *string   `json:"lastName,omitempty"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar,omitempty"`
}

// Envelope задает общий формат ответа REST API
type Envelope struct {
	Status string      `json:"status"`
	Meta   Meta        `json:"meta"`
	Data   interface{} `json:"data"`
}

type Meta struct {
	Cursor *string `json:"cursor"`
	Size   int     `json:"size"`
}

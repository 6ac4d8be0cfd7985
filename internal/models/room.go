package models

import (
	"github.com/google/uuid"
	"time"
)

type RoomType string

const (
	RoomPrivate RoomType = "private"
	RoomGroup   RoomType = "group"
)

type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Type      RoomType  `gorm:"not null;check:type IN ('private','group')"`
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	// Связи
	Participants []User    `gorm:"many2many:room_participants"`
	Messages     []Message `gorm:"foreignKey:RoomID"`
}

package models

import (
	"github.com/google/uuid"
	"time"
)

// Message неизменяемо после создания, сортируется по CreatedAt.
type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID     uuid.UUID `gorm:"not null;index"`
	UserID     uuid.UUID `gorm:"not null"`
	Body       string    `gorm:"not null"`
	Attachment *string
	CreatedAt  time.Time

	// Связи
	User User `gorm:"foreignKey:UserID"`
	Room Room `gorm:"foreignKey:RoomID"`
}

package models

import (
	"github.com/google/uuid"
	"time"
)

type UserStatus string

const (
	StatusInactive UserStatus = "inactive"
	StatusActive   UserStatus = "active"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName    string    `gorm:"not null"`
	LastName     *string
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Avatar       *string
	Status       UserStatus `gorm:"type:varchar(16);default:'inactive'"`
	LastSeenAt   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Связи
	Rooms []Room `gorm:"many2many:room_participants"`
}

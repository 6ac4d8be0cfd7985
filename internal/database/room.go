package database

import (
	"github.com/google/uuid"
	"github.com/seagalputra/talkbox/internal/models"
	"gorm.io/gorm"
	"time"
)

func (d *Database) GetRoom(id string) (*models.Room, error) {
	var room models.Room
	if err := d.db.Preload("Participants").First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (d *Database) GetUserRooms(userID string) ([]models.Room, error) {
	var user models.User
	err := d.db.Preload("Rooms").First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}

	// Для каждой комнаты загружаем участников
	for i := range user.Rooms {
		d.db.Model(&user.Rooms[i]).Association("Participants").Find(&user.Rooms[i].Participants)
	}

	return user.Rooms, nil
}

func (d *Database) addParticipant(userID, roomID string) error {
	var user models.User
	var room models.Room

	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	if err := d.db.First(&room, "id = ?", roomID).Error; err != nil {
		return err
	}

	return d.db.Model(&room).Association("Participants").Append(&user)
}

// GetOrCreatePrivateRoom возвращает приватную комнату пары пользователей,
// создавая её при первом обращении. Состав участников фиксируется при создании.
func (d *Database) GetOrCreatePrivateRoom(user1ID, user2ID uuid.UUID) (*models.Room, error) {
	var room models.Room

	err := d.db.
		Joins("JOIN room_participants rp1 ON rp1.room_id = rooms.id").
		Joins("JOIN room_participants rp2 ON rp2.room_id = rooms.id").
		Where("rooms.type = 'private' AND rp1.user_id = ? AND rp2.user_id = ?", user1ID, user2ID).
		First(&room).Error

	if err == nil {
		d.db.Model(&room).Association("Participants").Find(&room.Participants)
		return &room, nil
	}

	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	room = models.Room{
		Type:      models.RoomPrivate,
		CreatedBy: user1ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := d.db.Create(&room).Error; err != nil {
		return nil, err
	}

	if err := d.addParticipant(user1ID.String(), room.ID.String()); err != nil {
		return nil, err
	}

	if err := d.addParticipant(user2ID.String(), room.ID.String()); err != nil {
		return nil, err
	}

	d.db.Model(&room).Association("Participants").Find(&room.Participants)

	return &room, nil
}

// IsParticipant проверяет, состоит ли пользователь в комнате
func (d *Database) IsParticipant(roomID, userID string) (bool, error) {
	var count int64
	err := d.db.Table("room_participants").
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *Database) TouchRoom(id string) error {
	return d.db.Model(&models.Room{}).Where("id = ?", id).Update("updated_at", time.Now()).Error
}

package database

import (
	"github.com/seagalputra/talkbox/internal/models"
	"time"
)

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsUserAvailable проверяет, свободны ли email и username
func (d *Database) IsUserAvailable(email, username string) (bool, error) {
	var count int64
	err := d.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// ActivateUser переводит пользователя в статус active после подтверждения email
func (d *Database) ActivateUser(id string) (*models.User, error) {
	err := d.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.StatusActive,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return d.GetUser(id)
}

func (d *Database) UpdateUserAvatar(id, avatarURL string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("avatar", avatarURL).Error
}

func (d *Database) UpdateLastSeen(id string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error
}

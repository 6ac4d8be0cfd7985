package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/seagalputra/talkbox/internal/database"
	"github.com/seagalputra/talkbox/internal/middleware"
	"github.com/seagalputra/talkbox/internal/uploads"
)

type UserHandler struct {
	db       *database.Database
	uploader *uploads.Uploader
}

func NewUserHandler(db *database.Database, uploader *uploads.Uploader) *UserHandler {
	return &UserHandler{db: db, uploader: uploader}
}

// GetMe возвращает профиль текущего пользователя
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   formatUserInfo(user),
	})
}

// UpdateMe обновляет профиль текущего пользователя
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		FirstName string  `json:"firstName"`
		LastName  *string `json:"lastName"`
		Email     string  `json:"email" binding:"omitempty,email"`
		Password  string  `json:"password" binding:"omitempty,min=8"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "user not found"})
		return
	}

	// Обновляем только переданные поля
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "cannot hash password"})
			return
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   formatUserInfo(user),
	})
}

// UploadAvatar загружает аватар в Cloudinary и сохраняет ссылку
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "avatar upload is not configured"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "unable to get avatar file"})
		return
	}

	imageURL, err := h.uploader.UploadAvatar(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "failed to upload avatar, please try again later"})
		return
	}

	if err := h.db.UpdateUserAvatar(userID.String(), imageURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to save avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"imageUrl": imageURL},
	})
}

package handlers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/seagalputra/talkbox/internal/database"
	"github.com/seagalputra/talkbox/internal/handlers/dto"
	"github.com/seagalputra/talkbox/internal/mailer"
	"github.com/seagalputra/talkbox/internal/models"
	"github.com/seagalputra/talkbox/pkg/auth"
)

const confirmationTTL = time.Hour

type AuthHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	redis      *redis.Client
	mailer     *mailer.Mailer
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, rdb *redis.Client, m *mailer.Mailer) *AuthHandler {
	return &AuthHandler{db: db, jwtManager: jwtMgr, redis: rdb, mailer: m}
}

// Register создаёт неактивного пользователя и отправляет письмо с подтверждением
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if req.Password != req.PasswordConfirmation {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "password and confirmation don't match"})
		return
	}

	available, err := h.db.IsUserAvailable(req.Email, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to register the user"})
		return
	}
	if !available {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "user already registered, please use other email/username"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "cannot hash password"})
		return
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Status:       models.StatusInactive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.db.SaveUser(user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "failed to register the user"})
		return
	}

	// Токен подтверждения живет в Redis один час
	token := auth.GenRandString(20)
	encToken := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s$%s", user.ID, token)))
	cacheKey := "email_confirmation:" + user.ID.String()
	if err := h.redis.Set(context.Background(), cacheKey, token, confirmationTTL).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to register the user"})
		return
	}

	go h.mailer.SendConfirmation(user.Email, encToken)

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User successfully registered, please check your email to confirm your account",
	})
}

// ConfirmAccount активирует пользователя по токену из письма
func (h *AuthHandler) ConfirmAccount(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "token is missing"})
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "invalid confirmation token"})
		return
	}

	parts := strings.SplitN(string(decoded), "$", 2)
	if len(parts) != 2 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "invalid confirmation token"})
		return
	}
	userID, userToken := parts[0], parts[1]

	cacheKey := "email_confirmation:" + userID
	cached, err := h.redis.Get(context.Background(), cacheKey).Result()
	if err != nil || cached != userToken {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "invalid confirmation token"})
		return
	}

	user, err := h.db.ActivateUser(userID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "failed to confirm user account"})
		return
	}

	h.redis.Del(context.Background(), cacheKey)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User confirmed successfully",
		"data":    formatUserInfo(user),
	})
}

// Login выдаёт JWT с данными пользователя и обновляет last_seen
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	user, err := h.db.FindUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid credentials"})
		return
	}

	if err := h.db.UpdateLastSeen(user.ID.String()); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid credentials"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update last seen"})
		return
	}

	lastName := ""
	if user.LastName != nil {
		lastName = *user.LastName
	}

	token, err := h.jwtManager.Generate(user.ID.String(), user.FirstName, lastName, user.Username, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User authenticated",
		"data": dto.LoginResponse{
			User:      formatUserInfo(user),
			AuthToken: token,
		},
	})
}

// Logout ставит токен в черный список в Redis до истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
		return
	}

	ttl := time.Until(exp)
	if ttl <= 0 {
		// Токен уже истек и проверку не пройдет
		c.Status(http.StatusOK)
		return
	}

	if err := h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, ttl).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not revoke token"})
		return
	}

	c.Status(http.StatusOK)
}

func formatUserInfo(user *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
	}
}

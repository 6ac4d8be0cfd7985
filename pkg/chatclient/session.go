package chatclient

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Session хранит идентичность, декодированную из payload-сегмента токена.
// Токен здесь только потребляется: подпись не проверяется,
// этим занимается сервер
type Session struct {
	Token     string `json:"-"`
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// NewSession разбирает bearer-токен: во втором сегменте через точку
// лежит base64url с JSON данных пользователя
func NewSession(token string) (Session, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return Session{}, fmt.Errorf("%w: expected dot-delimited segments", ErrInvalidCredential)
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if s.ID == "" {
		return Session{}, fmt.Errorf("%w: payload has no user id", ErrInvalidCredential)
	}

	s.Token = token
	return s, nil
}

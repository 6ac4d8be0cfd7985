package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndVerify(t *testing.T) {
	req := require.New(t)

	mgr := NewJWTManager("test-secret", time.Hour)
	token, err := mgr.Generate("u1", "John", "Doe", "johndoe", "john@example.com")
	req.NoError(err)

	claims, err := mgr.Verify(token)
	req.NoError(err)
	req.Equal("u1", claims.Subject)
	req.Equal("u1", claims.ID)
	req.Equal("John", claims.FirstName)
	req.Equal("Doe", claims.LastName)
	req.Equal("johndoe", claims.Username)
	req.Equal("john@example.com", claims.Email)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	req := require.New(t)

	mgr := NewJWTManager("test-secret", time.Hour)
	token, err := mgr.Generate("u1", "John", "Doe", "johndoe", "john@example.com")
	req.NoError(err)

	other := NewJWTManager("other-secret", time.Hour)
	_, err = other.Verify(token)
	req.Error(err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	req := require.New(t)

	mgr := NewJWTManager("test-secret", -time.Minute)
	token, err := mgr.Generate("u1", "John", "Doe", "johndoe", "john@example.com")
	req.NoError(err)

	_, err = mgr.Verify(token)
	req.Error(err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	req := require.New(t)

	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer some-token")

	token, err := ExtractTokenFromHeader(r)
	req.NoError(err)
	req.Equal("some-token", token)

	r.Header.Set("Authorization", "some-token")
	_, err = ExtractTokenFromHeader(r)
	req.Error(err)
}

package chatclient

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seagalputra/talkbox/pkg/auth"
)

func TestNewSession_DecodesPayloadSegment(t *testing.T) {
	req := require.New(t)

	payload := base64.RawURLEncoding.EncodeToString([]byte(
		`{"id":"u1","firstName":"John","lastName":"Doe","username":"johndoe","email":"john@example.com"}`))
	token := "header." + payload + ".signature"

	session, err := NewSession(token)
	req.NoError(err)
	req.Equal("u1", session.ID)
	req.Equal("John", session.FirstName)
	req.Equal("Doe", session.LastName)
	req.Equal("johndoe", session.Username)
	req.Equal("john@example.com", session.Email)
	req.Equal(token, session.Token)
}

func TestNewSession_AcceptsServerIssuedToken(t *testing.T) {
	req := require.New(t)

	mgr := auth.NewJWTManager("test-secret", time.Hour)
	token, err := mgr.Generate("u1", "John", "Doe", "johndoe", "john@example.com")
	req.NoError(err)

	session, err := NewSession(token)
	req.NoError(err)
	req.Equal("u1", session.ID)
	req.Equal("johndoe", session.Username)
}

func TestNewSession_RejectsMalformedToken(t *testing.T) {
	req := require.New(t)

	_, err := NewSession("not-a-token")
	req.ErrorIs(err, ErrInvalidCredential)

	_, err = NewSession("header.%%%.signature")
	req.ErrorIs(err, ErrInvalidCredential)

	noID := base64.RawURLEncoding.EncodeToString([]byte(`{"username":"ghost"}`))
	_, err = NewSession("header." + noID + ".signature")
	req.ErrorIs(err, ErrInvalidCredential)
}

package chatclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSession() Session {
	return Session{Token: "header.payload.signature", ID: "u1", Username: "johndoe"}
}

func historyServer(t *testing.T, messages []Message) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer header.payload.signature", r.Header.Get("Authorization"))
		require.Equal(t, "/rooms/r1/messages", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"meta":   map[string]interface{}{"cursor": nil, "size": len(messages)},
			"data":   messages,
		})
	}))
}

func TestHistoryFetcher_FetchReturnsOrderedMessages(t *testing.T) {
	req := require.New(t)
	base := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	srv := historyServer(t, []Message{
		msgAt("m1", "Hello, how are you?", base),
		msgAt("m2", "I'm good", base.Add(time.Minute)),
	})
	defer srv.Close()

	fetcher := NewHistoryFetcher(srv.URL, testSession(), srv.Client())
	messages, err := fetcher.Fetch(context.Background(), "r1", 20)
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("m1", messages[0].ID)
	req.Equal("m2", messages[1].ID)
}

func TestHistoryFetcher_DefaultLimit(t *testing.T) {
	req := require.New(t)

	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"meta":   map[string]interface{}{"cursor": nil, "size": 0},
			"data":   []Message{},
		})
	}))
	defer srv.Close()

	fetcher := NewHistoryFetcher(srv.URL, testSession(), srv.Client())
	_, err := fetcher.Fetch(context.Background(), "r1", 0)
	req.NoError(err)
	req.Equal("20", gotLimit)
}

func TestHistoryFetcher_EmptyRoomIsNotAnError(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"meta":   map[string]interface{}{"cursor": nil, "size": 0},
			"data":   nil,
		})
	}))
	defer srv.Close()

	fetcher := NewHistoryFetcher(srv.URL, testSession(), srv.Client())
	messages, err := fetcher.Fetch(context.Background(), "r1", 20)
	req.NoError(err)
	req.NotNil(messages)
	req.Empty(messages)
}

func TestHistoryFetcher_Unauthorized(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	fetcher := NewHistoryFetcher(srv.URL, testSession(), srv.Client())
	_, err := fetcher.Fetch(context.Background(), "r1", 20)
	req.ErrorIs(err, ErrUnauthorized)
}

func TestHistoryFetcher_ServerErrorIsNetworkError(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fetcher := NewHistoryFetcher(srv.URL, testSession(), srv.Client())
	_, err := fetcher.Fetch(context.Background(), "r1", 20)
	req.ErrorIs(err, ErrNetwork)
}

func TestHistoryFetcher_UnreachableServerIsNetworkError(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	fetcher := NewHistoryFetcher(srv.URL, testSession(), nil)
	_, err := fetcher.Fetch(context.Background(), "r1", 20)
	req.ErrorIs(err, ErrNetwork)
}

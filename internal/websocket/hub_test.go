package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestHub_SendToRoomScopedToRoom(t *testing.T) {
	req := require.New(t)

	hub := NewHub()
	roomA := uuid.New()
	roomB := uuid.New()

	clientA1 := NewClient(hub, nil, uuid.New(), roomA)
	clientA2 := NewClient(hub, nil, uuid.New(), roomA)
	clientB := NewClient(hub, nil, uuid.New(), roomB)

	hub.registerClient(clientA1)
	hub.registerClient(clientA2)
	hub.registerClient(clientB)

	hub.SendToRoom(roomA, []byte("hello"))

	req.Len(clientA1.Send, 1)
	req.Len(clientA2.Send, 1)
	req.Empty(clientB.Send)

	req.Equal([]byte("hello"), <-clientA1.Send)
}

func TestHub_UnregisterRemovesClientFromRoom(t *testing.T) {
	req := require.New(t)

	hub := NewHub()
	roomID := uuid.New()

	client := NewClient(hub, nil, uuid.New(), roomID)
	other := NewClient(hub, nil, uuid.New(), roomID)

	hub.registerClient(client)
	hub.registerClient(other)
	req.Len(hub.GetRoomUsers(roomID), 2)

	hub.unregisterClient(client)
	req.Len(hub.GetRoomUsers(roomID), 1)

	// Канал закрыт, отправки в комнату клиента больше не достигают
	_, open := <-client.Send
	req.False(open)

	hub.SendToRoom(roomID, []byte("after unregister"))
	req.Len(other.Send, 1)
}

func TestHub_GetRoomUsersDeduplicatesConnections(t *testing.T) {
	req := require.New(t)

	hub := NewHub()
	roomID := uuid.New()
	userID := uuid.New()

	// Два соединения одного пользователя в одной комнате
	hub.registerClient(NewClient(hub, nil, userID, roomID))
	hub.registerClient(NewClient(hub, nil, userID, roomID))

	req.Len(hub.GetRoomUsers(roomID), 1)
}

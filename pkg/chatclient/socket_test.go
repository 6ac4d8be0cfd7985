package chatclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// echoServer принимает кадры {body, attachment} и возвращает полные
// сообщения, как это делает настоящий канал комнаты
type echoServer struct {
	t        *testing.T
	upgrader websocket.Upgrader

	mu      sync.Mutex
	counter int
	conns   []*websocket.Conn
}

func newEchoServer(t *testing.T) (*echoServer, *httptest.Server) {
	es := &echoServer{t: t}
	srv := httptest.NewServer(http.HandlerFunc(es.handle))
	t.Cleanup(srv.Close)
	return es, srv
}

func (es *echoServer) handle(w http.ResponseWriter, r *http.Request) {
	roomID := strings.TrimPrefix(r.URL.Path, "/rooms/")

	conn, err := es.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	es.mu.Lock()
	es.conns = append(es.conns, conn)
	es.mu.Unlock()

	for {
		var out Outgoing
		if err := conn.ReadJSON(&out); err != nil {
			return
		}

		es.mu.Lock()
		es.counter++
		id := fmt.Sprintf("m%d", es.counter)
		es.mu.Unlock()

		conn.WriteJSON(Message{
			ID:         id,
			Body:       out.Body,
			Attachment: out.Attachment,
			UserID:     "u1",
			RoomID:     roomID,
			CreatedAt:  time.Now().UTC(),
		})
	}
}

func (es *echoServer) push(msg Message) {
	es.mu.Lock()
	defer es.mu.Unlock()
	for _, conn := range es.conns {
		conn.WriteJSON(msg)
	}
}

func (es *echoServer) dropConnections() {
	es.mu.Lock()
	defer es.mu.Unlock()
	for _, conn := range es.conns {
		conn.Close()
	}
	es.conns = nil
}

func (es *echoServer) connCount() int {
	es.mu.Lock()
	defer es.mu.Unlock()
	return len(es.conns)
}

func wsBaseURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestRoomSocket_ConnectAndReceive(t *testing.T) {
	req := require.New(t)
	es, srv := newEchoServer(t)

	socket := NewRoomSocket(wsBaseURL(srv), "r1", testSession())
	req.Equal(StateIdle, socket.State())

	received := make(chan Message, 4)
	socket.OnMessage(func(msg Message) {
		received <- msg
	})

	req.NoError(socket.Connect(context.Background()))
	req.Equal(StateOpen, socket.State())
	defer socket.Close()

	base := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	es.push(msgAt("m1", "hello", base))

	select {
	case msg := <-received:
		req.Equal("m1", msg.ID)
		req.Equal("hello", msg.Body)
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
}

func TestRoomSocket_SendGetsEchoedBack(t *testing.T) {
	req := require.New(t)
	_, srv := newEchoServer(t)

	socket := NewRoomSocket(wsBaseURL(srv), "r1", testSession())

	received := make(chan Message, 4)
	socket.OnMessage(func(msg Message) {
		received <- msg
	})

	req.NoError(socket.Connect(context.Background()))
	defer socket.Close()

	req.NoError(socket.Send(Outgoing{Body: "I'm good"}))

	select {
	case msg := <-received:
		req.Equal("I'm good", msg.Body)
		req.Equal("r1", msg.RoomID)
		req.NotEmpty(msg.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no echo delivered")
	}
}

func TestRoomSocket_SendWhileNotOpenIsDropped(t *testing.T) {
	req := require.New(t)
	es, srv := newEchoServer(t)

	socket := NewRoomSocket(wsBaseURL(srv), "r1", testSession())

	// Отправка до подключения: без паники, без передачи
	req.NotPanics(func() {
		req.NoError(socket.Send(Outgoing{Body: "too early"}))
	})
	req.Equal(StateIdle, socket.State())

	es.mu.Lock()
	req.Zero(es.counter)
	es.mu.Unlock()

	// И после закрытия тоже
	req.NoError(socket.Connect(context.Background()))
	socket.Close()
	req.NoError(socket.Send(Outgoing{Body: "too late"}))

	time.Sleep(50 * time.Millisecond)
	es.mu.Lock()
	req.Zero(es.counter)
	es.mu.Unlock()
}

func TestRoomSocket_CloseIsIdempotent(t *testing.T) {
	req := require.New(t)
	_, srv := newEchoServer(t)

	socket := NewRoomSocket(wsBaseURL(srv), "r1", testSession())
	req.NoError(socket.Connect(context.Background()))

	req.NotPanics(func() {
		socket.Close()
		socket.Close()
	})
	req.Equal(StateClosed, socket.State())

	// Закрытие так и не открытого сокета тоже безопасно
	idle := NewRoomSocket(wsBaseURL(srv), "r2", testSession())
	req.NotPanics(func() { idle.Close() })
	req.Equal(StateClosed, idle.State())
}

func TestRoomSocket_DialFailureIsTransportError(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	socket := NewRoomSocket(wsBaseURL(srv), "r1", testSession())
	err := socket.Connect(context.Background())
	req.ErrorIs(err, ErrTransport)
	req.Equal(StateClosed, socket.State())
}

func TestRoomSocket_DialUnauthorized(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	socket := NewRoomSocket(wsBaseURL(srv), "r1", testSession())
	err := socket.Connect(context.Background())
	req.ErrorIs(err, ErrUnauthorized)
}

func TestRoomSocket_CloseDuringDialWins(t *testing.T) {
	req := require.New(t)

	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.WriteJSON(msgAt("m1", "late frame", time.Now().UTC()))
	}))
	defer srv.Close()

	socket := NewRoomSocket(wsBaseURL(srv), "r1", testSession())

	received := make(chan Message, 1)
	socket.OnMessage(func(msg Message) {
		received <- msg
	})

	done := make(chan error, 1)
	go func() { done <- socket.Connect(context.Background()) }()

	// Закрытие во время рукопожатия должно выиграть у dial
	time.Sleep(100 * time.Millisecond)
	socket.Close()

	req.NoError(<-done)
	req.Equal(StateClosed, socket.State())

	select {
	case msg := <-received:
		t.Fatalf("frame delivered after close: %+v", msg)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestRoomSocket_ReconnectsAfterConnectionLoss(t *testing.T) {
	req := require.New(t)
	es, srv := newEchoServer(t)

	socket := NewRoomSocket(wsBaseURL(srv), "r1", testSession())

	received := make(chan Message, 4)
	socket.OnMessage(func(msg Message) {
		received <- msg
	})

	req.NoError(socket.Connect(context.Background()))
	defer socket.Close()

	es.dropConnections()

	// После обрыва сокет сам возвращается в Open
	req.Eventually(func() bool {
		return socket.State() == StateOpen && es.connCount() == 1
	}, 5*time.Second, 50*time.Millisecond)

	es.push(msgAt("m1", "after reconnect", time.Now().UTC()))

	select {
	case msg := <-received:
		req.Equal("m1", msg.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered after reconnect")
	}
}

func TestRoomSocket_PingFramesAreNotDelivered(t *testing.T) {
	req := require.New(t)
	es, srv := newEchoServer(t)

	socket := NewRoomSocket(wsBaseURL(srv), "r1", testSession())

	received := make(chan Message, 4)
	socket.OnMessage(func(msg Message) {
		received <- msg
	})

	req.NoError(socket.Connect(context.Background()))
	defer socket.Close()

	// Служебный кадр без id не должен дойти до обработчика
	es.push(Message{})
	es.push(msgAt("m1", "real", time.Now().UTC()))

	select {
	case msg := <-received:
		req.Equal("m1", msg.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
	req.Empty(received)
}

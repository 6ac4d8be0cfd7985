package chatclient

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ConnState описывает состояние соединения комнаты
type ConnState int

const (
	StateIdle ConnState = iota
	StateConnecting
	StateOpen
	StateClosing
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Переподключение: экспоненциальная задержка с потолком
	reconnectBaseDelay = time.Second
	reconnectMaxDelay  = 30 * time.Second
)

// RoomSocket держит ровно одно живое соединение с каналом комнаты.
// После потери соединения переподключается сам, пока не вызван Close
type RoomSocket struct {
	url    string
	dialer *websocket.Dialer

	mu      sync.Mutex
	state   ConnState
	conn    *websocket.Conn
	handler func(Message)
}

// NewRoomSocket готовит сокет канала {wsBase}/rooms/{roomID}.
// Соединение не открывается, пока не вызван Connect
func NewRoomSocket(wsBaseURL, roomID string, session Session) *RoomSocket {
	return &RoomSocket{
		url: fmt.Sprintf("%s/rooms/%s?token=%s",
			strings.TrimRight(wsBaseURL, "/"), roomID, url.QueryEscape(session.Token)),
		dialer: websocket.DefaultDialer,
		state:  StateIdle,
	}
}

// OnMessage регистрирует единственный обработчик входящих кадров.
// Вызывается до Connect
func (s *RoomSocket) OnMessage(handler func(Message)) {
	s.mu.Lock()
	s.handler = handler
	s.mu.Unlock()
}

func (s *RoomSocket) State() ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect открывает соединение и запускает чтение кадров
func (s *RoomSocket) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle && s.state != StateClosed {
		s.mu.Unlock()
		return nil
	}
	s.state = StateConnecting
	s.mu.Unlock()

	conn, resp, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		s.mu.Lock()
		s.state = StateClosed
		s.mu.Unlock()
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: socket dial got %s", ErrUnauthorized, resp.Status)
		}
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	s.mu.Lock()
	if s.state != StateConnecting {
		// Сокет закрыли, пока шел dial
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.state = StateOpen
	s.mu.Unlock()

	go s.readLoop(conn)

	return nil
}

// Send отправляет кадр. Разрешена только в состоянии Open: иначе
// кадр не передается, факт логируется, ошибки наружу нет
func (s *RoomSocket) Send(out Outgoing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen || s.conn == nil {
		log.Printf("send skipped: socket is %s", s.state)
		return nil
	}

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(out); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

// Close закрывает соединение. Идемпотентен: состояние проверяется
// до закрытия, повторный вызов безопасен
func (s *RoomSocket) Close() {
	s.mu.Lock()
	if s.state == StateClosed || s.state == StateIdle {
		s.state = StateClosed
		s.mu.Unlock()
		return
	}
	s.state = StateClosing
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		conn.Close()
	}

	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()
}

func (s *RoomSocket) readLoop(conn *websocket.Conn) {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		// Служебные кадры без id (ping) обработчику не отдаем
		if msg.ID == "" {
			continue
		}

		s.mu.Lock()
		handler := s.handler
		s.mu.Unlock()

		if handler != nil {
			handler(msg)
		}
	}

	s.mu.Lock()
	if s.state == StateClosing || s.state == StateClosed {
		s.state = StateClosed
		s.mu.Unlock()
		return
	}

	// Соединение потеряно не по нашей инициативе
	s.state = StateConnecting
	s.conn = nil
	s.mu.Unlock()

	go s.reconnect()
}

func (s *RoomSocket) reconnect() {
	delay := reconnectBaseDelay
	for {
		time.Sleep(delay)

		s.mu.Lock()
		if s.state != StateConnecting {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		conn, _, err := s.dialer.Dial(s.url, nil)
		if err == nil {
			s.mu.Lock()
			if s.state != StateConnecting {
				s.mu.Unlock()
				conn.Close()
				return
			}
			s.conn = conn
			s.state = StateOpen
			s.mu.Unlock()

			log.Printf("room socket reconnected")
			go s.readLoop(conn)
			return
		}

		log.Printf("reconnect failed: %v", err)
		delay *= 2
		if delay > reconnectMaxDelay {
			delay = reconnectMaxDelay
		}
	}
}

package chatclient

import (
	"context"
	"fmt"
	"iter"
	"log"
	"net/http"
	"strings"
	"sync"
)

// ConversationController управляет жизненным циклом диалога:
// вход в комнату, загрузка истории, канал комнаты, отправка,
// выход с гарантированным закрытием сокета
type ConversationController struct {
	apiBaseURL string
	wsBaseURL  string
	session    Session
	httpClient *http.Client

	mu       sync.Mutex
	epoch    uint64
	roomID   string
	socket   *RoomSocket
	timeline *Timeline
	pending  []Message
	seeded   bool
	degraded bool
}

// NewConversationController создает контроллер для пользователя session.
// httpClient может быть nil, тогда берется клиент с таймаутом по умолчанию
func NewConversationController(apiBaseURL, wsBaseURL string, session Session, httpClient *http.Client) *ConversationController {
	return &ConversationController{
		apiBaseURL: apiBaseURL,
		wsBaseURL:  wsBaseURL,
		session:    session,
		httpClient: httpClient,
		timeline:   NewTimeline(),
	}
}

// EnterRoom входит в комнату: закрывает предыдущую, открывает канал,
// загружает историю. Кадры, пришедшие до окончания загрузки, копятся
// и применяются после seed, лента не теряет сообщений.
// Недоступная история не фатальна: лента пустая, контроллер деградирован
func (c *ConversationController) EnterRoom(ctx context.Context, roomID string) error {
	if roomID == "" {
		// id комнаты еще не известен, подключаться рано
		log.Println("enter room skipped: room id is not resolved yet")
		return nil
	}

	c.mu.Lock()
	// Предыдущая комната закрывается до открытия новой,
	// её кадры и поздние ответы отбрасываются по epoch
	if c.socket != nil {
		c.socket.Close()
		c.socket = nil
	}
	c.epoch++
	epoch := c.epoch
	c.roomID = roomID
	c.timeline = NewTimeline()
	c.pending = nil
	c.seeded = false
	c.degraded = false
	timeline := c.timeline
	c.mu.Unlock()

	socket := NewRoomSocket(c.wsBaseURL, roomID, c.session)
	socket.OnMessage(func(msg Message) {
		c.mu.Lock()
		if c.epoch != epoch {
			c.mu.Unlock()
			return
		}
		if !c.seeded {
			c.pending = append(c.pending, msg)
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
		timeline.Append(msg)
	})

	var socketErr error
	if err := socket.Connect(ctx); err != nil {
		// Отправка будет недоступна, но история все равно загружается
		log.Printf("room socket open failed: %v", err)
		socket = nil
		socketErr = err
	}

	history, err := NewHistoryFetcher(c.apiBaseURL, c.session, c.httpClient).
		Fetch(ctx, roomID, DefaultHistoryLimit)

	c.mu.Lock()
	if c.epoch != epoch {
		// Комната сменилась, пока ждали историю, результат не применяем
		c.mu.Unlock()
		if socket != nil {
			socket.Close()
		}
		return nil
	}

	if err != nil {
		log.Printf("history fetch failed: %v", err)
		timeline.Seed(nil)
		c.degraded = true
	} else {
		timeline.Seed(history)
	}

	c.seeded = true
	pending := c.pending
	c.pending = nil
	c.socket = socket
	if socketErr != nil {
		c.degraded = true
	}
	c.mu.Unlock()

	for _, msg := range pending {
		timeline.Append(msg)
	}

	return socketErr
}

// Submit валидирует и отправляет сообщение. Локальной вставки нет:
// лента пополнится, когда сервер вернет эхо по сокету
func (c *ConversationController) Submit(body string, attachment *string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: nothing to send", ErrEmptyBody)
	}

	c.mu.Lock()
	socket := c.socket
	c.mu.Unlock()

	if socket == nil {
		log.Println("submit skipped: no room socket")
		return nil
	}

	return socket.Send(Outgoing{Body: body, Attachment: attachment})
}

// LeaveRoom закрывает канал и сбрасывает ленту. Вызывается на каждом
// пути выхода: смена комнаты, навигация, logout
func (c *ConversationController) LeaveRoom() {
	c.mu.Lock()
	c.epoch++
	c.roomID = ""
	socket := c.socket
	c.socket = nil
	c.timeline = NewTimeline()
	c.pending = nil
	c.seeded = false
	c.degraded = false
	c.mu.Unlock()

	if socket != nil {
		socket.Close()
	}
}

// RoomID возвращает id активной комнаты, пустая строка значит, что комнаты нет
func (c *ConversationController) RoomID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

// Degraded сообщает, что история или канал недоступны: интерфейс
// показывает нефатальный индикатор, уже отрисованная лента не очищается
func (c *ConversationController) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

// Messages возвращает ленту активной комнаты в каноническом порядке
func (c *ConversationController) Messages() []Message {
	c.mu.Lock()
	timeline := c.timeline
	c.mu.Unlock()
	return timeline.Messages()
}

// View возвращает ленту от новых к старым для отрисовки
func (c *ConversationController) View() iter.Seq[Message] {
	c.mu.Lock()
	timeline := c.timeline
	c.mu.Unlock()
	return timeline.View()
}

// SocketState возвращает состояние канала активной комнаты
func (c *ConversationController) SocketState() ConnState {
	c.mu.Lock()
	socket := c.socket
	c.mu.Unlock()

	if socket == nil {
		return StateIdle
	}
	return socket.State()
}

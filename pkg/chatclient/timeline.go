package chatclient

import (
	"iter"
	"sort"
	"sync"
)

// Timeline хранит упорядоченную ленту сообщений активной комнаты.
// Канонический порядок идет от старых к новым по CreatedAt,
// при равных временах сохраняется порядок поступления
type Timeline struct {
	mu       sync.RWMutex
	messages []Message
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// Seed заменяет содержимое ленты историей, отсортированной
// от старых к новым независимо от порядка на входе
func (t *Timeline) Seed(history []Message) {
	msgs := make([]Message, len(history))
	copy(msgs, history)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})

	t.mu.Lock()
	t.messages = msgs
	t.mu.Unlock()
}

// Append вставляет сообщение с сохранением порядка. Повторный id
// заменяет существующую запись: эхо с сервера примиряется
// с локальной копией, поздние поля выигрывают
func (t *Timeline) Append(msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.messages {
		if t.messages[i].ID == msg.ID {
			t.messages[i] = msg
			sort.SliceStable(t.messages, func(a, b int) bool {
				return t.messages[a].CreatedAt.Before(t.messages[b].CreatedAt)
			})
			return
		}
	}

	// Вставка после всех сообщений с тем же или меньшим CreatedAt
	idx := sort.Search(len(t.messages), func(i int) bool {
		return t.messages[i].CreatedAt.After(msg.CreatedAt)
	})
	t.messages = append(t.messages, Message{})
	copy(t.messages[idx+1:], t.messages[idx:])
	t.messages[idx] = msg
}

// Messages возвращает копию ленты в каноническом порядке
func (t *Timeline) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// View отдает ленивую последовательность от новых к старым:
// список в интерфейсе растет снизу вверх
func (t *Timeline) View() iter.Seq[Message] {
	return func(yield func(Message) bool) {
		snapshot := t.Messages()
		for i := len(snapshot) - 1; i >= 0; i-- {
			if !yield(snapshot[i]) {
				return
			}
		}
	}
}

func (t *Timeline) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

package chatclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultHistoryLimit задает, сколько сообщений запрашивается при входе в комнату
const DefaultHistoryLimit = 20

const historyTimeout = 15 * time.Second

// HistoryFetcher загружает последние сообщения комнаты по REST.
// Не ретраит сам: ошибка уходит контроллеру, который решает,
// что показать пользователю
type HistoryFetcher struct {
	baseURL string
	session Session
	client  *http.Client
}

func NewHistoryFetcher(baseURL string, session Session, client *http.Client) *HistoryFetcher {
	if client == nil {
		client = &http.Client{Timeout: historyTimeout}
	}
	return &HistoryFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		client:  client,
	}
}

type historyEnvelope struct {
	Status string `json:"status"`
	Meta   struct {
		Cursor *string `json:"cursor"`
		Size   int     `json:"size"`
	} `json:"meta"`
	Data []Message `json:"data"`
}

// Fetch запрашивает историю комнаты. Пустая комната дает пустой срез
// без ошибки, 401 превращается в ErrUnauthorized, остальное в ErrNetwork
func (f *HistoryFetcher) Fetch(ctx context.Context, roomID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	url := fmt.Sprintf("%s/rooms/%s/messages?limit=%d", f.baseURL, roomID, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Authorization", "Bearer "+f.session.Token)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: history fetch got %s", ErrUnauthorized, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: history fetch got %s", ErrNetwork, resp.Status)
	}

	var env historyEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if env.Data == nil {
		return []Message{}, nil
	}
	return env.Data, nil
}

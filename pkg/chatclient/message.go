package chatclient

import "time"

// Message описывает сообщение комнаты, как его отдает сервер:
// и в истории по REST, и в эхо-кадрах по сокету
type Message struct {
	ID         string    `json:"id"`
	Body       string    `json:"body"`
	Attachment *string   `json:"attachment,omitempty"`
	UserID     string    `json:"userId"`
	RoomID     string    `json:"roomId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Outgoing описывает исходящий кадр {body, attachment}
type Outgoing struct {
	Body       string  `json:"body"`
	Attachment *string `json:"attachment,omitempty"`
}

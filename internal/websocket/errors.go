package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrEmptyBody       = errors.New("message body is empty")
)

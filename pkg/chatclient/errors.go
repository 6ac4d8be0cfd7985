package chatclient

import "errors"

var (
	// ErrNetwork значит, что REST недоступен или ответил не-2xx
	ErrNetwork = errors.New("network failure")
	// ErrUnauthorized значит 401, учетные данные отклонены
	ErrUnauthorized = errors.New("credential rejected")
	// ErrTransport значит, что сокет не открылся или неожиданно закрылся
	ErrTransport = errors.New("transport failure")
	// ErrEmptyBody значит, что исходящее сообщение без текста
	ErrEmptyBody = errors.New("message body is empty")
	// ErrInvalidCredential значит, что токен не разбирается на сегменты
	ErrInvalidCredential = errors.New("malformed credential")
)

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError — ответ сервера со статусом вне 2xx.
// Message содержит поле error из JSON-тела и пуст, если его нет.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// TransportError — запрос не дошёл до сервера или ответ не был получен.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport сообщает, является ли err сетевой ошибкой.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode возвращает HTTP-статус из APIError или 0.
func StatusCode(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// Describe renders err as a user-facing notice.
// Server-side failures use the server text verbatim, falling back to fallback
// (or the HTTP status text) when the body carried no error field.
// Transport and other failures render as "Error: <message>".
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ae *APIError
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae.Message
		}
		if fallback != "" {
			return fallback
		}
		return http.StatusText(ae.Status)
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "Error: " + te.Err.Error()
	}
	return "Error: " + err.Error()
}

package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Error - ошибка бизнес-логики с HTTP-статусом и текстом для клиента.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func badRequest(format string, a ...any) error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, a...)}
}

func notFound(format string, a ...any) error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, a...)}
}

func unauthorized(msg string) error { return &Error{Status: http.StatusUnauthorized, Message: msg} }

func forbidden(msg string) error { return &Error{Status: http.StatusForbidden, Message: msg} }

// Describe возвращает статус и текст ошибки для ответа.
// Неизвестные ошибки - 500 c префиксом fallback.
func Describe(err error, fallback string) (int, string) {
	var se *Error
	if errors.As(err, &se) {
		return se.Status, se.Message
	}
	return http.StatusInternalServerError, fmt.Sprintf("%s: %v", fallback, err)
}

package repo

import "errors"

// KVStore - порт клиентского хранилища «ключ → строка» (аналог localStorage).
// Get возвращает ok=false, если ключ отсутствует; это не ошибка.
type KVStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// ErrEmptyKey возвращается адаптерами при пустом ключе.
var ErrEmptyKey = errors.New("empty key")

package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"PolicyDesk/internal/cli/repo"
)

// KVFSStore - файловое хранилище: один файл на ключ в каталоге Dir.
type KVFSStore struct {
	Dir string
}

var _ repo.KVStore = KVFSStore{}

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// DefaultDir возвращает <UserConfigDir>/PolicyDesk.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "PolicyDesk"), nil
}

func (s KVFSStore) path(key string) (string, error) {
	if key == "" {
		return "", repo.ErrEmptyKey
	}
	if !keyRe.MatchString(key) {
		return "", fmt.Errorf("invalid key: %q (allowed: letters, digits, . _ -)", key)
	}
	dir := s.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, key), nil
}

// Get читает значение; завершающие переводы строк и пробелы отбрасываются.
func (s KVFSStore) Get(key string) (string, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimRight(string(b), " \t\r\n"), true, nil
}

func (s KVFSStore) Set(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(value), 0o600)
}

func (s KVFSStore) Remove(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

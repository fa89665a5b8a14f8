package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"PolicyDesk/internal/cli/repo"
)

// DBFile - имя файла локальной БД клиента.
const DBFile = "client.sqlite"

// KVStoreSQLite - хранилище ключ-значение в локальной SQLite (таблица kv).
type KVStoreSQLite struct {
	db *sql.DB
}

var _ repo.KVStore = (*KVStoreSQLite)(nil)

// Open открывает (и создаёт при необходимости) client.sqlite в каталоге dir
// и применяет встроенные миграции. Вторым значением возвращается путь к БД.
func Open(dir string) (*KVStoreSQLite, string, error) {
	if dir == "" {
		return nil, "", errors.New("empty client db dir")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, DBFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	s := &KVStoreSQLite{db: db}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, "", err
	}
	return s, dbPath, nil
}

// Close закрывает соединение с БД.
func (s *KVStoreSQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate доводит схему до последней встроенной версии.
func (s *KVStoreSQLite) Migrate() error {
	return migrate(s.db)
}

func (s *KVStoreSQLite) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, repo.ErrEmptyKey
	}
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (s *KVStoreSQLite) Set(key, value string) error {
	if key == "" {
		return repo.ErrEmptyKey
	}
	_, err := s.db.Exec(`INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	return err
}

func (s *KVStoreSQLite) Remove(key string) error {
	if key == "" {
		return repo.ErrEmptyKey
	}
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

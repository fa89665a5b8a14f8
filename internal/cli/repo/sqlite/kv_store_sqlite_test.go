package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesFileAndMigrates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	s, dbPath, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, filepath.Join(dir, DBFile), dbPath)
	_, err = os.Stat(dbPath)
	require.NoError(t, err)

	// повторная миграция идемпотентна
	assert.NoError(t, s.Migrate())

	list, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, list)
	var version int
	require.NoError(t, s.db.QueryRow(`PRAGMA user_version`).Scan(&version))
	assert.Equal(t, list[len(list)-1].version, version)
}

func TestOpen_EmptyDir(t *testing.T) {
	_, _, err := Open("")
	assert.Error(t, err)
}

func TestKVStoreSQLite_Upsert(t *testing.T) {
	s, _, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("theme", "light"))
	require.NoError(t, s.Set("theme", "dark"))
	v, ok, err := s.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	require.NoError(t, s.Remove("theme"))
	_, ok, err = s.Get("theme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStoreSQLite_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, _, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("user", `{"id":3,"username":"bob","role":"admin"}`))
	require.NoError(t, s.Close())

	s2, _, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()
	v, ok, err := s2.Get("user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, v, "bob")
}

package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsrepo "PolicyDesk/internal/cli/repo/fs"
	"PolicyDesk/internal/cli/repo/memory"
	reposqlite "PolicyDesk/internal/cli/repo/sqlite"
	"PolicyDesk/internal/config"
)

func TestOpenStore_SQLiteCreatesDBAndCleansUp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	s, done, err := OpenStore(&config.Config{StoreDriver: config.StoreSQLite, ClientDBPath: dir})
	require.NoError(t, err)
	require.IsType(t, &reposqlite.KVStoreSQLite{}, s)

	require.NoError(t, s.Set("theme", "dark"))
	require.NoError(t, done())

	_, err = os.Stat(filepath.Join(dir, reposqlite.DBFile))
	assert.NoError(t, err)
}

func TestOpenStore_OtherDrivers(t *testing.T) {
	s, done, err := OpenStore(&config.Config{StoreDriver: config.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.KVStoreMemory{}, s)
	assert.NoError(t, done())

	dir := t.TempDir()
	s, _, err = OpenStore(&config.Config{StoreDriver: config.StoreFS, ClientDBPath: dir})
	require.NoError(t, err)
	assert.Equal(t, fsrepo.KVFSStore{Dir: dir}, s)
}

func TestOpenStore_SQLiteBadDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
	_, _, err := OpenStore(&config.Config{StoreDriver: config.StoreSQLite, ClientDBPath: filepath.Join(f, "sub")})
	assert.Error(t, err)
}

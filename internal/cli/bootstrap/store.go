package bootstrap

import (
	"fmt"

	"PolicyDesk/internal/cli/repo"
	fsrepo "PolicyDesk/internal/cli/repo/fs"
	"PolicyDesk/internal/cli/repo/memory"
	reposqlite "PolicyDesk/internal/cli/repo/sqlite"
	"PolicyDesk/internal/config"
)

// OpenStore открывает клиентское хранилище сессии согласно cfg.StoreDriver
// и возвращает (store, cleanup, error). cleanup нужно вызвать по окончании работы.
func OpenStore(cfg *config.Config) (repo.KVStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return memory.New(), noop, nil
	case config.StoreFS:
		return fsrepo.KVFSStore{Dir: cfg.ClientDBPath}, noop, nil
	default:
		s, _, err := reposqlite.Open(cfg.ClientDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open client db: %w", err)
		}
		return s, s.Close, nil
	}
}

package store

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/smbtab/smbtab/pkg/config"
)

// Locate resolves the configured table store backend. A backend that is
// unknown or fails to come up surfaces as ErrNotFound: from the builder's
// point of view the store simply is not there.
func Locate(cfg *config.Config, logger *zap.Logger) (TableStore, error) {
	switch cfg.Store.Backend {
	case "memory":
		return NewMemStore(), nil
	case "file":
		fs, err := NewFileStore(filepath.Join(cfg.Store.DataDir, "smbios.table"), logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return fs, nil
	case "pebble":
		ps, err := NewPebbleStore(filepath.Join(cfg.Store.DataDir, "pebble"), logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return ps, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrNotFound, cfg.Store.Backend)
	}
}

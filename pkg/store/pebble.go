package store

import (
	"encoding/binary"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/smbtab/smbtab/pkg/smbios"
)

// currentBuildKey points at the build prefix of the most recent table.
var currentBuildKey = []byte("meta/current-build")

// PebbleStore keeps tables in a pebble database. Each boot gets a fresh
// KSUID build prefix, so a machine's table history stays queryable while
// Bytes always serves the latest build. Record keys are the build prefix
// followed by the big-endian handle, which makes iteration order equal
// registration order.
type PebbleStore struct {
	db    *pebble.DB
	build ksuid.KSUID
	next  smbios.Handle
	sugar *zap.SugaredLogger
	mutex sync.Mutex
}

// NewPebbleStore opens the database at path and starts a new build.
func NewPebbleStore(path string, logger *zap.Logger) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}

	ps := &PebbleStore{
		db:    db,
		build: ksuid.New(),
		next:  FirstHandle,
		sugar: logger.Sugar(),
	}

	if err := db.Set(currentBuildKey, ps.build.Bytes(), pebble.Sync); err != nil {
		db.Close()
		return nil, err
	}

	ps.sugar.Infow("pebble table store opened", "path", path, "build", ps.build.String())
	return ps, nil
}

func (ps *PebbleStore) recordKey(build ksuid.KSUID, h smbios.Handle) []byte {
	key := make([]byte, 0, len("table/")+len(build.Bytes())+2)
	key = append(key, "table/"...)
	key = append(key, build.Bytes()...)
	key = binary.BigEndian.AppendUint16(key, uint16(h))
	return key
}

// Add registers rec under the current build.
func (ps *PebbleStore) Add(rec []byte) (smbios.Handle, error) {
	if err := validateRecord(rec); err != nil {
		return 0, err
	}

	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	if ps.next > LastHandle {
		return 0, ErrExhausted
	}

	h := ps.next
	stored := withHandle(rec, h)
	if err := ps.db.Set(ps.recordKey(ps.build, h), stored, pebble.NoSync); err != nil {
		return 0, err
	}
	ps.next = h + 1

	return h, nil
}

// Bytes concatenates the current build's records in handle order.
func (ps *PebbleStore) Bytes() ([]byte, error) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	lower := ps.recordKey(ps.build, 0)
	upper := ps.recordKey(ps.build, smbios.HandleNone)
	iter, err := ps.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var table []byte
	for iter.First(); iter.Valid(); iter.Next() {
		table = append(table, iter.Value()...)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return table, nil
}

// Build returns the KSUID identifying this boot's table.
func (ps *PebbleStore) Build() ksuid.KSUID {
	return ps.build
}

// Close syncs and closes the database.
func (ps *PebbleStore) Close() error {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	return ps.db.Close()
}

package store

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/smbtab/smbtab/pkg/codec"
	"github.com/smbtab/smbtab/pkg/smbios"
)

// FileStore appends flattened records to a single table blob on disk.
// The blob is exactly the concatenation of stored records, so any SMBIOS
// table walker can consume it directly.
type FileStore struct {
	path   string
	file   *os.File
	writer *bufio.Writer
	index  *handleIndex
	next   smbios.Handle
	sugar  *zap.SugaredLogger
	mutex  sync.Mutex
	isOpen bool
}

// entry records where a stored record landed in the blob.
type entry struct {
	Offset int64
	Size   uint32
}

// handleIndex maps assigned handles to blob locations.
type handleIndex struct {
	entries map[smbios.Handle]entry
	mutex   sync.RWMutex
}

func newHandleIndex() *handleIndex {
	return &handleIndex{entries: make(map[smbios.Handle]entry)}
}

func (idx *handleIndex) Put(h smbios.Handle, e entry) {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()
	idx.entries[h] = e
}

func (idx *handleIndex) Get(h smbios.Handle) (entry, bool) {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()
	e, ok := idx.entries[h]
	return e, ok
}

func (idx *handleIndex) Size() int {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()
	return len(idx.entries)
}

// NewFileStore opens (or creates) the table blob at path. An existing blob
// is re-walked to rebuild the handle index and continue the handle
// sequence; a blob that fails to parse is truncated and the store starts
// over, since a partially written table is useless to consumers.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}

	fs := &FileStore{
		path:   path,
		file:   file,
		writer: bufio.NewWriter(file),
		index:  newHandleIndex(),
		next:   FirstHandle,
		sugar:  logger.Sugar(),
		isOpen: true,
	}

	if err := fs.recover(); err != nil {
		file.Close()
		return nil, err
	}

	return fs, nil
}

// recover rebuilds the index from an existing blob.
func (fs *FileStore) recover() error {
	blob, err := os.ReadFile(fs.path)
	if err != nil {
		return err
	}
	if len(blob) == 0 {
		return nil
	}

	records, err := codec.ParseTable(blob)
	if err != nil {
		fs.sugar.Warnw("table blob corrupt, starting over", "path", fs.path, "err", err)
		if err := fs.file.Truncate(0); err != nil {
			return err
		}
		_, err = fs.file.Seek(0, 0)
		return err
	}

	var off int64
	for _, rec := range records {
		fs.index.Put(rec.Handle, entry{Offset: off, Size: uint32(rec.Size())})
		if rec.Handle >= fs.next {
			fs.next = rec.Handle + 1
		}
		off += int64(rec.Size())
	}
	if _, err := fs.file.Seek(off, 0); err != nil {
		return err
	}

	fs.sugar.Debugw("table blob recovered", "records", len(records), "bytes", off)
	return nil
}

// Add appends rec to the blob with its assigned handle patched in.
func (fs *FileStore) Add(rec []byte) (smbios.Handle, error) {
	if err := validateRecord(rec); err != nil {
		return 0, err
	}

	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if !fs.isOpen {
		return 0, ErrClosed
	}
	if fs.next > LastHandle {
		return 0, ErrExhausted
	}

	h := fs.next
	stored := withHandle(rec, h)

	off, err := fs.file.Seek(0, 1)
	if err != nil {
		return 0, err
	}
	off += int64(fs.writer.Buffered())

	if _, err := fs.writer.Write(stored); err != nil {
		return 0, err
	}

	fs.index.Put(h, entry{Offset: off, Size: uint32(len(stored))})
	fs.next = h + 1

	fs.sugar.Debugw("record stored", "handle", h, "type", stored[0], "bytes", len(stored))
	return h, nil
}

// Len returns the number of records in the blob.
func (fs *FileStore) Len() int {
	return fs.index.Size()
}

// Bytes flushes pending writes and returns the whole blob.
func (fs *FileStore) Bytes() ([]byte, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if !fs.isOpen {
		return nil, ErrClosed
	}
	if err := fs.writer.Flush(); err != nil {
		return nil, err
	}
	return os.ReadFile(fs.path)
}

// Close flushes and closes the blob.
func (fs *FileStore) Close() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if !fs.isOpen {
		return nil
	}
	fs.isOpen = false

	if err := fs.writer.Flush(); err != nil {
		fs.file.Close()
		return err
	}
	return fs.file.Close()
}

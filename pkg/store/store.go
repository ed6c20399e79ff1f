// Package store provides the table stores that accept flattened records
// and assign them handles. A store owns the serialized bytes after a
// successful Add; the handle it returns is the only thing callers keep.
//
// Every implementation patches the assigned handle into the record's own
// header (bytes 2..3) before persisting, so the stored form is always
// self-describing.
package store

import (
	"github.com/smbtab/smbtab/pkg/smbios"
)

// Handles are assigned sequentially from FirstHandle. Values at or above
// 0xFF00 are reserved by the record format, so a store refuses to grow
// past LastHandle.
const (
	FirstHandle smbios.Handle = 0x0001
	LastHandle  smbios.Handle = 0xFEFF
)

// TableStore accepts finished records and hands back their handles.
// Registered records cannot be removed or updated in place; Bytes exposes
// the accumulated table for inspection tooling.
type TableStore interface {
	// Add registers one flattened record and returns its assigned handle.
	Add(rec []byte) (smbios.Handle, error)

	// Bytes returns the flattened table in registration order.
	Bytes() ([]byte, error)

	Close() error
}

// Errors
var (
	ErrNotFound  = &StoreError{"table store not available"}
	ErrRejected  = &StoreError{"record rejected"}
	ErrClosed    = &StoreError{"store is closed"}
	ErrExhausted = &StoreError{"handle space exhausted"}
)

// StoreError represents a table store error.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// validateRecord rejects buffers that cannot be a flattened record: the
// 4-byte header must be present and the declared body length must fit,
// with room for at least the double terminator behind it.
func validateRecord(rec []byte) error {
	if len(rec) < 6 {
		return ErrRejected
	}
	if int(rec[1]) < 4 || int(rec[1])+2 > len(rec) {
		return ErrRejected
	}
	return nil
}

// withHandle returns a copy of rec with h patched into the header's
// handle field.
func withHandle(rec []byte, h smbios.Handle) []byte {
	out := make([]byte, len(rec))
	copy(out, rec)
	out[2] = byte(h)
	out[3] = byte(h >> 8)
	return out
}

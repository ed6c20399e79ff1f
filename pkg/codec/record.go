// Package codec flattens typed record bodies and their string packs into
// the self-describing wire form a table store accepts, and parses that
// form back for inspection.
//
// Record format: [formatted body][string 1]\0[string 2]\0...\0\0
//
// The body's own Length byte covers the formatted area only; the string
// pack is a suffix extension. A record with no strings still carries the
// two-byte double terminator, so the minimum record is body length + 2.
package codec

import (
	"fmt"

	"github.com/smbtab/smbtab/pkg/smbios"
)

// Errors reported by Synthesize.
var (
	ErrShortBody     = &RecordError{"packed body shorter than its header"}
	ErrLengthField   = &RecordError{"body length field disagrees with packed size"}
	ErrStringPack    = &RecordError{"string pack does not cover declared references"}
	ErrEmptyString   = &RecordError{"string pack entries must be non-empty"}
	ErrStringTooLong = &RecordError{"string pack entry exceeds 255 bytes"}
)

// RecordError describes a record that cannot be synthesized or parsed.
type RecordError struct {
	Message string
}

func (e *RecordError) Error() string {
	return e.Message
}

// Synthesize flattens body and its string pack into one registration-ready
// record. Strings are appended in order after the formatted body, each with
// its own NUL terminator, followed by the final NUL; an empty pack is
// encoded as the bare double terminator. The returned buffer is freshly
// allocated and zero-initialized before the copies.
func Synthesize(body smbios.Body, strings []string) ([]byte, error) {
	packed := body.Pack()
	if len(packed) < 4 {
		return nil, ErrShortBody
	}
	if int(packed[1]) != len(packed) {
		return nil, ErrLengthField
	}
	if refs := body.StringRefs(); refs > len(strings) {
		return nil, fmt.Errorf("%w: %d referenced, %d supplied", ErrStringPack, refs, len(strings))
	}

	size := len(packed)
	if len(strings) == 0 {
		size += 2 // double terminator stands in for the absent pack
	} else {
		for _, s := range strings {
			if s == "" {
				return nil, ErrEmptyString
			}
			if len(s) > 255 {
				return nil, ErrStringTooLong
			}
			size += len(s) + 1
		}
		size++ // final terminator
	}

	rec := make([]byte, size)
	off := copy(rec, packed)
	for _, s := range strings {
		off += copy(rec[off:], s)
		off++ // the string's own terminator, already zero
	}
	// rec[size-1] is the final terminator, already zero.

	return rec, nil
}

// Package smbios defines the externally fixed SMBIOS record schema as
// explicit typed structs with named fields, plus the small text utilities
// the assembly routines need (hex rendering, version extraction).
//
// Each record kind serializes itself to the exact little-endian byte layout
// the SMBIOS specification mandates via Pack; no memory-layout overlap is
// involved. The Length byte in a packed body covers the formatted area
// only — the trailing string pack is a suffix extension appended by the
// codec and is never counted in Length.
package smbios

import "encoding/binary"

// Handle is the opaque identifier a table store assigns to a registered
// record. Records that cross-reference each other embed handles as
// fixed-width fields.
type Handle uint16

const (
	// HandleNone is the "unknown/none" sentinel left in a handle-reference
	// field that was never patched with a real handle.
	HandleNone Handle = 0xFFFF

	// HandleNoError is the sentinel used by memory records to say no error
	// information structure exists.
	HandleNoError Handle = 0xFFFE
)

// StrRef is a 1-based index into a record's trailing string pack.
// Zero means "no string".
type StrRef uint8

// Record type tags for the kinds this module assembles.
const (
	TypeFirmwareInfo    uint8 = 0
	TypeSystemInfo      uint8 = 1
	TypeBaseboardInfo   uint8 = 2
	TypeEnclosureInfo   uint8 = 3
	TypeProcessorInfo   uint8 = 4
	TypeCacheInfo       uint8 = 7
	TypeSlotInfo        uint8 = 9
	TypeOEMStrings      uint8 = 11
	TypeMemoryArray     uint8 = 16
	TypeMemoryDevice    uint8 = 17
	TypeMemoryArrayAddr uint8 = 19
	TypeBootInfo        uint8 = 32
)

// Header is the 4-byte prefix every formatted body starts with. Handle is a
// placeholder at pack time; the store overwrites it at registration.
type Header struct {
	Type   uint8
	Length uint8
	Handle Handle
}

// Body is one fixed-size formatted record body. StringRefs reports the
// highest 1-based string-pack index the body references, so the codec can
// verify the supplied pack actually covers every reference.
type Body interface {
	Pack() []byte
	StringRefs() int
}

// packer writes fields sequentially into a pre-sized buffer.
type packer struct {
	buf []byte
	off int
}

func newPacker(typ uint8, length int) *packer {
	p := &packer{buf: make([]byte, length)}
	p.u8(typ)
	p.u8(uint8(length))
	p.u16(0) // handle placeholder, assigned by the store
	return p
}

func (p *packer) u8(v uint8) {
	p.buf[p.off] = v
	p.off++
}

func (p *packer) u16(v uint16) {
	binary.LittleEndian.PutUint16(p.buf[p.off:], v)
	p.off += 2
}

func (p *packer) u32(v uint32) {
	binary.LittleEndian.PutUint32(p.buf[p.off:], v)
	p.off += 4
}

func (p *packer) u64(v uint64) {
	binary.LittleEndian.PutUint64(p.buf[p.off:], v)
	p.off += 8
}

func (p *packer) handle(h Handle) { p.u16(uint16(h)) }

func (p *packer) str(r StrRef) { p.u8(uint8(r)) }

func (p *packer) bytes(b []byte) {
	copy(p.buf[p.off:], b)
	p.off += len(b)
}

// maxRef returns the highest string index among refs; bodies use it to
// implement StringRefs without hand-maintained counts.
func maxRef(refs ...StrRef) int {
	m := 0
	for _, r := range refs {
		if int(r) > m {
			m = int(r)
		}
	}
	return m
}

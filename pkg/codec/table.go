package codec

import "github.com/smbtab/smbtab/pkg/smbios"

// Record is one parsed entry recovered from a flattened table.
type Record struct {
	Type      uint8
	Handle    smbios.Handle
	Formatted []byte
	Strings   []string
}

// Size returns the full on-wire size of the record, string pack and
// terminators included.
func (r *Record) Size() int {
	n := len(r.Formatted)
	if len(r.Strings) == 0 {
		return n + 2
	}
	for _, s := range r.Strings {
		n += len(s) + 1
	}
	return n + 1
}

// ParseTable walks a concatenation of flattened records and returns the
// parsed entries in table order. Records are self-delimiting: the header's
// Length byte bounds the formatted area and the double NUL bounds the
// string pack.
func ParseTable(table []byte) ([]Record, error) {
	var records []Record
	rest := table
	for len(rest) > 0 {
		rec, n, err := parseOne(rest)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		rest = rest[n:]
	}
	return records, nil
}

func parseOne(b []byte) (Record, int, error) {
	if len(b) < 4 {
		return Record{}, 0, ErrShortBody
	}
	length := int(b[1])
	if length < 4 || length+2 > len(b) {
		return Record{}, 0, ErrLengthField
	}

	rec := Record{
		Type:      b[0],
		Handle:    smbios.Handle(uint16(b[2]) | uint16(b[3])<<8),
		Formatted: b[:length],
	}

	// Scan the string pack: NUL-terminated strings until the double NUL.
	off := length
	for {
		if off >= len(b) {
			return Record{}, 0, &RecordError{"unterminated string pack"}
		}
		if b[off] == 0 {
			// Either the empty-pack first terminator or the final one.
			off++
			if len(rec.Strings) == 0 {
				if off >= len(b) || b[off] != 0 {
					return Record{}, 0, &RecordError{"missing double terminator"}
				}
				off++
			}
			return rec, off, nil
		}
		end := off
		for end < len(b) && b[end] != 0 {
			end++
		}
		if end == len(b) {
			return Record{}, 0, &RecordError{"unterminated string pack"}
		}
		rec.Strings = append(rec.Strings, string(b[off:end]))
		off = end + 1
		if off < len(b) && b[off] == 0 {
			return rec, off + 1, nil
		}
	}
}

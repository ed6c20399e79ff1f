package smbios

const hexDigits = "0123456789ABCDEF"

// ToHex renders v as upper-case hexadecimal text, most significant nibble
// first, with leading zero nibbles skipped entirely. At most width-1
// characters are produced; excess low-order nibbles are dropped silently,
// so callers wanting a lossless rendering of a uint64 pass a width of at
// least 17. A zero value renders as the empty string.
func ToHex(v uint64, width int) string {
	if width <= 1 {
		return ""
	}
	out := make([]byte, 0, width-1)
	started := false
	for shift := 60; shift >= 0; shift -= 4 {
		nibble := byte(v>>uint(shift)) & 0xF
		if !started {
			if nibble == 0 {
				continue
			}
			started = true
		}
		if len(out) == width-1 {
			break
		}
		out = append(out, hexDigits[nibble])
	}
	return string(out)
}

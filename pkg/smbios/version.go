package smbios

// Version extraction states. The scan walks the string once looking for
// the first well-formed <digits>.<digits> token whose components both fit
// in a byte.
const (
	verIdle = iota
	verMajor
	verDot
	verMinor
	verDone
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ParseVersion scans a free-form vendor version string for the first
// major.minor numeric token and returns its components. A digit run whose
// value exceeds 255 invalidates the whole run (it is skipped and the scan
// resets), which lets a genuine version later in the string win over a
// stray model number, e.g. "Firmware X83737.1 v1.23" yields 1.23.
//
// ok reports whether a token was found; on false the returned components
// are zero and callers keep their own defaults.
func ParseVersion(s string) (major, minor uint8, ok bool) {
	var val [2]int
	state := verIdle

	i := 0
	for i < len(s) && state != verDone {
		c := s[i]
		switch state {
		case verIdle:
			if isDigit(c) {
				val[0], val[1] = 0, 0
				state = verMajor
				continue
			}
			i++
		case verMajor, verMinor:
			idx := 0
			if state == verMinor {
				idx = 1
			}
			if !isDigit(c) {
				if state == verMajor {
					// The dot must follow the major run immediately.
					state = verDot
					continue
				}
				state = verDone
				continue
			}
			val[idx] = val[idx]*10 + int(c-'0')
			if val[idx] > 255 {
				// Not a version token. Skip the remainder of the digit
				// run and start over past it.
				for i+1 < len(s) && isDigit(s[i+1]) {
					i++
				}
				state = verIdle
			}
			i++
		case verDot:
			if c == '.' && i+1 < len(s) && isDigit(s[i+1]) {
				state = verMinor
			} else {
				state = verIdle
			}
			i++
		}
	}

	if state == verMinor || state == verDone {
		return uint8(val[0]), uint8(val[1]), true
	}
	return 0, 0, false
}

// Package probe reads the hardware facts that cannot come from
// configuration: the part's burned-in identity bytes, the core clock and
// the installed memory size. A deterministic Fixed probe backs tests and
// platforms without the relevant interfaces.
package probe

import "fmt"

// IdentitySize is the number of identity bytes a probe must return. The
// serial derivation folds exactly this many bytes.
const IdentitySize = 16

// Probe supplies per-part hardware facts to the table assembly routines.
type Probe interface {
	// Identity returns the IdentitySize raw identity bytes burned into
	// the part.
	Identity() ([]byte, error)
	// CoreClockHz reports the CPU core clock in Hz.
	CoreClockHz() (uint64, error)
	// MemoryBytes reports the total installed memory.
	MemoryBytes() (uint64, error)
	// ProcessorID returns the 8-byte processor identification value.
	ProcessorID() (uint64, error)
}

// Fixed is a probe with canned answers.
type Fixed struct {
	IdentityBytes []byte
	ClockHz       uint64
	Memory        uint64
	CPUID         uint64
}

// NewFixed returns a Fixed probe with plausible defaults: a recognizable
// identity pattern, a 1.4 GHz clock and 4 GiB of memory.
func NewFixed() *Fixed {
	return &Fixed{
		IdentityBytes: []byte{
			0x52, 0x4b, 0x33, 0x35, 0x36, 0x36, 0x00, 0x01,
			0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09,
		},
		ClockHz: 1_416_000_000,
		Memory:  4 << 30,
		CPUID:   0x412fd050,
	}
}

func (f *Fixed) Identity() ([]byte, error) {
	if len(f.IdentityBytes) != IdentitySize {
		return nil, fmt.Errorf("identity: have %d bytes, want %d", len(f.IdentityBytes), IdentitySize)
	}
	out := make([]byte, IdentitySize)
	copy(out, f.IdentityBytes)
	return out, nil
}

func (f *Fixed) CoreClockHz() (uint64, error) { return f.ClockHz, nil }

func (f *Fixed) MemoryBytes() (uint64, error) { return f.Memory, nil }

func (f *Fixed) ProcessorID() (uint64, error) { return f.CPUID, nil }

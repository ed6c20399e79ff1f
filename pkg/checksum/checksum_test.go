package checksum

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumMatchesReferenceTable(t *testing.T) {
	// Sum with an all-ones seed and a final complement must agree with the
	// standard IEEE CRC32, since it shares the polynomial table.
	data := []byte("The quick brown fox jumps over the lazy dog")
	got := Sum(^uint32(0), data) ^ ^uint32(0)
	assert.Equal(t, crc32.ChecksumIEEE(data), got)
}

func TestSumStreaming(t *testing.T) {
	testCases := []struct {
		name string
		seed uint32
		b1   []byte
		b2   []byte
	}{
		{name: "both halves populated", seed: 0, b1: []byte{0xDE, 0xAD}, b2: []byte{0xBE, 0xEF}},
		{name: "empty first half", seed: 0x12345678, b1: nil, b2: []byte("serial")},
		{name: "empty second half", seed: 7, b1: []byte("serial"), b2: nil},
		{name: "both empty", seed: 0xFFFFFFFF, b1: nil, b2: nil},
		{name: "single bytes", seed: 1, b1: []byte{0x00}, b2: []byte{0xFF}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			whole := append(append([]byte{}, tc.b1...), tc.b2...)
			split := Sum(Sum(tc.seed, tc.b1), tc.b2)
			assert.Equal(t, Sum(tc.seed, whole), split,
				"splitting the input must not change the result")
		})
	}
}

func TestSumEmptyIsSeed(t *testing.T) {
	assert.Equal(t, uint32(0xCAFEF00D), Sum(0xCAFEF00D, nil))
	assert.Equal(t, uint32(0), Sum(0, []byte{}))
}

func TestFold64(t *testing.T) {
	lo := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	hi := []byte{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18}

	v := Fold64(lo, hi)

	first := Sum(0, lo)
	second := Sum(first, hi)
	require.Equal(t, first, uint32(v), "first result lands in the low half")
	require.Equal(t, second, uint32(v>>32), "seeded result lands in the high half")

	// Deterministic across calls.
	assert.Equal(t, v, Fold64(lo, hi))
}

// Package checksum implements the seedable, non-complemented CRC32 used to
// fold raw hardware identity bytes into stable pseudo-random values.
//
// Unlike hash/crc32's IEEE functions, Sum does not invert the accumulator
// before or after processing, so a result can be fed back in as the seed of
// a later call. That property is what lets two 8-byte halves of an identity
// buffer be folded into a single 64-bit serial number.
package checksum

import "hash/crc32"

// table is the standard reflected IEEE 802.3 polynomial table. Only the
// table is shared with hash/crc32; the accumulator handling differs.
var table = crc32.MakeTable(crc32.IEEE)

// Sum processes p one byte at a time starting from seed and returns the raw
// accumulator. It is a pure function: the same seed and bytes always yield
// the same result, and Sum(Sum(s, a), b) == Sum(s, append(a, b...)).
func Sum(seed uint32, p []byte) uint32 {
	crc := seed
	for _, b := range p {
		crc = (crc >> 8) ^ table[byte(crc)^b]
	}
	return crc
}

// Fold64 derives a 64-bit identifier from two 8-byte buffers: the checksum
// of lo seeds the checksum of hi, and the two 32-bit results are packed
// with the first in the low half.
func Fold64(lo, hi []byte) uint64 {
	l := Sum(0, lo)
	h := Sum(l, hi)
	return uint64(h)<<32 | uint64(l)
}

package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedIdentity(t *testing.T) {
	f := NewFixed()

	id, err := f.Identity()
	require.NoError(t, err)
	assert.Len(t, id, IdentitySize)

	// Callers may scribble on the returned slice.
	id[0] = 0xFF
	again, err := f.Identity()
	require.NoError(t, err)
	assert.NotEqual(t, byte(0xFF), again[0])
}

func TestFixedIdentityWrongSize(t *testing.T) {
	f := &Fixed{IdentityBytes: []byte{1, 2, 3}}

	_, err := f.Identity()
	assert.Error(t, err)
}

func TestFixedValues(t *testing.T) {
	f := NewFixed()

	hz, err := f.CoreClockHz()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_416_000_000), hz)

	mem, err := f.MemoryBytes()
	require.NoError(t, err)
	assert.Equal(t, uint64(4<<30), mem)
}

package builder

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smbtab/smbtab/pkg/codec"
	"github.com/smbtab/smbtab/pkg/config"
	"github.com/smbtab/smbtab/pkg/probe"
	"github.com/smbtab/smbtab/pkg/smbios"
	"github.com/smbtab/smbtab/pkg/store"
)

func buildFixture(t *testing.T) []codec.Record {
	t.Helper()

	st := store.NewMemStore()
	b := New(st, probe.NewFixed(), config.DefaultConfig(), zap.NewNop())
	require.NoError(t, b.Run(context.Background()))

	blob, err := st.Bytes()
	require.NoError(t, err)
	records, err := codec.ParseTable(blob)
	require.NoError(t, err)
	return records
}

func byType(t *testing.T, records []codec.Record, typ uint8) codec.Record {
	t.Helper()
	for _, r := range records {
		if r.Type == typ {
			return r
		}
	}
	t.Fatalf("no record of type %d", typ)
	return codec.Record{}
}

func handleAt(rec codec.Record, off int) smbios.Handle {
	return smbios.Handle(binary.LittleEndian.Uint16(rec.Formatted[off:]))
}

func TestRunRegistersEveryKind(t *testing.T) {
	records := buildFixture(t)

	var types []uint8
	for _, r := range records {
		types = append(types, r.Type)
	}
	assert.Equal(t, []uint8{0, 1, 3, 2, 7, 7, 7, 4, 9, 11, 16, 17, 19, 32}, types)
}

func TestBoardPointsAtEnclosure(t *testing.T) {
	records := buildFixture(t)

	enclosure := byType(t, records, smbios.TypeEnclosureInfo)
	board := byType(t, records, smbios.TypeBaseboardInfo)

	assert.Equal(t, enclosure.Handle, handleAt(board, 0x0B))
}

func TestProcessorPointsAtCaches(t *testing.T) {
	records := buildFixture(t)

	var caches []codec.Record
	for _, r := range records {
		if r.Type == smbios.TypeCacheInfo {
			caches = append(caches, r)
		}
	}
	require.Len(t, caches, 3)
	l1d, l2 := caches[1], caches[2]

	cpu := byType(t, records, smbios.TypeProcessorInfo)
	assert.Equal(t, l1d.Handle, handleAt(cpu, 0x1A))
	assert.Equal(t, l2.Handle, handleAt(cpu, 0x1C))
	assert.Equal(t, smbios.HandleNone, handleAt(cpu, 0x1E), "no L3 on this platform")
}

func TestMemoryRecordsPointAtArray(t *testing.T) {
	records := buildFixture(t)

	array := byType(t, records, smbios.TypeMemoryArray)
	device := byType(t, records, smbios.TypeMemoryDevice)
	addr := byType(t, records, smbios.TypeMemoryArrayAddr)

	assert.Equal(t, array.Handle, handleAt(device, 0x04))
	assert.Equal(t, array.Handle, handleAt(addr, 0x0C))
	assert.Equal(t, smbios.HandleNoError, handleAt(array, 0x0B))
}

func TestMemorySizes(t *testing.T) {
	records := buildFixture(t)

	// The fixed probe reports 4 GiB.
	array := byType(t, records, smbios.TypeMemoryArray)
	assert.Equal(t, uint32(4<<20), binary.LittleEndian.Uint32(array.Formatted[0x07:]))

	device := byType(t, records, smbios.TypeMemoryDevice)
	assert.Equal(t, uint16(4<<10), binary.LittleEndian.Uint16(device.Formatted[0x0C:]))

	addr := byType(t, records, smbios.TypeMemoryArrayAddr)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(addr.Formatted[0x04:]))
	assert.Equal(t, uint32(4<<20-1), binary.LittleEndian.Uint32(addr.Formatted[0x08:]))
}

func TestSystemSerialIsFoldedIdentity(t *testing.T) {
	records := buildFixture(t)
	system := byType(t, records, smbios.TypeSystemInfo)

	id, err := probe.NewFixed().Identity()
	require.NoError(t, err)
	want := smbios.ToHex(serialNumber(id), 17)
	require.NotEmpty(t, want)

	require.GreaterOrEqual(t, len(system.Strings), 4)
	assert.Equal(t, want, system.Strings[3])
}

func TestProcessorSpeedFromProbe(t *testing.T) {
	records := buildFixture(t)
	cpu := byType(t, records, smbios.TypeProcessorInfo)

	// 1.416 GHz fixture clock, reported in MHz.
	assert.Equal(t, uint16(1416), binary.LittleEndian.Uint16(cpu.Formatted[0x14:]))
	assert.Equal(t, uint16(1416), binary.LittleEndian.Uint16(cpu.Formatted[0x16:]))
}

// rejectTypes wraps a store and refuses the listed record types.
type rejectTypes struct {
	*store.MemStore
	reject map[uint8]bool
}

func (r *rejectTypes) Add(rec []byte) (smbios.Handle, error) {
	if r.reject[rec[0]] {
		return 0, store.ErrRejected
	}
	return r.MemStore.Add(rec)
}

func TestDroppedProducerLeavesSentinel(t *testing.T) {
	st := &rejectTypes{
		MemStore: store.NewMemStore(),
		reject:   map[uint8]bool{smbios.TypeEnclosureInfo: true, smbios.TypeMemoryArray: true},
	}
	b := New(st, probe.NewFixed(), config.DefaultConfig(), zap.NewNop())
	require.NoError(t, b.Run(context.Background()))

	blob, err := st.Bytes()
	require.NoError(t, err)
	records, err := codec.ParseTable(blob)
	require.NoError(t, err)

	board := byType(t, records, smbios.TypeBaseboardInfo)
	assert.Equal(t, smbios.HandleNone, handleAt(board, 0x0B))

	device := byType(t, records, smbios.TypeMemoryDevice)
	assert.Equal(t, smbios.HandleNone, handleAt(device, 0x04))
	addr := byType(t, records, smbios.TypeMemoryArrayAddr)
	assert.Equal(t, smbios.HandleNone, handleAt(addr, 0x0C))
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := store.NewMemStore()
	b := New(st, probe.NewFixed(), config.DefaultConfig(), zap.NewNop())
	require.Error(t, b.Run(ctx))
	assert.Equal(t, 0, st.Len())
}

func TestSystemUUIDStable(t *testing.T) {
	assert.Equal(t, systemUUID(42), systemUUID(42))
	assert.NotEqual(t, systemUUID(42), systemUUID(43))
	assert.NotEqual(t, systemUUID(0), systemUUID(1))
}

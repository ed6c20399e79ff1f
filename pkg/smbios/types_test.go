package smbios

import (
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackHeader(t *testing.T) {
	bodies := map[uint8]Body{
		TypeFirmwareInfo:    &FirmwareInfo{},
		TypeSystemInfo:      &SystemInfo{},
		TypeBaseboardInfo:   &BaseboardInfo{},
		TypeEnclosureInfo:   &EnclosureInfo{},
		TypeProcessorInfo:   &ProcessorInfo{},
		TypeCacheInfo:       &CacheInfo{},
		TypeSlotInfo:        &SlotInfo{},
		TypeOEMStrings:      &OEMStrings{},
		TypeMemoryArray:     &MemoryArray{},
		TypeMemoryDevice:    &MemoryDevice{},
		TypeMemoryArrayAddr: &MemoryArrayAddr{},
		TypeBootInfo:        &BootInfo{},
	}

	for typ, body := range bodies {
		buf := body.Pack()
		require.GreaterOrEqual(t, len(buf), 4)
		assert.Equal(t, typ, buf[0], "type tag")
		assert.Equal(t, len(buf), int(buf[1]), "declared length covers the formatted body only")
		assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(buf[2:4]), "handle placeholder")
	}
}

func TestBaseboardInfoPackOffsets(t *testing.T) {
	b := &BaseboardInfo{
		Manufacturer:      1,
		Product:           2,
		Version:           3,
		SerialNumber:      4,
		AssetTag:          5,
		FeatureFlags:      BoardFeatureHostingBoard,
		LocationInChassis: 6,
		ChassisHandle:     0xBEEF,
		BoardType:         BoardMotherboard,
	}
	buf := b.Pack()

	require.Len(t, buf, 0x11)
	assert.Equal(t, byte(1), buf[4])
	assert.Equal(t, byte(6), buf[0x0A])
	assert.Equal(t, uint16(0xBEEF), binary.LittleEndian.Uint16(buf[0x0B:0x0D]), "chassis handle at offset 0x0B")
	assert.Equal(t, BoardMotherboard, buf[0x0D])
	assert.Equal(t, byte(0), buf[0x0E], "contained object handle count")
	assert.Equal(t, 6, b.StringRefs())
}

func TestProcessorInfoPackOffsets(t *testing.T) {
	c := &ProcessorInfo{
		Socket:        1,
		ProcessorType: ProcessorCentral,
		ID:            0x1122334455667788,
		MaxSpeed:      1800,
		CurrentSpeed:  1800,
		L1CacheHandle: 0x0005,
		L2CacheHandle: 0x0006,
		L3CacheHandle: HandleNone,
		CoreCount:     4,
		Family2:       ProcessorFamily2ARM,
	}
	buf := c.Pack()

	require.Len(t, buf, 0x30)
	assert.Equal(t, uint64(0x1122334455667788), binary.LittleEndian.Uint64(buf[0x08:0x10]))
	assert.Equal(t, uint16(1800), binary.LittleEndian.Uint16(buf[0x14:0x16]), "max speed")
	assert.Equal(t, uint16(0x0005), binary.LittleEndian.Uint16(buf[0x1A:0x1C]), "L1 handle")
	assert.Equal(t, uint16(0x0006), binary.LittleEndian.Uint16(buf[0x1C:0x1E]), "L2 handle")
	assert.Equal(t, uint16(0xFFFF), binary.LittleEndian.Uint16(buf[0x1E:0x20]), "L3 stays at sentinel")
	assert.Equal(t, ProcessorFamily2ARM, binary.LittleEndian.Uint16(buf[0x28:0x2A]))
}

func TestSystemInfoPackUUID(t *testing.T) {
	id := uuid.MustParse("25ef0280-ec82-42b0-8fb6-10adccc67c02")
	s := &SystemInfo{Manufacturer: 1, UUID: id, WakeupType: WakeupPowerSwitch}
	buf := s.Pack()

	require.Len(t, buf, 0x1B)
	assert.Equal(t, id[:], buf[0x08:0x18])
	assert.Equal(t, WakeupPowerSwitch, buf[0x18])
}

func TestMemoryRecordsPackOffsets(t *testing.T) {
	dev := &MemoryDevice{
		ArrayHandle:     0x0010,
		ErrorInfoHandle: HandleNoError,
		Size:            2048,
		DeviceLocator:   1,
		Manufacturer:    2,
		VolatileSize:    2048 * 1024 * 1024,
	}
	buf := dev.Pack()
	require.Len(t, buf, 0x5C)
	assert.Equal(t, uint16(0x0010), binary.LittleEndian.Uint16(buf[0x04:0x06]), "array handle")
	assert.Equal(t, uint16(0xFFFE), binary.LittleEndian.Uint16(buf[0x06:0x08]))
	assert.Equal(t, uint16(2048), binary.LittleEndian.Uint16(buf[0x0C:0x0E]), "size in MiB")
	assert.Equal(t, uint64(2048*1024*1024), binary.LittleEndian.Uint64(buf[0x3C:0x44]), "volatile size")
	assert.Equal(t, 2, dev.StringRefs())

	addr := &MemoryArrayAddr{
		StartingAddress: 0x100,
		EndingAddress:   0x200000,
		ArrayHandle:     0x0010,
		PartitionWidth:  1,
	}
	abuf := addr.Pack()
	require.Len(t, abuf, 0x1F)
	assert.Equal(t, uint16(0x0010), binary.LittleEndian.Uint16(abuf[0x0C:0x0E]), "array handle at offset 0x0C")
}

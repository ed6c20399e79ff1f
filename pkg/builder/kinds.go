package builder

import (
	"encoding/binary"
	"math/bits"

	"github.com/google/uuid"

	"github.com/smbtab/smbtab/pkg/checksum"
	"github.com/smbtab/smbtab/pkg/probe"
	"github.com/smbtab/smbtab/pkg/smbios"
)

// maxInventoryString caps every string that ends up in a pack. Longer
// configured values are truncated rather than rejected.
const maxInventoryString = 128

const (
	fwCharPCISupported   = 1 << 7
	fwCharUpgradeable    = 1 << 11
	fwCharSelectableBoot = 1 << 16

	fwExt1ACPI = 1 << 0
	fwExt2UEFI = 1 << 3

	// External oscillator rate in MHz.
	externalClockMHz = 24
)

// clamp bounds a string for use in a pack. Empty values become "Unknown"
// because a pack entry must be non-empty.
func clamp(s string) string {
	if s == "" {
		return "Unknown"
	}
	if len(s) > maxInventoryString {
		return s[:maxInventoryString]
	}
	return s
}

// serialNumber folds the part's identity bytes into a 64-bit serial. The
// identity block interleaves its two words byte-wise, so even offsets form
// the low half and odd offsets the high half before the fold.
func serialNumber(identity []byte) uint64 {
	var lo, hi [probe.IdentitySize / 2]byte
	for i := 0; i < probe.IdentitySize/2; i++ {
		lo[i] = identity[2*i]
		hi[i] = identity[2*i+1]
	}
	return checksum.Fold64(lo[:], hi[:])
}

// systemUUID derives a stable UUID from the serial: the serial in the
// time fields, its byte-swapped form in the node fields. Identical across
// boots of the same part, distinct across parts.
func systemUUID(serial uint64) uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint64(u[0:8], serial)
	binary.BigEndian.PutUint64(u[8:16], bits.ReverseBytes64(serial))
	return u
}

func (b *Builder) addFirmware() error {
	plat := b.cfg.Platform

	info := &smbios.FirmwareInfo{
		Vendor:          1,
		Version:         2,
		ReleaseDate:     3,
		StartSegment:    uint16(plat.FirmwareBase >> 4),
		Characteristics: fwCharPCISupported | fwCharUpgradeable | fwCharSelectableBoot,
		CharsExt1:       fwExt1ACPI,
		CharsExt2:       fwExt2UEFI,
		MajorRelease:    0xFF,
		MinorRelease:    0xFF,
		ECMajorRelease:  0xFF,
		ECMinorRelease:  0xFF,
	}

	if plat.FirmwareSize >= 64<<10 {
		info.ROMSize = uint8(plat.FirmwareSize/(64<<10) - 1)
	}

	if major, minor, ok := smbios.ParseVersion(plat.FirmwareVersion); ok {
		info.MajorRelease = major
		info.MinorRelease = minor
	}

	_, err := b.register(info, []string{
		clamp(plat.Vendor),
		clamp(plat.FirmwareVersion),
		b.now().Format("01/02/2006"),
	})
	return err
}

func (b *Builder) addSystem() error {
	plat := b.cfg.Platform

	serialStr := "Unknown"
	var serial uint64
	identity, err := b.probe.Identity()
	if err != nil {
		b.sugar.Warnw("hardware identity unavailable", "err", err)
	} else {
		serial = serialNumber(identity)
		if s := smbios.ToHex(serial, 17); s != "" {
			serialStr = s
		}
	}

	info := &smbios.SystemInfo{
		Manufacturer: 1,
		ProductName:  2,
		Version:      3,
		SerialNumber: 4,
		UUID:         systemUUID(serial),
		WakeupType:   smbios.WakeupPowerSwitch,
		SKUNumber:    5,
		Family:       6,
	}

	_, err = b.register(info, []string{
		clamp(plat.Vendor),
		clamp(plat.PlatformName),
		clamp(plat.FirmwareVersion),
		serialStr,
		clamp(plat.PlatformName),
		clamp(plat.FamilyName),
	})
	return err
}

// addPlatform registers the enclosure and then the board pointing back at
// it. A dropped enclosure leaves the board's chassis reference at the
// sentinel.
func (b *Builder) addPlatform() error {
	plat := b.cfg.Platform

	enclosure := &smbios.EnclosureInfo{
		Manufacturer:     1,
		ChassisType:      smbios.ChassisEmbeddedPC,
		Version:          2,
		SerialNumber:     3,
		AssetTag:         4,
		BootupState:      smbios.ChassisStateSafe,
		PowerSupplyState: smbios.ChassisStateSafe,
		ThermalState:     smbios.ChassisStateSafe,
		SecurityStatus:   smbios.ChassisSecurityNone,
	}

	chassis, err := b.register(enclosure, []string{
		clamp(plat.Vendor),
		clamp(plat.PlatformName),
		"Unknown",
		"Unknown",
	})
	if err != nil {
		b.sugar.Warnw("enclosure dropped, board keeps sentinel reference", "err", err)
	}

	board := &smbios.BaseboardInfo{
		Manufacturer:      1,
		Product:           2,
		Version:           3,
		SerialNumber:      4,
		AssetTag:          5,
		FeatureFlags:      smbios.BoardFeatureHostingBoard,
		LocationInChassis: 6,
		ChassisHandle:     chassis,
		BoardType:         smbios.BoardMotherboard,
	}

	_, err = b.register(board, []string{
		clamp(plat.Vendor),
		clamp(plat.PlatformName),
		clamp(plat.FirmwareVersion),
		"Unknown",
		"Unknown",
		"Embedded",
	})
	return err
}

// addProcessor registers the three caches first so the processor record
// can embed their handles.
func (b *Builder) addProcessor() error {
	plat := b.cfg.Platform
	cores := plat.CPUCores
	if cores <= 0 {
		cores = 1
	}

	l1i, err := b.register(&smbios.CacheInfo{
		SocketDesignation: 1,
		Configuration:     smbios.CacheConfigL1Instruction,
		MaximumSize:       uint16(32 * cores),
		InstalledSize:     uint16(32 * cores),
		SupportedSRAM:     smbios.CacheSRAMSynchronous,
		CurrentSRAM:       smbios.CacheSRAMSynchronous,
		ErrorCorrection:   smbios.CacheErrorParity,
		CacheType:         smbios.CacheTypeInstruction,
		Associativity:     smbios.CacheAssoc4Way,
	}, []string{"L1 Instruction Cache"})
	if err != nil {
		b.sugar.Warnw("L1 instruction cache dropped", "err", err)
	}

	l1d, err := b.register(&smbios.CacheInfo{
		SocketDesignation: 1,
		Configuration:     smbios.CacheConfigL1Data,
		MaximumSize:       uint16(32 * cores),
		InstalledSize:     uint16(32 * cores),
		SupportedSRAM:     smbios.CacheSRAMSynchronous,
		CurrentSRAM:       smbios.CacheSRAMSynchronous,
		ErrorCorrection:   smbios.CacheErrorSingleBit,
		CacheType:         smbios.CacheTypeData,
		Associativity:     smbios.CacheAssoc4Way,
	}, []string{"L1 Data Cache"})
	if err != nil {
		b.sugar.Warnw("L1 data cache dropped", "err", err)
	}

	l2, err := b.register(&smbios.CacheInfo{
		SocketDesignation: 1,
		Configuration:     smbios.CacheConfigL2Unified,
		MaximumSize:       512,
		InstalledSize:     512,
		SupportedSRAM:     smbios.CacheSRAMSynchronous,
		CurrentSRAM:       smbios.CacheSRAMSynchronous,
		ErrorCorrection:   smbios.CacheErrorSingleBit,
		CacheType:         smbios.CacheTypeUnified,
		Associativity:     smbios.CacheAssoc16Way,
	}, []string{"L2 Cache"})
	if err != nil {
		b.sugar.Warnw("L2 cache dropped", "err", err)
	}

	// The data cache handle stands for the whole L1 complex when both
	// halves registered; if it was dropped, fall back to the instruction
	// half rather than the sentinel.
	l1 := l1d
	if l1 == smbios.HandleNone {
		l1 = l1i
	}

	clockHz, err := b.probe.CoreClockHz()
	if err != nil {
		b.sugar.Warnw("core clock unavailable", "err", err)
	}
	cpuID, err := b.probe.ProcessorID()
	if err != nil {
		b.sugar.Warnw("processor id unavailable", "err", err)
	}

	info := &smbios.ProcessorInfo{
		Socket:          1,
		ProcessorType:   smbios.ProcessorCentral,
		Family:          smbios.ProcessorFamilyRefer2,
		Manufacturer:    2,
		ID:              cpuID,
		Version:         3,
		Voltage:         smbios.ProcessorVoltageLegacy,
		ExternalClock:   externalClockMHz,
		MaxSpeed:        uint16(clockHz / 1_000_000),
		CurrentSpeed:    uint16(clockHz / 1_000_000),
		Status:          smbios.ProcessorStatusEnabled,
		Upgrade:         smbios.ProcessorUpgradeNone,
		L1CacheHandle:   l1,
		L2CacheHandle:   l2,
		L3CacheHandle:   smbios.HandleNone,
		CoreCount:       uint8(cores),
		EnabledCores:    uint8(cores),
		ThreadCount:     uint8(cores),
		Characteristics: smbios.ProcessorChars64Bit,
		Family2:         smbios.ProcessorFamily2ARM,
		CoreCount2:      uint16(cores),
		EnabledCores2:   uint16(cores),
		ThreadCount2:    uint16(cores),
	}

	_, err = b.register(info, []string{
		"CPU0",
		"ARM",
		clamp(plat.CPUName),
	})
	return err
}

func (b *Builder) addSlot() error {
	_, err := b.register(&smbios.SlotInfo{
		Designation:      1,
		SlotType:         smbios.SlotTypeOther,
		DataBusWidth:     smbios.SlotBusWidthOther,
		CurrentUsage:     smbios.SlotUsageAvailable,
		Length:           smbios.SlotLengthOther,
		Characteristics1: smbios.SlotCharsUnknown,
		SegmentGroup:     smbios.SlotSegmentNone,
		Bus:              smbios.SlotBusNone,
		DevFunc:          smbios.SlotDevFuncNone,
	}, []string{"SD Card"})
	return err
}

func (b *Builder) addOEMStrings() error {
	var pack []string
	for _, s := range []string{b.cfg.Platform.ProductURL} {
		if s != "" {
			pack = append(pack, clamp(s))
		}
	}
	if len(pack) == 0 {
		b.sugar.Debugw("no OEM strings configured, skipping record")
		return nil
	}

	_, err := b.register(&smbios.OEMStrings{Count: uint8(len(pack))}, pack)
	return err
}

// addMemory registers the array and then the device and mapped range that
// both point back at it.
func (b *Builder) addMemory() error {
	plat := b.cfg.Platform
	memBytes := b.memBytes

	array := &smbios.MemoryArray{
		Location:        smbios.MemoryLocationSystemBoard,
		Use:             smbios.MemoryUseSystem,
		ErrorCorrection: smbios.MemoryECCUnknown,
		ErrorInfoHandle: smbios.HandleNoError,
		DeviceCount:     1,
	}
	if kib := memBytes / 1024; kib < 0x80000000 {
		array.MaximumCapacity = uint32(kib)
	} else {
		array.MaximumCapacity = 0x80000000
		array.ExtendedMaximum = memBytes
	}

	arrayHandle, err := b.register(array, nil)
	if err != nil {
		b.sugar.Warnw("memory array dropped, devices keep sentinel reference", "err", err)
	}

	device := &smbios.MemoryDevice{
		ArrayHandle:     arrayHandle,
		ErrorInfoHandle: smbios.HandleNoError,
		TotalWidth:      smbios.MemoryWidthUnknown,
		DataWidth:       smbios.MemoryWidthUnknown,
		FormFactor:      smbios.MemoryFormFactorChip,
		DeviceLocator:   1,
		BankLocator:     2,
		MemoryType:      smbios.MemoryTypeLPDDR4,
		TypeDetail:      smbios.MemoryDetailUnknown,
		Manufacturer:    3,
		Technology:      smbios.MemoryTechnologyDRAM,
		OperatingMode:   smbios.MemoryModeVolatile,
		VolatileSize:    memBytes,
	}
	if mib := memBytes >> 20; mib < 0x7FFF {
		device.Size = uint16(mib)
	} else {
		device.Size = 0x7FFF
		device.ExtendedSize = uint32(mib)
	}

	if _, err := b.register(device, []string{
		"SDRAM",
		"BANK 0",
		clamp(plat.MemoryVendor),
	}); err != nil {
		b.sugar.Warnw("memory device dropped", "err", err)
	}

	addr := &smbios.MemoryArrayAddr{
		ArrayHandle:    arrayHandle,
		PartitionWidth: 1,
	}
	startKiB := plat.MemoryBase / 1024
	endKiB := startKiB
	if memBytes >= 1024 {
		endKiB = startKiB + memBytes/1024 - 1
	}
	if endKiB <= 0xFFFFFFFF {
		addr.StartingAddress = uint32(startKiB)
		addr.EndingAddress = uint32(endKiB)
	} else {
		addr.StartingAddress = 0xFFFFFFFF
		addr.EndingAddress = 0xFFFFFFFF
		addr.ExtendedStart = plat.MemoryBase
		addr.ExtendedEnd = plat.MemoryBase + memBytes - 1
	}

	_, err = b.register(addr, nil)
	return err
}

func (b *Builder) addBoot() error {
	_, err := b.register(&smbios.BootInfo{Status: smbios.BootStatusNoError}, nil)
	return err
}

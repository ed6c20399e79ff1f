package smbios

// Enumeration values from the SMBIOS specification, limited to the subset
// the assembly routines actually emit.

// System wake-up type (type 1).
const WakeupPowerSwitch uint8 = 0x06

// Baseboard type (type 2).
const BoardMotherboard uint8 = 0x0A

// Baseboard feature flags (type 2).
const BoardFeatureHostingBoard uint8 = 0x01

// Chassis type and state (type 3).
const (
	ChassisEmbeddedPC   uint8 = 0x22
	ChassisStateSafe    uint8 = 0x03
	ChassisSecurityNone uint8 = 0x03
)

// Processor classification (type 4).
const (
	ProcessorCentral       uint8  = 0x03
	ProcessorUpgradeNone   uint8  = 0x06
	ProcessorFamilyRefer2  uint8  = 0xFE // real family carried in Family2
	ProcessorFamily2ARM    uint16 = 0x0100
	ProcessorStatusEnabled uint8  = 0x41
	ProcessorVoltageLegacy uint8  = 0x07 // 5V|3.3V|2.9V capability bits
	ProcessorChars64Bit    uint16 = 0x006C
)

// Cache classification (type 7). CacheConfig* are complete pre-assembled
// configuration words: level, internal, enabled, operational mode.
const (
	CacheConfigL1Instruction uint16 = 0x0380
	CacheConfigL1Data        uint16 = 0x0180
	CacheConfigL2Unified     uint16 = 0x0181

	CacheSRAMSynchronous uint16 = 0x0028 // burst | synchronous

	CacheErrorParity    uint8 = 0x04
	CacheErrorSingleBit uint8 = 0x05

	CacheTypeInstruction uint8 = 0x03
	CacheTypeData        uint8 = 0x04
	CacheTypeUnified     uint8 = 0x05

	CacheAssoc2Way  uint8 = 0x04
	CacheAssoc4Way  uint8 = 0x05
	CacheAssoc16Way uint8 = 0x08
)

// Slot classification (type 9).
const (
	SlotTypeOther      uint8  = 0x01
	SlotBusWidthOther  uint8  = 0x01
	SlotUsageAvailable uint8  = 0x03
	SlotLengthOther    uint8  = 0x01
	SlotCharsUnknown   uint8  = 0x01
	SlotSegmentNone    uint16 = 0xFFFF
	SlotBusNone        uint8  = 0xFF
	SlotDevFuncNone    uint8  = 0xFF
)

// Memory topology (types 16, 17, 19).
const (
	MemoryLocationSystemBoard uint8 = 0x03
	MemoryUseSystem           uint8 = 0x03
	MemoryECCUnknown          uint8 = 0x02

	MemoryFormFactorChip uint8  = 0x05
	MemoryTypeLPDDR4     uint8  = 0x1E
	MemoryDetailUnknown  uint16 = 0x0004
	MemoryTechnologyDRAM uint8  = 0x03
	MemoryModeVolatile   uint16 = 0x0008

	// MemoryWidthUnknown marks total/data bus widths nothing probed.
	MemoryWidthUnknown uint16 = 0xFFFF
)

// Boot status (type 32).
const BootStatusNoError uint8 = 0x00

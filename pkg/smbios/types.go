package smbios

import "github.com/google/uuid"

// Formatted body lengths per the externally fixed schema. The string pack
// appended by the codec is never included in these.
const (
	lenFirmwareInfo    = 0x1A
	lenSystemInfo      = 0x1B
	lenBaseboardInfo   = 0x11 // includes one contained-object handle slot
	lenEnclosureInfo   = 0x18 // includes one contained-element slot
	lenProcessorInfo   = 0x30
	lenCacheInfo       = 0x13
	lenSlotInfo        = 0x11
	lenOEMStrings      = 0x05
	lenMemoryArray     = 0x17
	lenMemoryDevice    = 0x5C
	lenMemoryArrayAddr = 0x1F
	lenBootInfo        = 0x0B
)

// FirmwareInfo is the type 0 record: firmware identity, size, release
// date and the major.minor release extracted from the version string.
type FirmwareInfo struct {
	Vendor          StrRef
	Version         StrRef
	StartSegment    uint16
	ReleaseDate     StrRef
	ROMSize         uint8 // in 64 KiB units
	Characteristics uint64
	CharsExt1       uint8
	CharsExt2       uint8
	MajorRelease    uint8
	MinorRelease    uint8
	ECMajorRelease  uint8
	ECMinorRelease  uint8
	ExtendedROMSize uint16 // in MiB when the unit bits are zero
}

func (f *FirmwareInfo) Pack() []byte {
	p := newPacker(TypeFirmwareInfo, lenFirmwareInfo)
	p.str(f.Vendor)
	p.str(f.Version)
	p.u16(f.StartSegment)
	p.str(f.ReleaseDate)
	p.u8(f.ROMSize)
	p.u64(f.Characteristics)
	p.u8(f.CharsExt1)
	p.u8(f.CharsExt2)
	p.u8(f.MajorRelease)
	p.u8(f.MinorRelease)
	p.u8(f.ECMajorRelease)
	p.u8(f.ECMinorRelease)
	p.u16(f.ExtendedROMSize)
	return p.buf
}

func (f *FirmwareInfo) StringRefs() int {
	return maxRef(f.Vendor, f.Version, f.ReleaseDate)
}

// SystemInfo is the type 1 record: system identity plus the UUID derived
// from the hardware-programmed serial.
type SystemInfo struct {
	Manufacturer StrRef
	ProductName  StrRef
	Version      StrRef
	SerialNumber StrRef
	UUID         uuid.UUID
	WakeupType   uint8
	SKUNumber    StrRef
	Family       StrRef
}

func (s *SystemInfo) Pack() []byte {
	p := newPacker(TypeSystemInfo, lenSystemInfo)
	p.str(s.Manufacturer)
	p.str(s.ProductName)
	p.str(s.Version)
	p.str(s.SerialNumber)
	p.bytes(s.UUID[:])
	p.u8(s.WakeupType)
	p.str(s.SKUNumber)
	p.str(s.Family)
	return p.buf
}

func (s *SystemInfo) StringRefs() int {
	return maxRef(s.Manufacturer, s.ProductName, s.Version, s.SerialNumber, s.SKUNumber, s.Family)
}

// BaseboardInfo is the type 2 record. ChassisHandle is a handle-reference
// field: it must be patched with the enclosure record's handle before this
// record is registered, otherwise it ships the HandleNone sentinel.
type BaseboardInfo struct {
	Manufacturer      StrRef
	Product           StrRef
	Version           StrRef
	SerialNumber      StrRef
	AssetTag          StrRef
	FeatureFlags      uint8
	LocationInChassis StrRef
	ChassisHandle     Handle
	BoardType         uint8
}

func (b *BaseboardInfo) Pack() []byte {
	p := newPacker(TypeBaseboardInfo, lenBaseboardInfo)
	p.str(b.Manufacturer)
	p.str(b.Product)
	p.str(b.Version)
	p.str(b.SerialNumber)
	p.str(b.AssetTag)
	p.u8(b.FeatureFlags)
	p.str(b.LocationInChassis)
	p.handle(b.ChassisHandle)
	p.u8(b.BoardType)
	p.u8(0) // contained object handle count
	p.u16(0) // reserved contained object handle slot
	return p.buf
}

func (b *BaseboardInfo) StringRefs() int {
	return maxRef(b.Manufacturer, b.Product, b.Version, b.SerialNumber, b.AssetTag, b.LocationInChassis)
}

// EnclosureInfo is the type 3 record. Its assigned handle is what the
// baseboard record's ChassisHandle must point at.
type EnclosureInfo struct {
	Manufacturer     StrRef
	ChassisType      uint8
	Version          StrRef
	SerialNumber     StrRef
	AssetTag         StrRef
	BootupState      uint8
	PowerSupplyState uint8
	ThermalState     uint8
	SecurityStatus   uint8
	OEMDefined       uint32
	Height           uint8
	PowerCords       uint8
}

func (e *EnclosureInfo) Pack() []byte {
	p := newPacker(TypeEnclosureInfo, lenEnclosureInfo)
	p.str(e.Manufacturer)
	p.u8(e.ChassisType)
	p.str(e.Version)
	p.str(e.SerialNumber)
	p.str(e.AssetTag)
	p.u8(e.BootupState)
	p.u8(e.PowerSupplyState)
	p.u8(e.ThermalState)
	p.u8(e.SecurityStatus)
	p.u32(e.OEMDefined)
	p.u8(e.Height)
	p.u8(e.PowerCords)
	p.u8(0) // contained element count
	p.u8(0) // contained element record length
	p.bytes(make([]byte, 3)) // reserved contained element slot
	return p.buf
}

func (e *EnclosureInfo) StringRefs() int {
	return maxRef(e.Manufacturer, e.Version, e.SerialNumber, e.AssetTag)
}

// ProcessorInfo is the type 4 record. L1CacheHandle and L2CacheHandle are
// handle-reference fields patched by the cache assembly step; L3 stays at
// the sentinel on platforms without one.
type ProcessorInfo struct {
	Socket          StrRef
	ProcessorType   uint8
	Family          uint8
	Manufacturer    StrRef
	ID              uint64
	Version         StrRef
	Voltage         uint8
	ExternalClock   uint16
	MaxSpeed        uint16 // MHz
	CurrentSpeed    uint16 // MHz
	Status          uint8
	Upgrade         uint8
	L1CacheHandle   Handle
	L2CacheHandle   Handle
	L3CacheHandle   Handle
	SerialNumber    StrRef
	AssetTag        StrRef
	PartNumber      StrRef
	CoreCount       uint8
	EnabledCores    uint8
	ThreadCount     uint8
	Characteristics uint16
	Family2         uint16
	CoreCount2      uint16
	EnabledCores2   uint16
	ThreadCount2    uint16
}

func (c *ProcessorInfo) Pack() []byte {
	p := newPacker(TypeProcessorInfo, lenProcessorInfo)
	p.str(c.Socket)
	p.u8(c.ProcessorType)
	p.u8(c.Family)
	p.str(c.Manufacturer)
	p.u64(c.ID)
	p.str(c.Version)
	p.u8(c.Voltage)
	p.u16(c.ExternalClock)
	p.u16(c.MaxSpeed)
	p.u16(c.CurrentSpeed)
	p.u8(c.Status)
	p.u8(c.Upgrade)
	p.handle(c.L1CacheHandle)
	p.handle(c.L2CacheHandle)
	p.handle(c.L3CacheHandle)
	p.str(c.SerialNumber)
	p.str(c.AssetTag)
	p.str(c.PartNumber)
	p.u8(c.CoreCount)
	p.u8(c.EnabledCores)
	p.u8(c.ThreadCount)
	p.u16(c.Characteristics)
	p.u16(c.Family2)
	p.u16(c.CoreCount2)
	p.u16(c.EnabledCores2)
	p.u16(c.ThreadCount2)
	return p.buf
}

func (c *ProcessorInfo) StringRefs() int {
	return maxRef(c.Socket, c.Manufacturer, c.Version, c.SerialNumber, c.AssetTag, c.PartNumber)
}

// CacheInfo is the type 7 record. Sizes are in KiB granularity words.
type CacheInfo struct {
	SocketDesignation StrRef
	Configuration     uint16
	MaximumSize       uint16
	InstalledSize     uint16
	SupportedSRAM     uint16
	CurrentSRAM       uint16
	Speed             uint8
	ErrorCorrection   uint8
	CacheType         uint8
	Associativity     uint8
}

func (c *CacheInfo) Pack() []byte {
	p := newPacker(TypeCacheInfo, lenCacheInfo)
	p.str(c.SocketDesignation)
	p.u16(c.Configuration)
	p.u16(c.MaximumSize)
	p.u16(c.InstalledSize)
	p.u16(c.SupportedSRAM)
	p.u16(c.CurrentSRAM)
	p.u8(c.Speed)
	p.u8(c.ErrorCorrection)
	p.u8(c.CacheType)
	p.u8(c.Associativity)
	return p.buf
}

func (c *CacheInfo) StringRefs() int { return maxRef(c.SocketDesignation) }

// SlotInfo is the type 9 record.
type SlotInfo struct {
	Designation      StrRef
	SlotType         uint8
	DataBusWidth     uint8
	CurrentUsage     uint8
	Length           uint8
	ID               uint16
	Characteristics1 uint8
	Characteristics2 uint8
	SegmentGroup     uint16
	Bus              uint8
	DevFunc          uint8
}

func (s *SlotInfo) Pack() []byte {
	p := newPacker(TypeSlotInfo, lenSlotInfo)
	p.str(s.Designation)
	p.u8(s.SlotType)
	p.u8(s.DataBusWidth)
	p.u8(s.CurrentUsage)
	p.u8(s.Length)
	p.u16(s.ID)
	p.u8(s.Characteristics1)
	p.u8(s.Characteristics2)
	p.u16(s.SegmentGroup)
	p.u8(s.Bus)
	p.u8(s.DevFunc)
	return p.buf
}

func (s *SlotInfo) StringRefs() int { return maxRef(s.Designation) }

// OEMStrings is the type 11 record. Count is the number of free-form
// strings in the pack; the builder computes it from the pack itself.
type OEMStrings struct {
	Count uint8
}

func (o *OEMStrings) Pack() []byte {
	p := newPacker(TypeOEMStrings, lenOEMStrings)
	p.u8(o.Count)
	return p.buf
}

func (o *OEMStrings) StringRefs() int { return int(o.Count) }

// MemoryArray is the type 16 record. Its assigned handle is the producer
// side of the array-handle dependency consumed by MemoryDevice and
// MemoryArrayAddr.
type MemoryArray struct {
	Location        uint8
	Use             uint8
	ErrorCorrection uint8
	MaximumCapacity uint32 // KiB
	ErrorInfoHandle Handle
	DeviceCount     uint16
	ExtendedMaximum uint64
}

func (m *MemoryArray) Pack() []byte {
	p := newPacker(TypeMemoryArray, lenMemoryArray)
	p.u8(m.Location)
	p.u8(m.Use)
	p.u8(m.ErrorCorrection)
	p.u32(m.MaximumCapacity)
	p.handle(m.ErrorInfoHandle)
	p.u16(m.DeviceCount)
	p.u64(m.ExtendedMaximum)
	return p.buf
}

func (m *MemoryArray) StringRefs() int { return 0 }

// MemoryDevice is the type 17 record. ArrayHandle must be patched with
// the MemoryArray handle before registration.
type MemoryDevice struct {
	ArrayHandle     Handle
	ErrorInfoHandle Handle
	TotalWidth      uint16
	DataWidth       uint16
	Size            uint16 // MiB while bit 15 is clear
	FormFactor      uint8
	DeviceSet       uint8
	DeviceLocator   StrRef
	BankLocator     StrRef
	MemoryType      uint8
	TypeDetail      uint16
	Speed           uint16
	Manufacturer    StrRef
	SerialNumber    StrRef
	AssetTag        StrRef
	PartNumber      StrRef
	Attributes      uint8
	ExtendedSize    uint32
	ConfiguredSpeed uint16
	MinimumVoltage  uint16
	MaximumVoltage  uint16
	ConfiguredVolt  uint16
	Technology      uint8
	OperatingMode   uint16
	FirmwareVersion StrRef
	ModuleMfgID     uint16
	ModuleProductID uint16
	SubsysMfgID     uint16
	SubsysProductID uint16
	NonVolatileSize uint64
	VolatileSize    uint64
	CacheSize       uint64
	LogicalSize     uint64
	ExtendedSpeed   uint32
	ExtConfigSpeed  uint32
}

func (m *MemoryDevice) Pack() []byte {
	p := newPacker(TypeMemoryDevice, lenMemoryDevice)
	p.handle(m.ArrayHandle)
	p.handle(m.ErrorInfoHandle)
	p.u16(m.TotalWidth)
	p.u16(m.DataWidth)
	p.u16(m.Size)
	p.u8(m.FormFactor)
	p.u8(m.DeviceSet)
	p.str(m.DeviceLocator)
	p.str(m.BankLocator)
	p.u8(m.MemoryType)
	p.u16(m.TypeDetail)
	p.u16(m.Speed)
	p.str(m.Manufacturer)
	p.str(m.SerialNumber)
	p.str(m.AssetTag)
	p.str(m.PartNumber)
	p.u8(m.Attributes)
	p.u32(m.ExtendedSize)
	p.u16(m.ConfiguredSpeed)
	p.u16(m.MinimumVoltage)
	p.u16(m.MaximumVoltage)
	p.u16(m.ConfiguredVolt)
	p.u8(m.Technology)
	p.u16(m.OperatingMode)
	p.str(m.FirmwareVersion)
	p.u16(m.ModuleMfgID)
	p.u16(m.ModuleProductID)
	p.u16(m.SubsysMfgID)
	p.u16(m.SubsysProductID)
	p.u64(m.NonVolatileSize)
	p.u64(m.VolatileSize)
	p.u64(m.CacheSize)
	p.u64(m.LogicalSize)
	p.u32(m.ExtendedSpeed)
	p.u32(m.ExtConfigSpeed)
	return p.buf
}

func (m *MemoryDevice) StringRefs() int {
	return maxRef(m.DeviceLocator, m.BankLocator, m.Manufacturer, m.SerialNumber, m.AssetTag, m.PartNumber, m.FirmwareVersion)
}

// MemoryArrayAddr is the type 19 record mapping the physical address range
// of one array. Addresses are in KiB. ArrayHandle must be patched with the
// MemoryArray handle before registration.
type MemoryArrayAddr struct {
	StartingAddress uint32
	EndingAddress   uint32
	ArrayHandle     Handle
	PartitionWidth  uint8
	ExtendedStart   uint64
	ExtendedEnd     uint64
}

func (m *MemoryArrayAddr) Pack() []byte {
	p := newPacker(TypeMemoryArrayAddr, lenMemoryArrayAddr)
	p.u32(m.StartingAddress)
	p.u32(m.EndingAddress)
	p.handle(m.ArrayHandle)
	p.u8(m.PartitionWidth)
	p.u64(m.ExtendedStart)
	p.u64(m.ExtendedEnd)
	return p.buf
}

func (m *MemoryArrayAddr) StringRefs() int { return 0 }

// BootInfo is the type 32 record.
type BootInfo struct {
	Status uint8
}

func (b *BootInfo) Pack() []byte {
	p := newPacker(TypeBootInfo, lenBootInfo)
	p.bytes(make([]byte, 6)) // reserved
	p.u8(b.Status)
	return p.buf
}

func (b *BootInfo) StringRefs() int { return 0 }

// File model contains the structs which match the direct structures of the FAT16 filesystem.

package fat16

// BPB is the packed boot parameter block at the start of the boot sector.
type BPB struct {
	BSJumpBoot          [3]byte
	BSOEMName           [8]byte
	BytesPerSector      uint16
	SectorsPerCluster   byte
	ReservedSectorCount uint16
	NumFATs             byte
	RootEntryCount      uint16
	TotalSectors16      uint16
	Media               byte
	FATSize16           uint16
	SectorsPerTrack     uint16
	NumberOfHeads       uint16
	HiddenSectors       uint32
	TotalSectors32      uint32
	FATSpecificData     [54]byte
}

// FAT16SpecificData is the extended boot record following the BPB on FAT12/16 volumes.
type FAT16SpecificData struct {
	BSDriveNumber    byte
	BSReserved1      byte
	BSBootSignature  byte
	BSVolumeID       uint32
	BSVolumeLabel    [11]byte
	BSFileSystemType [8]byte
}

// Attr is the attribute byte of a directory entry.
type Attr uint8

const (
	AttrReadOnly  Attr = 0x01
	AttrHidden    Attr = 0x02
	AttrSystem    Attr = 0x04
	AttrVolumeID  Attr = 0x08
	AttrDirectory Attr = 0x10
	AttrArchive   Attr = 0x20
	AttrLongName       = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeID

	// attrLongNameMask covers the six defined attribute bits. A record is a
	// long name record if the masked value equals AttrLongName.
	attrLongNameMask = AttrLongName | AttrDirectory | AttrArchive
)

// DirectoryEntry is a single 32-byte short name record of a directory.
type DirectoryEntry struct {
	Name            [8]byte
	Ext             [3]byte
	Attributes      Attr
	Reserved        [10]byte
	ModifyTime      uint16
	ModifyDate      uint16
	StartingCluster uint16
	Size            uint32
}

package fat16

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/aligator/fat16/checkpoint"
)

const (
	// BootSectorSize is the number of bytes read for the boot sector.
	BootSectorSize = 512
	// SectorSize is the only supported number of bytes per sector.
	SectorSize = 512
	// FATCount is the only supported number of FAT copies.
	FATCount = 2
	// DirectoryEntrySize is the size in bytes of a single directory record.
	DirectoryEntrySize = 32
)

// ParseBootSector reads the boot sector from the start of source and
// validates the geometry all address calculations rely on.
// Any mismatch is an ErrInvalidVolume.
func ParseBootSector(source io.ReadSeeker) (*BPB, error) {
	sector := make([]byte, BootSectorSize)
	if _, err := ReadBytes(source, 0, sector); err != nil {
		return nil, err
	}

	bpb := &BPB{}
	err := binary.Read(bytes.NewReader(sector), binary.LittleEndian, bpb)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrInvalidVolume)
	}

	if err := bpb.validate(); err != nil {
		return nil, err
	}

	return bpb, nil
}

func (b *BPB) validate() error {
	if b.BytesPerSector != SectorSize {
		return checkpoint.From(fmt.Errorf("%w: %d bytes per sector, want %d", ErrInvalidVolume, b.BytesPerSector, SectorSize))
	}

	if b.NumFATs != FATCount {
		return checkpoint.From(fmt.Errorf("%w: %d FATs, want %d", ErrInvalidVolume, b.NumFATs, FATCount))
	}

	// The chain length bound divides by it, and FAT only knows powers of two.
	if b.SectorsPerCluster == 0 || b.SectorsPerCluster&(b.SectorsPerCluster-1) != 0 {
		return checkpoint.From(fmt.Errorf("%w: %d sectors per cluster", ErrInvalidVolume, b.SectorsPerCluster))
	}

	return nil
}

// FATOffset is the byte offset of the first FAT.
func (b *BPB) FATOffset() int64 {
	return int64(b.ReservedSectorCount) * int64(b.BytesPerSector)
}

// RootOffset is the byte offset of the fixed root directory region.
func (b *BPB) RootOffset() int64 {
	return b.FATOffset() + int64(b.NumFATs)*int64(b.FATSize16)*int64(b.BytesPerSector)
}

// RootSize is the size in bytes of the root directory region.
func (b *BPB) RootSize() int64 {
	return int64(b.RootEntryCount) * DirectoryEntrySize
}

// DataOffset is the byte offset of the data region, which starts with cluster 2.
func (b *BPB) DataOffset() int64 {
	return b.RootOffset() + b.RootSize()
}

// RootDirSectors is the number of whole sectors occupied by the root directory.
func (b *BPB) RootDirSectors() uint32 {
	return (uint32(b.RootEntryCount)*DirectoryEntrySize + uint32(b.BytesPerSector) - 1) / uint32(b.BytesPerSector)
}

// FirstDataSector derives the start of the data region in sectors.
// It equals DataOffset / BytesPerSector whenever the root directory fills
// whole sectors.
func (b *BPB) FirstDataSector() uint32 {
	return uint32(b.ReservedSectorCount) + uint32(b.NumFATs)*uint32(b.FATSize16) + b.RootDirSectors()
}

// ClusterSize is the size of a cluster in bytes.
func (b *BPB) ClusterSize() int64 {
	return int64(b.BytesPerSector) * int64(b.SectorsPerCluster)
}

// ClusterOffset is the byte offset of a data cluster.
// Clusters 0 and 1 are reserved and have no offset; callers must not pass them.
func (b *BPB) ClusterOffset(cluster uint16) int64 {
	return b.DataOffset() + (int64(cluster)-2)*b.ClusterSize()
}

// TotalSectors returns the 16 bit sector count, or the 32 bit one if the
// former is 0.
func (b *BPB) TotalSectors() uint32 {
	if b.TotalSectors16 != 0 {
		return uint32(b.TotalSectors16)
	}
	return b.TotalSectors32
}

// DataSectorCount is the number of sectors behind the start of the data region.
func (b *BPB) DataSectorCount() uint32 {
	dataStart := uint32(b.DataOffset() / int64(b.BytesPerSector))
	total := b.TotalSectors()
	if total <= dataStart {
		return 0
	}
	return total - dataStart
}

// FATEntryCount is the number of cluster entries a single FAT can hold,
// the two reserved entries included.
func (b *BPB) FATEntryCount() uint32 {
	return uint32(b.FATSize16) * uint32(b.BytesPerSector) / 2
}

// ClusterCount is the number of data clusters the FAT can address. It is
// also the upper bound for the length of any cluster chain.
//
// Clusters of the data region without a FAT entry are not counted, and
// volumes which do not record their size fall back to the number of entries
// the FAT can hold.
func (b *BPB) ClusterCount() uint32 {
	var addressable uint32
	if entries := b.FATEntryCount(); entries > 2 {
		addressable = entries - 2
	}

	count := b.DataSectorCount() / uint32(b.SectorsPerCluster)
	if count == 0 || count > addressable {
		return addressable
	}
	return count
}

// LastCluster is the highest valid cluster number. Its FAT entry is always
// inside the first FAT.
func (b *BPB) LastCluster() uint32 {
	return b.ClusterCount() + 1
}

// Extended decodes the extended boot record stored behind the BPB.
func (b *BPB) Extended() FAT16SpecificData {
	var ext FAT16SpecificData
	// The source is a fixed size array which is larger than the struct.
	_ = binary.Read(bytes.NewReader(b.FATSpecificData[:]), binary.LittleEndian, &ext)
	return ext
}

// OEMName returns the OEM name without padding.
func (b *BPB) OEMName() string {
	return strings.TrimRight(string(b.BSOEMName[:]), " \x00")
}

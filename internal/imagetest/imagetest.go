// Package imagetest builds small FAT16 images in memory.
//
// The images are laid out exactly as described by their Geometry, even if
// that geometry is not a valid FAT16 volume, so they can be used to test the
// rejection of broken boot sectors as well.
package imagetest

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/spf13/afero"
)

const (
	recordSize = 32

	// EndOfChain is written as FAT entry of the last cluster of a chain.
	EndOfChain uint16 = 0xFFFF

	AttrReadOnly  uint8 = 0x01
	AttrVolumeID  uint8 = 0x08
	AttrLongName  uint8 = 0x0F
	AttrDirectory uint8 = 0x10
	AttrArchive   uint8 = 0x20
)

// Geometry is the boot parameter block of an image.
type Geometry struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	RootEntries       uint16
	FATSectors        uint16
	TotalSectors      uint16
	// VolumeLabel is stored in the extended boot record.
	VolumeLabel string
}

// DefaultGeometry has one sector per cluster, a single sector FAT, 16 root
// entries and 32 data clusters:
//
//	FAT at 512, second FAT at 1024, root at 1536, cluster 2 at 2048
func DefaultGeometry() Geometry {
	return Geometry{
		BytesPerSector:    512,
		SectorsPerCluster: 1,
		ReservedSectors:   1,
		NumFATs:           2,
		RootEntries:       16,
		FATSectors:        1,
		TotalSectors:      36,
		VolumeLabel:       "NO NAME",
	}
}

// Image is a FAT16 image under construction.
type Image struct {
	Geometry Geometry
	data     []byte
}

// New returns an empty image with the DefaultGeometry.
func New() *Image {
	return NewWithGeometry(DefaultGeometry())
}

// NewWithGeometry returns an empty image with the boot sector for g and the
// reserved FAT entries written.
func NewWithGeometry(g Geometry) *Image {
	size := int(g.TotalSectors) * int(g.BytesPerSector)
	if size < 512 {
		size = 512
	}

	img := &Image{
		Geometry: g,
		data:     make([]byte, size),
	}
	img.writeBootSector()
	img.SetFAT(0, 0xFF00|0xF8)
	img.SetFAT(1, EndOfChain)
	return img
}

func (img *Image) writeBootSector() {
	g := img.Geometry
	var (
		jumpCode       = [3]byte{0xEB, 0x3C, 0x90}
		OEM            = [8]byte{'i', 'm', 'a', 'g', 'e', 't', 's', 't'}
		volumeLabel    = padded(g.VolumeLabel, 11)
		fileSystemType = [8]byte{'F', 'A', 'T', '1', '6', ' ', ' ', ' '}
	)

	var buf bytes.Buffer
	for _, v := range []interface{}{
		jumpCode,
		OEM,
		g.BytesPerSector,
		g.SectorsPerCluster,
		g.ReservedSectors,
		g.NumFATs,
		g.RootEntries,
		g.TotalSectors,
		uint8(0xF8), // media descriptor: fixed disk
		g.FATSectors,
		uint16(32), // sectors per track
		uint16(4),  // heads
		uint32(0),  // hidden sectors
		uint32(0),  // 32 bit total sectors, unused
		uint8(0x80),
		uint8(0),
		uint8(0x29), // extended boot signature
		uint32(0x1234ABCD),
		volumeLabel,
		fileSystemType,
	} {
		// Writing fixed size values into a bytes.Buffer can not fail.
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}

	copy(img.data, buf.Bytes())
	img.data[510] = 0x55
	img.data[511] = 0xAA
}

func padded(s string, n int) []byte {
	out := bytes.Repeat([]byte{' '}, n)
	copy(out, s)
	return out
}

func (img *Image) sectorSize() int {
	return int(img.Geometry.BytesPerSector)
}

// FATOffset is the byte offset of the first FAT.
func (img *Image) FATOffset() int {
	return int(img.Geometry.ReservedSectors) * img.sectorSize()
}

// RootOffset is the byte offset of the root directory.
func (img *Image) RootOffset() int {
	return img.FATOffset() + int(img.Geometry.NumFATs)*int(img.Geometry.FATSectors)*img.sectorSize()
}

// ClusterSize is the size of a data cluster in bytes.
func (img *Image) ClusterSize() int {
	return int(img.Geometry.SectorsPerCluster) * img.sectorSize()
}

// ClusterOffset is the byte offset of a data cluster.
func (img *Image) ClusterOffset(cluster uint16) int {
	return img.RootOffset() + int(img.Geometry.RootEntries)*recordSize + (int(cluster)-2)*img.ClusterSize()
}

// SetFAT writes value as FAT entry of cluster into every FAT copy.
func (img *Image) SetFAT(cluster, value uint16) {
	fatSize := int(img.Geometry.FATSectors) * img.sectorSize()
	for i := 0; i < int(img.Geometry.NumFATs); i++ {
		offset := img.FATOffset() + i*fatSize + int(cluster)*2
		binary.LittleEndian.PutUint16(img.data[offset:], value)
	}
}

// Chain links the clusters in the given order and ends the chain after the
// last one.
func (img *Image) Chain(clusters ...uint16) {
	for i, cluster := range clusters {
		next := EndOfChain
		if i+1 < len(clusters) {
			next = clusters[i+1]
		}
		img.SetFAT(cluster, next)
	}
}

// Entry is a short name directory record.
type Entry struct {
	Name    string
	Ext     string
	Attr    uint8
	Time    uint16
	Date    uint16
	Cluster uint16
	Size    uint32
}

// Record encodes the entry. Name and extension are space padded.
func (e Entry) Record() []byte {
	var buf bytes.Buffer
	for _, v := range []interface{}{
		padded(e.Name, 8)[:8],
		padded(e.Ext, 3)[:3],
		e.Attr,
		[10]byte{},
		e.Time,
		e.Date,
		e.Cluster,
		e.Size,
	} {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// RootRecord writes a raw record into slot index of the root directory.
func (img *Image) RootRecord(index int, record []byte) {
	copy(img.data[img.RootOffset()+index*recordSize:], record[:recordSize])
}

// RootEntry writes e into slot index of the root directory.
func (img *Image) RootEntry(index int, e Entry) {
	img.RootRecord(index, e.Record())
}

// ClusterRecord writes a raw record into slot index of a directory cluster.
func (img *Image) ClusterRecord(cluster uint16, index int, record []byte) {
	copy(img.data[img.ClusterOffset(cluster)+index*recordSize:], record[:recordSize])
}

// ClusterEntry writes e into slot index of a directory cluster.
func (img *Image) ClusterEntry(cluster uint16, index int, e Entry) {
	img.ClusterRecord(cluster, index, e.Record())
}

// WriteCluster copies data to the start of cluster. Data longer than a
// cluster continues in the physically following clusters.
func (img *Image) WriteCluster(cluster uint16, data []byte) {
	copy(img.data[img.ClusterOffset(cluster):], data)
}

// WriteFile stores data along the chain of clusters and links them.
func (img *Image) WriteFile(data []byte, clusters ...uint16) {
	img.Chain(clusters...)
	for _, cluster := range clusters {
		n := img.ClusterSize()
		if n > len(data) {
			n = len(data)
		}
		img.WriteCluster(cluster, data[:n])
		data = data[n:]
	}
}

// Bytes returns the image. It is not copied.
func (img *Image) Bytes() []byte {
	return img.data
}

// Reader returns a new reader over the image.
func (img *Image) Reader() *bytes.Reader {
	return bytes.NewReader(img.data)
}

// WriteTo stores the image as name on fs.
func (img *Image) WriteTo(fs afero.Fs, name string) error {
	if err := afero.WriteFile(fs, name, img.data, 0644); err != nil {
		return fmt.Errorf("could not write image %s: %w", name, err)
	}
	return nil
}

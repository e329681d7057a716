package imagetest

import (
	"fmt"
	"strings"
)

// Stamps used for all entries of the sample image: 2021-03-14 12:30:20.
const (
	SampleDate uint16 = (2021-1980)<<9 | 3<<5 | 14
	SampleTime uint16 = 12<<11 | 30<<5 | 10
)

var (
	// SampleReadme is the content of /README.TXT.
	SampleReadme = []byte("Hello, FAT16!\n")
	// SampleNotes is the content of /DOCS/NOTES.MD, stored in clusters 5 and 9.
	SampleNotes = []byte(strings.Repeat("0123456789abcdef", 38) + "0123")
	// SampleLeaf is the content of /DOCS/A/B/LEAF.TXT.
	SampleLeaf = []byte("leaf")
)

// SampleBigFiles is the number of empty files in /BIG, which spans two clusters.
const SampleBigFiles = 16

// Sample returns an image with this tree:
//
//	/README.TXT          cluster 2
//	/DOCS/               cluster 3
//	/DOCS/A/             cluster 4
//	/DOCS/A/B/           cluster 6
//	/DOCS/A/B/LEAF.TXT   cluster 7
//	/DOCS/NOTES.MD       clusters 5, 9
//	/BIG/                clusters 10, 11
//	/BIG/FILE00.DAT ... /BIG/FILE15.DAT
//	/EMPTY.TXT
//
// The root also holds a deleted record, a long name record and the volume
// label "SAMPLEVOL". The boot sector label is "BOOTLABEL".
func Sample() *Image {
	g := DefaultGeometry()
	g.VolumeLabel = "BOOTLABEL"
	img := NewWithGeometry(g)

	stamp := func(e Entry) Entry {
		e.Date = SampleDate
		e.Time = SampleTime
		return e
	}
	dir := func(name string, cluster uint16) Entry {
		return stamp(Entry{Name: name, Attr: AttrDirectory, Cluster: cluster})
	}

	img.RootEntry(0, stamp(Entry{Name: "README", Ext: "TXT", Attr: AttrArchive, Cluster: 2, Size: uint32(len(SampleReadme))}))
	img.RootEntry(1, dir("DOCS", 3))

	deleted := stamp(Entry{Name: "OLD", Ext: "TXT", Attr: AttrArchive, Cluster: 12, Size: 3}).Record()
	deleted[0] = 0xE5
	img.RootRecord(2, deleted)

	longName := Entry{Name: "Aread", Ext: "me", Attr: AttrLongName}.Record()
	longName[0] = 0x41
	img.RootRecord(3, longName)

	img.RootEntry(4, Entry{Name: "SAMPLEVO", Ext: "L", Attr: AttrVolumeID})
	img.RootEntry(5, dir("BIG", 10))
	img.RootEntry(6, stamp(Entry{Name: "EMPTY", Ext: "TXT", Attr: AttrArchive}))

	img.WriteFile(SampleReadme, 2)

	img.Chain(3)
	img.ClusterEntry(3, 0, dir(".", 3))
	img.ClusterEntry(3, 1, dir("..", 0))
	img.ClusterEntry(3, 2, dir("A", 4))
	img.ClusterEntry(3, 3, stamp(Entry{Name: "NOTES", Ext: "MD", Attr: AttrArchive, Cluster: 5, Size: uint32(len(SampleNotes))}))
	img.WriteFile(SampleNotes, 5, 9)

	img.Chain(4)
	img.ClusterEntry(4, 0, dir(".", 4))
	img.ClusterEntry(4, 1, dir("..", 3))
	img.ClusterEntry(4, 2, dir("B", 6))

	img.Chain(6)
	img.ClusterEntry(6, 0, dir(".", 6))
	img.ClusterEntry(6, 1, dir("..", 4))
	img.ClusterEntry(6, 2, stamp(Entry{Name: "LEAF", Ext: "TXT", Attr: AttrArchive | AttrReadOnly, Cluster: 7, Size: uint32(len(SampleLeaf))}))
	img.WriteFile(SampleLeaf, 7)

	img.Chain(10, 11)
	img.ClusterEntry(10, 0, dir(".", 10))
	img.ClusterEntry(10, 1, dir("..", 0))
	perCluster := img.ClusterSize() / recordSize
	for i := 0; i < SampleBigFiles; i++ {
		slot := i + 2
		cluster := uint16(10 + slot/perCluster)
		img.ClusterEntry(cluster, slot%perCluster, stamp(Entry{Name: fmt.Sprintf("FILE%02d", i), Ext: "DAT", Attr: AttrArchive}))
	}

	return img
}

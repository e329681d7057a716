package fat16

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aligator/fat16/internal/imagetest"
	"github.com/google/go-cmp/cmp"
)

func TestVolume_ListDirectory(t *testing.T) {
	v := testingSample(t)
	root := NewRootNode()

	rootEntries, err := v.ListDirectory(root)
	if err != nil {
		t.Fatalf("ListDirectory(root) error = %v", err)
	}

	want := []string{"README.TXT", "DOCS", "BIG", "EMPTY.TXT"}
	if diff := cmp.Diff(want, names(rootEntries)); diff != "" {
		t.Errorf("ListDirectory(root) mismatch (-want +got):\n%s", diff)
	}

	if _, listed := root.Children(); listed {
		t.Errorf("ListDirectory() modified the node")
	}

	docs, err := v.ListDirectory(rootEntries[1])
	if err != nil {
		t.Fatalf("ListDirectory(DOCS) error = %v", err)
	}
	if diff := cmp.Diff([]string{".", "..", "A", "NOTES.MD "}, names(docs)); diff != "" {
		t.Errorf("ListDirectory(DOCS) mismatch (-want +got):\n%s", diff)
	}
}

func TestVolume_ListDirectory_MultiCluster(t *testing.T) {
	v := testingSample(t)

	big := newEntryNode(&DirectoryEntry{
		Name:            [8]byte{'B', 'I', 'G', ' ', ' ', ' ', ' ', ' '},
		Attributes:      AttrDirectory,
		StartingCluster: 10,
	})

	entries, err := v.ListDirectory(big)
	if err != nil {
		t.Fatalf("ListDirectory(BIG) error = %v", err)
	}
	// "." and ".." plus all files.
	if got, want := len(entries), imagetest.SampleBigFiles+2; got != want {
		t.Fatalf("ListDirectory(BIG) returned %d entries, want %d", got, want)
	}
	if got := entries[len(entries)-1].FormattedName(); got != "FILE15.DAT" {
		t.Errorf("last entry = %q, want FILE15.DAT", got)
	}
}

func TestVolume_ListDirectory_DotDotIsRoot(t *testing.T) {
	v := testingSample(t)

	dotdot := newEntryNode(&DirectoryEntry{
		Name:       [8]byte{'.', '.', ' ', ' ', ' ', ' ', ' ', ' '},
		Attributes: AttrDirectory,
	})

	if got, want := v.ResolveRegion(dotdot), v.BPB().RootOffset(); got != want {
		t.Errorf("ResolveRegion(..) = %d, want root at %d", got, want)
	}

	entries, err := v.ListDirectory(dotdot)
	if err != nil {
		t.Fatalf("ListDirectory(..) error = %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("ListDirectory(..) = %v, want the root entries", names(entries))
	}
}

func TestVolume_ListDirectory_CorruptChain(t *testing.T) {
	img := imagetest.Sample()
	img.SetFAT(3, 0)
	// Without an end marker the listing continues into the next cluster.
	for i := 4; i < 16; i++ {
		img.ClusterEntry(3, i, imagetest.Entry{Name: fmt.Sprintf("FULL%02d", i), Attr: imagetest.AttrArchive})
	}
	v := testingOpen(t, img)

	docs := newEntryNode(&DirectoryEntry{Attributes: AttrDirectory, StartingCluster: 3})
	_, err := v.ListDirectory(docs)
	if !errors.Is(err, ErrCorruptChain) {
		t.Errorf("ListDirectory() error = %v, want %v", err, ErrCorruptChain)
	}
	if IsFatal(err) {
		t.Errorf("IsFatal(%v) = true", err)
	}
}

func TestVolume_ListDirectory_FullRoot(t *testing.T) {
	img := imagetest.New()
	for i := 0; i < 16; i++ {
		img.RootEntry(i, imagetest.Entry{Name: string(rune('A' + i)), Ext: "TXT"})
	}
	// Directly behind the root region, must not be listed.
	img.WriteCluster(2, imagetest.Entry{Name: "DATA", Ext: "BIN"}.Record())
	v := testingOpen(t, img)

	entries, err := v.ListDirectory(NewRootNode())
	if err != nil {
		t.Fatalf("ListDirectory() error = %v", err)
	}
	if len(entries) != 16 {
		t.Errorf("ListDirectory() = %v, want 16 entries", names(entries))
	}
}

func TestDecodeEntries(t *testing.T) {
	record := func(e imagetest.Entry, first byte) []byte {
		r := e.Record()
		if first != 0 {
			r[0] = first
		}
		return r
	}

	var region []byte
	region = append(region, record(imagetest.Entry{Name: "ONE", Ext: "TXT", Size: 7, Cluster: 4}, 0)...)
	region = append(region, record(imagetest.Entry{Name: "GONE", Ext: "TXT"}, 0xE5)...)
	region = append(region, record(imagetest.Entry{Name: "LONG", Attr: imagetest.AttrLongName}, 0)...)
	region = append(region, record(imagetest.Entry{Name: "LONGER", Attr: imagetest.AttrLongName | imagetest.AttrArchive}, 0)...)
	region = append(region, record(imagetest.Entry{Name: "SUB", Attr: imagetest.AttrDirectory}, 0)...)
	region = append(region, make([]byte, 32)...)
	region = append(region, record(imagetest.Entry{Name: "HIDDEN", Ext: "TXT"}, 0)...)

	entries, end, err := decodeEntries(region)
	if err != nil {
		t.Fatalf("decodeEntries() error = %v", err)
	}
	if !end {
		t.Errorf("decodeEntries() did not report the end marker")
	}

	var got []string
	for _, e := range entries {
		got = append(got, e.ShortName())
	}
	// 0x2F masked is not the long name value, so LONGER is a regular entry.
	if diff := cmp.Diff([]string{"ONE", "LONGER", "SUB"}, got); diff != "" {
		t.Errorf("decodeEntries() mismatch (-want +got):\n%s", diff)
	}

	if entries[0].Size != 7 || entries[0].StartingCluster != 4 {
		t.Errorf("decodeEntries() first entry = %+v", entries[0])
	}
	if !entries[2].IsDir() {
		t.Errorf("SUB is no directory")
	}
}

func TestDecodeEntries_Idempotent(t *testing.T) {
	region := append(imagetest.Entry{Name: "A"}.Record(), imagetest.Entry{Name: "B", Attr: imagetest.AttrDirectory}.Record()...)

	first, _, err := decodeEntries(region)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := decodeEntries(region)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("decodeEntries() not idempotent (-first +second):\n%s", diff)
	}
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"README  ", "README"},
		{"ABCDEFGH", "ABCDEFGH"},
		{"ABCDEFGHIJ", "ABCDEFGH"},
		{"A B", "A"},
		{" LEAD", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := truncateName([]byte(tt.in)); got != tt.want {
			t.Errorf("truncateName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchName(t *testing.T) {
	entry := &DirectoryEntry{Name: [8]byte{'R', 'E', 'A', 'D', 'M', 'E', ' ', ' '}}

	tests := []struct {
		query string
		want  bool
	}{
		{"README", true},
		{"README  ", true},
		{"README.TXT", false},
		{"readme", false},
		{"READ", false},
		{"README AGAIN", true},
	}
	for _, tt := range tests {
		if got := matchName(entry, tt.query); got != tt.want {
			t.Errorf("matchName(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestDirectoryEntry_ShortName(t *testing.T) {
	entry := &DirectoryEntry{Name: [8]byte{0x05, 'A', 'B', ' ', ' ', ' ', ' ', ' '}}
	if got := entry.ShortName(); got != "\xE5AB" {
		t.Errorf("ShortName() = %q, want %q", got, "\xE5AB")
	}
	if entry.Name[0] != 0x05 {
		t.Errorf("ShortName() modified the entry")
	}
}

func TestDirectoryEntry_Attributes(t *testing.T) {
	tests := []struct {
		name      string
		attr      Attr
		wantDir   bool
		wantLong  bool
		wantLabel bool
	}{
		{"file", AttrArchive, false, false, false},
		{"directory", AttrDirectory, true, false, false},
		{"long name", AttrLongName, false, true, false},
		{"volume label", AttrVolumeID | AttrArchive, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &DirectoryEntry{Attributes: tt.attr}
			if got := e.IsDir(); got != tt.wantDir {
				t.Errorf("IsDir() = %v", got)
			}
			if got := e.IsLongName(); got != tt.wantLong {
				t.Errorf("IsLongName() = %v", got)
			}
			if got := e.IsVolumeLabel(); got != tt.wantLabel {
				t.Errorf("IsVolumeLabel() = %v", got)
			}
		})
	}
}

func FuzzDecodeEntries(f *testing.F) {
	f.Add(imagetest.Sample().Bytes()[1536:2048])
	f.Add([]byte{0xE5})
	f.Fuzz(func(t *testing.T, region []byte) {
		entries, _, err := decodeEntries(region)
		if err != nil {
			return
		}
		for _, e := range entries {
			_ = newEntryNode(e).String()
		}
	})
}

package fat16

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aligator/fat16/internal/imagetest"
)

func TestParseBootSector(t *testing.T) {
	tests := []struct {
		name     string
		geometry func(g *imagetest.Geometry)
		wantErr  error
	}{
		{
			name:     "default geometry",
			geometry: func(g *imagetest.Geometry) {},
		},
		{
			name:     "1024 bytes per sector",
			geometry: func(g *imagetest.Geometry) { g.BytesPerSector = 1024 },
			wantErr:  ErrInvalidVolume,
		},
		{
			name:     "single FAT",
			geometry: func(g *imagetest.Geometry) { g.NumFATs = 1 },
			wantErr:  ErrInvalidVolume,
		},
		{
			name:     "no sectors per cluster",
			geometry: func(g *imagetest.Geometry) { g.SectorsPerCluster = 0 },
			wantErr:  ErrInvalidVolume,
		},
		{
			name:     "sectors per cluster no power of two",
			geometry: func(g *imagetest.Geometry) { g.SectorsPerCluster = 3 },
			wantErr:  ErrInvalidVolume,
		},
		{
			name:     "four sectors per cluster",
			geometry: func(g *imagetest.Geometry) { g.SectorsPerCluster = 4; g.TotalSectors = 132 },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := imagetest.DefaultGeometry()
			tt.geometry(&g)

			got, err := ParseBootSector(imagetest.NewWithGeometry(g).Reader())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseBootSector() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if !IsFatal(err) {
					t.Errorf("IsFatal(%v) = false", err)
				}
				return
			}

			if got.BytesPerSector != g.BytesPerSector || got.SectorsPerCluster != g.SectorsPerCluster || got.RootEntryCount != g.RootEntries {
				t.Errorf("ParseBootSector() = %+v, geometry %+v", got, g)
			}
		})
	}
}

func TestParseBootSector_NoFAT(t *testing.T) {
	_, err := ParseBootSector(strings.NewReader("This is no FAT file"))
	if !errors.Is(err, ErrInvalidVolume) {
		t.Errorf("ParseBootSector() error = %v, want %v", err, ErrInvalidVolume)
	}
}

func TestParseBootSector_Empty(t *testing.T) {
	_, err := ParseBootSector(bytes.NewReader(nil))
	if !errors.Is(err, ErrInvalidVolume) {
		t.Errorf("ParseBootSector() error = %v, want %v", err, ErrInvalidVolume)
	}
}

func TestBPB_Offsets(t *testing.T) {
	bpb := testingSample(t).BPB()

	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"FATOffset", bpb.FATOffset(), 512},
		{"RootOffset", bpb.RootOffset(), 1536},
		{"RootSize", bpb.RootSize(), 512},
		{"DataOffset", bpb.DataOffset(), 2048},
		{"ClusterSize", bpb.ClusterSize(), 512},
		{"ClusterOffset(2)", bpb.ClusterOffset(2), 2048},
		{"ClusterOffset(5)", bpb.ClusterOffset(5), 2048 + 3*512},
		{"RootDirSectors", int64(bpb.RootDirSectors()), 1},
		{"FirstDataSector", int64(bpb.FirstDataSector()), 4},
		{"TotalSectors", int64(bpb.TotalSectors()), 36},
		{"DataSectorCount", int64(bpb.DataSectorCount()), 32},
		{"ClusterCount", int64(bpb.ClusterCount()), 32},
		{"LastCluster", int64(bpb.LastCluster()), 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestBPB_FirstDataSectorMatchesDataOffset(t *testing.T) {
	for _, entries := range []uint16{16, 32, 512} {
		bpb := &BPB{
			BytesPerSector:      512,
			SectorsPerCluster:   4,
			ReservedSectorCount: 4,
			NumFATs:             2,
			RootEntryCount:      entries,
			FATSize16:           20,
		}
		if got, want := int64(bpb.FirstDataSector())*512, bpb.DataOffset(); got != want {
			t.Errorf("%d root entries: FirstDataSector()*512 = %d, DataOffset() = %d", entries, got, want)
		}
	}
}

func TestBPB_ClusterCountFallback(t *testing.T) {
	bpb := &BPB{
		BytesPerSector:    512,
		SectorsPerCluster: 1,
		NumFATs:           2,
		FATSize16:         1,
	}
	if got, want := bpb.ClusterCount(), uint32(254); got != want {
		t.Errorf("ClusterCount() = %d, want %d", got, want)
	}
}

func TestBPB_ClusterCountLimitedByFAT(t *testing.T) {
	tests := []struct {
		name         string
		totalSectors uint16
		wantCount    uint32
		wantLast     uint32
	}{
		{"data region fits the FAT", 36, 32, 33},
		{"data region larger than the FAT", 1000, 254, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := imagetest.DefaultGeometry()
			g.TotalSectors = tt.totalSectors
			bpb := testingOpen(t, imagetest.NewWithGeometry(g)).BPB()

			if got := bpb.ClusterCount(); got != tt.wantCount {
				t.Errorf("ClusterCount() = %d, want %d", got, tt.wantCount)
			}
			if got := bpb.LastCluster(); got != tt.wantLast {
				t.Errorf("LastCluster() = %d, want %d", got, tt.wantLast)
			}
			if end := bpb.FATOffset() + int64(bpb.LastCluster()+1)*2; end > bpb.FATOffset()+int64(bpb.FATSize16)*512 {
				t.Errorf("entry of LastCluster() ends at %d, behind the first FAT", end)
			}
		})
	}
}

func TestBPB_Extended(t *testing.T) {
	bpb := testingSample(t).BPB()
	ext := bpb.Extended()

	if ext.BSBootSignature != 0x29 {
		t.Errorf("BSBootSignature = %#x, want 0x29", ext.BSBootSignature)
	}
	if got := string(ext.BSVolumeLabel[:]); got != "BOOTLABEL  " {
		t.Errorf("BSVolumeLabel = %q", got)
	}
	if got := string(ext.BSFileSystemType[:]); got != "FAT16   " {
		t.Errorf("BSFileSystemType = %q", got)
	}
	if got := bpb.OEMName(); got != "imagetst" {
		t.Errorf("OEMName() = %q", got)
	}
}

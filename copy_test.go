package fat16

import (
	"errors"
	"testing"

	"github.com/aligator/fat16/internal/imagetest"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestVolume_CopyOut(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []byte
	}{
		{"single cluster", "/README", imagetest.SampleReadme},
		{"fragmented chain", "/DOCS/NOTES", imagetest.SampleNotes},
		{"empty file", "/EMPTY", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testingMount(t)
			node, err := c.Lookup(tt.path)
			if err != nil {
				t.Fatalf("Cursor.Lookup() error = %v", err)
			}

			dst := afero.NewMemMapFs()
			n, err := c.Volume().CopyOut(node, dst, "/out/copy.bin")
			if err != nil {
				t.Fatalf("Volume.CopyOut() error = %v", err)
			}
			if n != int64(len(tt.want)) {
				t.Errorf("Volume.CopyOut() = %d, want %d", n, len(tt.want))
			}

			got, err := afero.ReadFile(dst, "/out/copy.bin")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(string(tt.want), string(got)); diff != "" {
				t.Errorf("copied content mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVolume_CopyOut_Directory(t *testing.T) {
	c := testingMount(t)
	node, err := c.Lookup("DOCS")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Volume().CopyOut(node, afero.NewMemMapFs(), "x"); !errors.Is(err, ErrReadFile) {
		t.Errorf("Volume.CopyOut() error = %v, want %v", err, ErrReadFile)
	}
}

func TestVolume_CopyOut_CorruptChain(t *testing.T) {
	img := imagetest.Sample()
	img.SetFAT(5, 0xFFF7)
	c, err := Mount(img.Reader())
	if err != nil {
		t.Fatal(err)
	}

	node, err := c.Lookup("DOCS/NOTES")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Volume().CopyOut(node, afero.NewMemMapFs(), "x"); !errors.Is(err, ErrCorruptChain) {
		t.Errorf("Volume.CopyOut() error = %v, want %v", err, ErrCorruptChain)
	}
}

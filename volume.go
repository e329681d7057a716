package fat16

import (
	"io"
	"strings"
	"sync"

	log "github.com/dsoprea/go-logging"
)

var volumeLogger = log.NewLogger("fat16.volume")

// Volume is a mounted FAT16 image. It owns nothing but the parsed boot sector:
// the byte source is opened and closed by the caller.
//
// All reads seek before reading and are serialized, so any number of cursors
// and file views may share one Volume.
type Volume struct {
	lock   sync.Mutex
	source io.ReadSeeker
	bpb    *BPB
}

// Open parses the boot sector of source.
// An error matching ErrInvalidVolume means source is no usable FAT16 volume.
func Open(source io.ReadSeeker) (*Volume, error) {
	bpb, err := ParseBootSector(source)
	if err != nil {
		return nil, err
	}

	volumeLogger.Debugf(nil, "mounted volume: %d sectors per cluster, %d root entries, FAT at %d, root at %d, data at %d",
		bpb.SectorsPerCluster, bpb.RootEntryCount, bpb.FATOffset(), bpb.RootOffset(), bpb.DataOffset())

	return &Volume{
		source: source,
		bpb:    bpb,
	}, nil
}

// BPB returns the parsed boot parameter block. It must not be modified.
func (v *Volume) BPB() *BPB {
	return v.bpb
}

// readAt fills buf from the absolute offset.
func (v *Volume) readAt(offset int64, buf []byte) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	_, err := ReadBytes(v.source, offset, buf)
	return err
}

// Label returns the volume label. The label record of the root directory
// takes precedence over the copy in the extended boot record.
func (v *Volume) Label() (string, error) {
	entries, err := v.rootEntries()
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.IsVolumeLabel() {
			return strings.TrimRight(string(entry.Name[:])+string(entry.Ext[:]), " "), nil
		}
	}

	ext := v.bpb.Extended()
	if ext.BSBootSignature != 0x29 {
		return "", nil
	}
	return strings.TrimRight(string(ext.BSVolumeLabel[:]), " \x00"), nil
}

package fat16

import (
	"encoding/binary"

	"github.com/aligator/fat16/checkpoint"
	"github.com/go-restruct/restruct"
)

const (
	// entryEnd as first name byte marks the end of a directory.
	entryEnd = 0x00
	// entryDeleted as first name byte marks a deleted entry.
	entryDeleted = 0xE5
	// entryKanji as first name byte stands for a real 0xE5.
	entryKanji = 0x05

	nameLength = 8
)

func (e *DirectoryEntry) IsDir() bool {
	return e.Attributes&AttrDirectory == AttrDirectory
}

func (e *DirectoryEntry) IsLongName() bool {
	return e.Attributes&attrLongNameMask == AttrLongName
}

func (e *DirectoryEntry) IsVolumeLabel() bool {
	return !e.IsLongName() && e.Attributes&AttrVolumeID == AttrVolumeID
}

// ShortName returns the base name, cut at the first space.
func (e *DirectoryEntry) ShortName() string {
	name := e.Name
	if name[0] == entryKanji {
		name[0] = entryDeleted
	}
	return truncateName(name[:])
}

// Extension returns the three extension bytes as stored, padding included.
func (e *DirectoryEntry) Extension() string {
	return string(e.Ext[:])
}

// truncateName cuts a name field at the first space within its first 8 bytes.
func truncateName(name []byte) string {
	if len(name) > nameLength {
		name = name[:nameLength]
	}
	for i, c := range name {
		if c == ' ' {
			return string(name[:i])
		}
	}
	return string(name)
}

// matchName compares the base name of entry with query. Both sides are cut
// the same way and compared byte by byte, so the case must match as stored.
func matchName(entry *DirectoryEntry, query string) bool {
	return entry.ShortName() == truncateName([]byte(query))
}

// decodeEntries decodes the records of a directory region. It skips deleted
// and long name records and stops at the end marker, reporting whether it was
// reached.
func decodeEntries(region []byte) ([]*DirectoryEntry, bool, error) {
	var entries []*DirectoryEntry

	for offset := 0; offset+DirectoryEntrySize <= len(region); offset += DirectoryEntrySize {
		record := region[offset : offset+DirectoryEntrySize]

		switch record[0] {
		case entryEnd:
			return entries, true, nil
		case entryDeleted:
			continue
		}

		if Attr(record[11])&attrLongNameMask == AttrLongName {
			continue
		}

		entry := &DirectoryEntry{}
		if err := restruct.Unpack(record, binary.LittleEndian, entry); err != nil {
			return nil, false, checkpoint.Wrap(err, ErrDecodeEntry)
		}
		entries = append(entries, entry)
	}

	return entries, false, nil
}

// ResolveRegion returns the byte offset at which the records of node start.
// For a subdirectory this is its first cluster, ListDirectory follows the rest
// of the chain.
func (v *Volume) ResolveRegion(node *EntryNode) int64 {
	if isRootRegion(node) {
		return v.bpb.RootOffset()
	}
	return v.bpb.ClusterOffset(node.Entry.StartingCluster)
}

// A starting cluster of 0 is how ".." entries point at the root directory.
func isRootRegion(node *EntryNode) bool {
	return node.IsRoot() || node.Entry.StartingCluster == 0
}

// ListDirectory reads the entries of a directory node in on-disk order.
// Volume labels are not part of the listing.
// The node itself is not modified.
func (v *Volume) ListDirectory(node *EntryNode) ([]*EntryNode, error) {
	var entries []*DirectoryEntry
	var err error
	if isRootRegion(node) {
		entries, err = v.rootEntries()
	} else {
		entries, err = v.chainEntries(node.Entry.StartingCluster)
	}
	if err != nil {
		return nil, err
	}

	nodes := make([]*EntryNode, 0, len(entries))
	for _, entry := range entries {
		if entry.IsVolumeLabel() {
			continue
		}
		nodes = append(nodes, newEntryNode(entry))
	}

	volumeLogger.Debugf(nil, "listed %d entries at offset %d", len(nodes), v.ResolveRegion(node))
	return nodes, nil
}

// rootEntries decodes the root region, which ends after RootEntryCount
// records even without an end marker.
func (v *Volume) rootEntries() ([]*DirectoryEntry, error) {
	region := make([]byte, v.bpb.RootSize())
	if err := v.readAt(v.bpb.RootOffset(), region); err != nil {
		return nil, err
	}

	entries, _, err := decodeEntries(region)
	return entries, err
}

// chainEntries decodes a directory stored in a cluster chain until the end
// marker or the end of the chain.
func (v *Volume) chainEntries(start uint16) ([]*DirectoryEntry, error) {
	var entries []*DirectoryEntry
	buf := make([]byte, v.bpb.ClusterSize())

	walker := v.Chain(start)
	for walker.Next() {
		if err := v.readAt(v.bpb.ClusterOffset(walker.Cluster()), buf); err != nil {
			return nil, err
		}

		decoded, end, err := decodeEntries(buf)
		if err != nil {
			return nil, err
		}
		entries = append(entries, decoded...)

		if end {
			return entries, nil
		}
	}

	if err := walker.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

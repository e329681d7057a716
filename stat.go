package fat16

import (
	"os"
	"strings"
	"time"
)

// FileInfo describes the node as os.FileInfo. Its Name is the trimmed
// "NAME.EXT" form, the root is named "/".
func (n *EntryNode) FileInfo() os.FileInfo {
	if n.isRoot {
		return rootFileInfo{name: "/"}
	}
	return entryFileInfo{entry: *n.Entry}
}

type entryFileInfo struct {
	entry DirectoryEntry
}

func (e entryFileInfo) Name() string {
	name := e.entry.ShortName()
	ext := strings.TrimRight(string(e.entry.Ext[:]), " ")

	if ext != "" {
		name += "."
	}

	return name + ext
}

func (e entryFileInfo) Size() int64 {
	if e.entry.IsDir() {
		return 0
	}
	return int64(e.entry.Size)
}

func (e entryFileInfo) Mode() os.FileMode {
	mode := os.FileMode(0444)
	if e.entry.Attributes&AttrReadOnly == 0 {
		mode |= 0222
	}
	if e.IsDir() {
		return mode | os.ModeDir | 0111
	}
	return mode
}

func (e entryFileInfo) ModTime() time.Time {
	return e.entry.ModTime()
}

func (e entryFileInfo) IsDir() bool {
	return e.entry.IsDir()
}

func (e entryFileInfo) Sys() interface{} {
	return e.entry
}

type rootFileInfo struct {
	name string
}

func (r rootFileInfo) Name() string       { return r.name }
func (r rootFileInfo) Size() int64        { return 0 }
func (r rootFileInfo) Mode() os.FileMode  { return os.ModeDir | 0755 }
func (r rootFileInfo) ModTime() time.Time { return time.Time{} }
func (r rootFileInfo) IsDir() bool        { return true }
func (r rootFileInfo) Sys() interface{}   { return nil }

package fat16

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aligator/fat16/checkpoint"
	"github.com/spf13/afero"
)

// Fs is a read-only afero.Fs of a FAT16 volume. Paths are matched against the
// full "NAME.EXT" form of the entries. Use afero.IOFS{Fs: fs} for an io/fs.FS.
type Fs struct {
	lock   sync.Mutex
	volume *Volume
	root   *EntryNode
}

// New opens the volume on reader as afero.Fs.
func New(reader io.ReadSeeker) (*Fs, error) {
	volume, err := Open(reader)
	if err != nil {
		return nil, err
	}

	return NewFs(volume), nil
}

// NewFs returns an afero.Fs for an already opened volume.
func NewFs(volume *Volume) *Fs {
	return &Fs{
		volume: volume,
		root:   NewRootNode(),
	}
}

// Volume returns the underlying volume.
func (fs *Fs) Volume() *Volume {
	return fs.volume
}

// lookup finds the node for name, caching all directories on the way.
func (fs *Fs) lookup(name string) (*EntryNode, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	node := fs.root
	for _, segment := range splitPath(name) {
		if !node.IsDir() {
			return nil, checkpoint.From(fmt.Errorf("%w: %s", ErrNotDirectory, name))
		}

		children, listed := node.Children()
		if !listed {
			var err error
			children, err = fs.volume.ListDirectory(node)
			if err != nil {
				return nil, err
			}
			node.setChildren(children)
		}

		var next *EntryNode
		for _, child := range children {
			if !isDotEntry(child) && child.FileInfo().Name() == segment {
				next = child
				break
			}
		}
		if next == nil {
			return nil, checkpoint.From(fmt.Errorf("%w: %s", ErrNotFound, name))
		}
		node = next
	}

	return node, nil
}

func splitPath(name string) []string {
	cleaned := path.Clean("/" + filepath.ToSlash(name))
	if cleaned == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(cleaned, "/"), "/")
}

func (fs *Fs) Open(name string) (afero.File, error) {
	node, err := fs.lookup(name)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: notExist(err)}
	}

	stat := node.FileInfo()
	if node.IsRoot() {
		stat = rootFileInfo{name: path.Base(path.Clean("/" + filepath.ToSlash(name)))}
		if name == "." || name == "" {
			stat = rootFileInfo{name: "."}
		}
	}

	return newFile(fs.volume, node, name, stat), nil
}

func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: syscall.EROFS}
	}
	return fs.Open(name)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	file, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return file.Stat()
}

func (fs *Fs) Name() string {
	return "fat16"
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, &os.PathError{Op: "create", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: path, Err: syscall.EROFS}
}

func (fs *Fs) Remove(name string) error {
	return &os.PathError{Op: "remove", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) RemoveAll(path string) error {
	return &os.PathError{Op: "remove", Path: path, Err: syscall.EROFS}
}

func (fs *Fs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EROFS}
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return &os.PathError{Op: "chmod", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return &os.PathError{Op: "chown", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return &os.PathError{Op: "chtimes", Path: name, Err: syscall.EROFS}
}

// notExist replaces lookup failures by os.ErrNotExist, which os.IsNotExist
// only recognizes unwrapped.
func notExist(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotDirectory) {
		volumeLogger.Debugf(nil, "lookup failed: %v", err)
		return os.ErrNotExist
	}
	return err
}

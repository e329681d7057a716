package fat16

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/aligator/fat16/checkpoint"
	"github.com/spf13/afero"
)

// fatFileFs provides all methods needed from a volume for File.
// It mainly exists to be able to mock the Volume in tests.
// Generated mock using mockgen:
//
//	mockgen -source=file.go -destination=file_mock.go -package fat16
type fatFileFs interface {
	readFileAt(cluster uint16, fileSize int64, offset int64, readSize int64) ([]byte, error)
	ListDirectory(node *EntryNode) ([]*EntryNode, error)
}

// File is a read-only afero.File of a volume.
type File struct {
	fs   fatFileFs
	path string
	node *EntryNode

	isDirectory bool
	isReadOnly  bool
	isHidden    bool
	isSystem    bool

	firstCluster uint16
	stat         os.FileInfo
	offset       int64
}

func newFile(fs fatFileFs, node *EntryNode, path string, stat os.FileInfo) *File {
	f := &File{
		fs:          fs,
		path:        path,
		node:        node,
		isDirectory: node.IsDir(),
		stat:        stat,
	}

	if entry := node.Entry; entry != nil {
		f.isReadOnly = entry.Attributes&AttrReadOnly != 0
		f.isHidden = entry.Attributes&AttrHidden != 0
		f.isSystem = entry.Attributes&AttrSystem != 0
		f.firstCluster = entry.StartingCluster
	}

	return f
}

// OpenFile returns a read-only File of node. Its name is the trimmed
// "NAME.EXT" form.
func (v *Volume) OpenFile(node *EntryNode) *File {
	stat := node.FileInfo()
	return newFile(v, node, stat.Name(), stat)
}

func (f *File) Close() error {
	f.fs = nil
	f.path = ""
	f.node = nil
	f.isDirectory = false
	f.isReadOnly = false
	f.isHidden = false
	f.isSystem = false
	f.firstCluster = 0
	f.stat = nil
	f.offset = 0

	return nil
}

func (f *File) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	if f.isDirectory {
		return 0, checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}

	// Reading a file if the size has been already reached, makes no sense.
	if f.stat.Size() <= f.offset {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.firstCluster, f.stat.Size(), f.offset, int64(len(p)))
	copy(p, data)

	// Seek even if an error occurred, errors from reading are used even if seek also errors.
	_, seekErr := f.Seek(int64(len(data)), io.SeekCurrent)

	if err != nil {
		return len(data), checkpoint.Wrap(err, ErrReadFile)
	}

	if seekErr != nil {
		return len(data), checkpoint.Wrap(seekErr, ErrReadFile)
	}

	return len(data), nil
}

func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	if f.isDirectory {
		return 0, checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}

	if off < 0 {
		return 0, checkpoint.Wrap(syscall.EINVAL, ErrReadFile)
	}

	// Reading over the end makes no sense.
	if f.stat.Size() <= off {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.firstCluster, f.stat.Size(), off, int64(len(p)))
	copy(p, data)

	if err != nil {
		return len(data), checkpoint.Wrap(err, ErrReadFile)
	}

	if len(data) < len(p) {
		return len(data), io.EOF
	}
	return len(data), nil
}

// Seek jumps to a specific offset in the file. This affects all Read operation except ReadAt.
// May return a syscall.EINVAL error if the whence value is invalid.
// May return an afero.ErrOutOfRange error if the offset is out of range.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = f.stat.Size() + offset
	default:
		return 0, checkpoint.Wrap(ErrSeekFile, fmt.Errorf("%w, offset: %v, whence: %v", syscall.EINVAL, offset, whence))
	}

	if offset < 0 || offset > f.stat.Size() {
		return 0, checkpoint.Wrap(afero.ErrOutOfRange, fmt.Errorf("%w, offset: %v, whence: %v", ErrSeekFile, offset, whence))
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, &os.PathError{Op: "write", Path: f.path, Err: syscall.EROFS}
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, &os.PathError{Op: "write", Path: f.path, Err: syscall.EROFS}
}

func (f *File) Name() string {
	return f.stat.Name()
}

// Readdir reads the contents of a directory. The "." and ".." entries are
// left out. With count > 0 it returns io.EOF only together with no entries.
// May return syscall.ENOTDIR if the current File is no directory.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if !f.isDirectory {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	nodes, err := f.fs.ListDirectory(f.node)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	content := make([]*EntryNode, 0, len(nodes))
	for _, node := range nodes {
		if isDotEntry(node) {
			continue
		}
		content = append(content, node)
	}

	if f.offset > int64(len(content)) {
		f.offset = int64(len(content))
	}

	end := len(content)
	if count > 0 {
		if int64(len(content)) == f.offset {
			return []os.FileInfo{}, io.EOF
		}
		if f.offset+int64(count) < int64(end) {
			end = int(f.offset) + count
		}
	}

	content = content[f.offset:end]
	f.offset = int64(end)

	result := make([]os.FileInfo, len(content))
	for i := range content {
		result[i] = content[i].FileInfo()
	}

	return result, err
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)
	if err != nil && err != io.EOF {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, err
}

func (f *File) Stat() (os.FileInfo, error) {
	return f.stat, nil
}

func (f *File) Sync() error {
	return nil
}

func (f *File) Truncate(size int64) error {
	return &os.PathError{Op: "truncate", Path: f.path, Err: syscall.EROFS}
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}

func isDotEntry(node *EntryNode) bool {
	name := node.Name()
	return name == "." || name == ".."
}

// readFileAt reads readSize bytes at offset of the file stored in the chain
// starting at cluster. Reading past fileSize returns the available bytes and
// io.EOF. A chain too short for fileSize is an ErrCorruptChain.
func (v *Volume) readFileAt(cluster uint16, fileSize int64, offset int64, readSize int64) ([]byte, error) {
	if offset >= fileSize {
		return nil, io.EOF
	}

	end := offset + readSize
	eof := false
	if end > fileSize {
		end = fileSize
		eof = true
	}

	clusterSize := v.bpb.ClusterSize()
	result := make([]byte, 0, end-offset)
	buf := make([]byte, clusterSize)

	var position int64
	walker := v.Chain(cluster)
	for position < end && walker.Next() {
		if position+clusterSize > offset {
			if err := v.readAt(v.bpb.ClusterOffset(walker.Cluster()), buf); err != nil {
				return result, err
			}

			from := int64(0)
			if offset > position {
				from = offset - position
			}
			to := clusterSize
			if end-position < to {
				to = end - position
			}
			result = append(result, buf[from:to]...)
		}
		position += clusterSize
	}

	if err := walker.Err(); err != nil {
		return result, err
	}

	if int64(len(result)) < end-offset {
		return result, checkpoint.From(fmt.Errorf("%w: chain of cluster %d ends before the file size of %d bytes", ErrCorruptChain, cluster, fileSize))
	}

	if eof {
		return result, io.EOF
	}
	return result, nil
}

package fat16

import (
	"errors"
)

// These errors may occur while reading a volume.
// Each error returned by this package matches one of them with errors.Is.
var (
	// ErrSeek means the byte source could not be positioned.
	ErrSeek = errors.New("could not seek the volume")
	// ErrRead means the byte source failed while reading.
	ErrRead = errors.New("could not read the volume")
	// ErrInvalidVolume means the boot sector does not describe a supported
	// FAT16 volume. It is fatal: see IsFatal.
	ErrInvalidVolume = errors.New("invalid FAT16 volume")
	// ErrCorruptChain means the FAT contains a link which is free, reserved,
	// bad, out of range or part of a cycle.
	ErrCorruptChain = errors.New("corrupt cluster chain")
	// ErrDecodeEntry means a directory record could not be decoded.
	ErrDecodeEntry = errors.New("could not decode directory entry")
	// ErrNotFound means a path segment names no entry of its directory.
	ErrNotFound = errors.New("no such file or directory")
	// ErrNotDirectory means a path segment names a file where a directory is needed.
	ErrNotDirectory = errors.New("not a directory")
	// ErrIsDirectory means a path names a directory where a file is needed.
	ErrIsDirectory = errors.New("is a directory")
)

// These errors may occur while processing a file.
var (
	ErrReadFile = errors.New("could not read file completely")
	ErrSeekFile = errors.New("could not seek inside of the file")
	ErrReadDir  = errors.New("could not read the directory")
)

// IsFatal reports whether err means the volume can not be used at all.
// Everything else only fails the operation that returned it.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidVolume)
}

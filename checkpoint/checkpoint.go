// Package checkpoint decorates errors with the location they passed through.
// A checkpoint keeps the described error reachable by errors.Is and errors.As,
// and Unwrap leads to the error it was created from, so sentinel checks keep
// working however deep a volume error was raised.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// From marks err with the location of the caller.
// It returns nil if err is nil.
func From(err error) error {
	// io.EOF has to stay comparable with ==.
	// https://github.com/golang/go/issues/39155
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return err
	}

	if err == nil {
		return nil
	}

	return newCheckpoint(err, nil)
}

// Wrap records err as the description of a failure caused by prev, marked with
// the location of the caller. It returns nil if prev is nil, which allows the
// common pattern
//
//	n, err := source.Read(buf)
//	return checkpoint.Wrap(err, ErrRead)
//
// where errors.Is(result, ErrRead) holds and errors.Unwrap(result) is the
// original read error.
func Wrap(prev, err error) error {
	if prev == io.EOF {
		return io.EOF
	}

	if prev == nil {
		return nil
	}

	return newCheckpoint(err, prev)
}

// Trace returns the "file:line" locations of all checkpoints in the chain of
// err, outermost first.
func Trace(err error) []string {
	var locations []string
	for err != nil {
		var c *checkpoint
		if !errors.As(err, &c) {
			break
		}
		locations = append(locations, c.location())
		err = c.prev
	}
	return locations
}

type checkpoint struct {
	err  error
	prev error

	callerOk bool
	file     string
	line     int
}

func newCheckpoint(err, prev error) *checkpoint {
	// Skip newCheckpoint and From/Wrap.
	_, file, line, ok := runtime.Caller(2)

	return &checkpoint{
		err:  err,
		prev: prev,

		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

func (e *checkpoint) location() string {
	if !e.callerOk {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", e.file, e.line)
}

func (e *checkpoint) Error() string {
	var parts []string
	if e.err != nil {
		parts = append(parts, e.err.Error())
	}
	if e.prev != nil {
		parts = append(parts, e.prev.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *checkpoint) Unwrap() error {
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return e.err != nil && errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return e.err != nil && errors.As(e.err, target)
}

package fat16

import (
	"fmt"
	"io"
	"strings"

	"github.com/aligator/fat16/checkpoint"
	log "github.com/dsoprea/go-logging"
)

var cursorLogger = log.NewLogger("fat16.cursor")

// directoryLister provides the directory decoding a Cursor needs.
// It mainly exists to be able to mock the Volume in tests.
// Generated mock using mockgen:
//
//	mockgen -source=cursor.go -destination=cursor_mock.go -package fat16
type directoryLister interface {
	ListDirectory(node *EntryNode) ([]*EntryNode, error)
}

// Cursor is a working directory on a volume. It owns the tree of nodes
// listed so far and keeps its position as the child indices leading from
// the root to the current node.
//
// A Cursor must not be used concurrently.
type Cursor struct {
	volume *Volume
	lister directoryLister

	root  *EntryNode
	index []int
	path  []string
}

// Mount opens the volume on source and returns a cursor on its root
// directory. Errors are fatal for the volume, see IsFatal.
func Mount(source io.ReadSeeker) (*Cursor, error) {
	volume, err := Open(source)
	if err != nil {
		return nil, err
	}
	return NewCursor(volume), nil
}

// NewCursor returns a cursor on the root directory of volume.
func NewCursor(volume *Volume) *Cursor {
	c := newCursor(volume)
	c.volume = volume
	return c
}

func newCursor(lister directoryLister) *Cursor {
	return &Cursor{
		lister: lister,
		root:   NewRootNode(),
	}
}

// Volume returns the volume the cursor browses.
func (c *Cursor) Volume() *Volume {
	return c.volume
}

// Root returns the root node of the tree.
func (c *Cursor) Root() *EntryNode {
	return c.root
}

// Current returns the node of the working directory.
func (c *Cursor) Current() *EntryNode {
	return c.nodeAt(c.index)
}

// Path returns the names of the directories from the root to the working
// directory.
func (c *Cursor) Path() []string {
	return append([]string(nil), c.path...)
}

// PathString returns the working directory as absolute path.
func (c *Cursor) PathString() string {
	return "/" + strings.Join(c.path, "/")
}

// List returns the entries of the working directory. The first successful
// listing is cached and returned on later calls until Invalidate.
func (c *Cursor) List() ([]*EntryNode, error) {
	return c.children(c.Current())
}

// Invalidate drops the cached listing of the working directory.
func (c *Cursor) Invalidate() {
	c.Current().invalidate()
}

// Descend changes into the child directory name of the working directory.
// ".." changes to the parent directory and stays at the root, "." and ""
// change nothing.
//
// If name does not exist (ErrNotFound) or is a file (ErrNotDirectory) the
// cursor stays where it is.
func (c *Cursor) Descend(name string) error {
	index, path, err := c.step(c.index, c.path, name)
	if err != nil {
		return err
	}

	c.index, c.path = index, path
	cursorLogger.Debugf(nil, "working directory is now [%s]", c.PathString())
	return nil
}

// ChangeDirectory descends along the "/" separated segments of p, starting
// at the root if p is absolute. It stops at the first segment which fails
// and stays in the directory reached up to that segment. If no segment
// succeeded the cursor stays where it was, even for an absolute p.
func (c *Cursor) ChangeDirectory(p string) error {
	index, path := c.index, c.path
	if strings.HasPrefix(p, "/") {
		c.index, c.path = nil, nil
	}

	moved := false
	for _, segment := range strings.Split(p, "/") {
		if err := c.Descend(segment); err != nil {
			if !moved {
				c.index, c.path = index, path
			}
			return err
		}
		if segment != "" && segment != "." {
			moved = true
		}
	}

	return nil
}

// ListPath lists the directory p, relative to the working directory unless
// absolute, without changing the working directory.
func (c *Cursor) ListPath(p string) ([]*EntryNode, error) {
	node, err := c.Lookup(p)
	if err != nil {
		return nil, err
	}

	if !node.IsDir() {
		return nil, checkpoint.From(fmt.Errorf("%w: %s", ErrNotDirectory, p))
	}

	return c.children(node)
}

// Lookup resolves p, relative to the working directory unless absolute, to a
// node without changing the working directory. The last segment may name a
// file.
func (c *Cursor) Lookup(p string) (*EntryNode, error) {
	index, path := c.index, c.path
	if strings.HasPrefix(p, "/") {
		index, path = nil, nil
	}

	segments := strings.Split(p, "/")
	for i, segment := range segments {
		if i == len(segments)-1 {
			return c.lookupLast(index, segment)
		}

		var err error
		index, path, err = c.step(index, path, segment)
		if err != nil {
			return nil, err
		}
	}

	return c.nodeAt(index), nil
}

func (c *Cursor) lookupLast(index []int, name string) (*EntryNode, error) {
	switch name {
	case "", ".":
		return c.nodeAt(index), nil
	case "..":
		if len(index) == 0 {
			return c.root, nil
		}
		return c.nodeAt(index[:len(index)-1]), nil
	}

	parent := c.nodeAt(index)
	if _, err := c.children(parent); err != nil {
		return nil, err
	}

	i, ok := parent.child(name)
	if !ok {
		return nil, checkpoint.From(fmt.Errorf("%w: %s", ErrNotFound, name))
	}

	return parent.children[i], nil
}

// step computes the position reached from index by one path segment. It
// only lists directories, the cursor position is left alone.
func (c *Cursor) step(index []int, path []string, name string) ([]int, []string, error) {
	switch name {
	case "", ".":
		return index, path, nil
	case "..":
		if len(index) == 0 {
			return index, path, nil
		}
		return index[:len(index)-1], path[:len(path)-1], nil
	}

	node := c.nodeAt(index)
	if _, err := c.children(node); err != nil {
		return nil, nil, err
	}

	i, ok := node.child(name)
	if !ok {
		return nil, nil, checkpoint.From(fmt.Errorf("%w: %s", ErrNotFound, name))
	}

	child := node.children[i]
	if !child.IsDir() {
		return nil, nil, checkpoint.From(fmt.Errorf("%w: %s", ErrNotDirectory, name))
	}

	return appendIndex(index, i), appendName(path, child.Name()), nil
}

// children lists node unless it already is. A failed listing caches nothing.
func (c *Cursor) children(node *EntryNode) ([]*EntryNode, error) {
	if children, listed := node.Children(); listed {
		return children, nil
	}

	children, err := c.lister.ListDirectory(node)
	if err != nil {
		return nil, err
	}

	node.setChildren(children)
	return children, nil
}

func (c *Cursor) nodeAt(index []int) *EntryNode {
	node := c.root
	for _, i := range index {
		node = node.children[i]
	}
	return node
}

// appendIndex and appendName never share the backing array of the input,
// so a computed position can not alias the current one.
func appendIndex(index []int, i int) []int {
	return append(append(make([]int, 0, len(index)+1), index...), i)
}

func appendName(path []string, name string) []string {
	return append(append(make([]string, 0, len(path)+1), path...), name)
}

package fat16

// EntryNode is a node of the in-memory directory tree of a volume.
// The root node is synthetic: it has no entry and is listed from the fixed
// root directory region.
type EntryNode struct {
	Entry *DirectoryEntry

	isDirectory bool
	isRoot      bool

	children []*EntryNode
	listed   bool
}

// NewRootNode returns an unlisted root node.
func NewRootNode() *EntryNode {
	return &EntryNode{
		isDirectory: true,
		isRoot:      true,
	}
}

func newEntryNode(entry *DirectoryEntry) *EntryNode {
	return &EntryNode{
		Entry:       entry,
		isDirectory: entry.IsDir(),
	}
}

func (n *EntryNode) IsRoot() bool {
	return n.isRoot
}

func (n *EntryNode) IsDir() bool {
	return n.isDirectory
}

// Children returns the cached children and whether the node has been listed.
func (n *EntryNode) Children() ([]*EntryNode, bool) {
	return n.children, n.listed
}

func (n *EntryNode) setChildren(children []*EntryNode) {
	n.children = children
	n.listed = true
}

func (n *EntryNode) invalidate() {
	n.children = nil
	n.listed = false
}

// Name is the name used to navigate to the node.
func (n *EntryNode) Name() string {
	if n.isRoot {
		return ""
	}
	return n.Entry.ShortName()
}

// FormattedName is the display name: directories show the base name, files
// the base name followed by the raw extension.
func (n *EntryNode) FormattedName() string {
	if n.isRoot {
		return "/"
	}
	if n.isDirectory {
		return n.Entry.ShortName()
	}
	return n.Entry.ShortName() + "." + string(n.Entry.Ext[:])
}

// String renders the node like a listing line, "D NAME" or "F NAME.EXT".
func (n *EntryNode) String() string {
	if n.isDirectory {
		return "D " + n.FormattedName()
	}
	return "F " + n.FormattedName()
}

// child returns the index of the child matching name.
func (n *EntryNode) child(name string) (int, bool) {
	for i, c := range n.children {
		if matchName(c.Entry, name) {
			return i, true
		}
	}
	return 0, false
}

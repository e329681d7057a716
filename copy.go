package fat16

import (
	"fmt"
	"io"
	"os"

	"github.com/aligator/fat16/checkpoint"
	"github.com/spf13/afero"
)

// CopyOut writes the contents of the file node to name on dst and returns the
// number of bytes written. An existing file is truncated.
func (v *Volume) CopyOut(node *EntryNode, dst afero.Fs, name string) (int64, error) {
	if node.IsDir() {
		return 0, checkpoint.From(fmt.Errorf("%w: %s is a directory", ErrReadFile, node.FormattedName()))
	}

	src := v.OpenFile(node)
	defer src.Close()

	out, err := dst.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, checkpoint.From(err)
	}

	written, err := io.Copy(out, src)
	if err != nil {
		_ = out.Close()
		return written, checkpoint.From(err)
	}

	volumeLogger.Debugf(nil, "copied %d bytes of [%s] to [%s]", written, node.FormattedName(), name)
	return written, checkpoint.From(out.Close())
}

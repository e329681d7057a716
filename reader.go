package fat16

import (
	"fmt"
	"io"

	"github.com/aligator/fat16/checkpoint"
)

// ReadBytes seeks source to the absolute offset and fills buf.
//
// Running into the end of the source is not an error: the number of bytes
// actually read is returned and the rest of buf is zeroed, which makes a
// truncated image look like empty space.
func ReadBytes(source io.ReadSeeker, offset int64, buf []byte) (int, error) {
	if _, err := source.Seek(offset, io.SeekStart); err != nil {
		return 0, checkpoint.Wrap(err, fmt.Errorf("%w at offset %d", ErrSeek, offset))
	}

	n, err := io.ReadFull(source, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		return n, nil
	}
	if err != nil {
		return n, checkpoint.Wrap(err, fmt.Errorf("%w: %d bytes at offset %d", ErrRead, len(buf), offset))
	}

	return n, nil
}

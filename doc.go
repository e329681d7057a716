// Package fat16 browses FAT16 volume images read-only.
//
// A Volume parses the boot sector of any io.ReadSeeker and decodes the
// cluster chains and directories on demand. A Cursor keeps a working
// directory on top of it, while Fs exposes the whole volume as afero.Fs:
//
//	volume, err := fat16.Open(image)
//	cursor := fat16.NewCursor(volume)
//	err = cursor.ChangeDirectory("/DOCS")
//	entries, err := cursor.List()
//
//	fsys := fat16.NewFs(volume)
//	data, err := afero.ReadFile(fsys, "DOCS/NOTES.MD")
//
// Errors match the sentinel errors of this package with errors.Is. Only
// errors for which IsFatal reports true make the volume unusable.
package fat16

//go:generate go run ./cmd/generate

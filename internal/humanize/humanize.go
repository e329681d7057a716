// Package humanize formats sizes for terminal output.
package humanize

import "fmt"

// Bytes formats a byte count in B, KiB or MiB, rounded to whole units.
func Bytes(bytes uint64) string {
	switch {
	case bytes > (1024 * 1024):
		return fmt.Sprintf("%.f MiB", float64(bytes)/1024/1024)
	case bytes > 1024:
		return fmt.Sprintf("%.f KiB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Sectors formats a sector count together with the size it covers.
func Sectors(count uint64, sectorSize uint64) string {
	return fmt.Sprintf("%d sectors (%s)", count, Bytes(count*sectorSize))
}

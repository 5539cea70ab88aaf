//go:build !linux

package journal

import "os"

// datasync falls back to a full fsync on platforms without fdatasync(2).
func datasync(file *os.File) error {
	return file.Sync()
}

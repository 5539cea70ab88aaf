package journal

import (
	"os"

	"golang.org/x/sys/unix"
)

// datasync flushes file data without forcing a metadata update, matching
// fdatasync(2). Timestamps are allowed to lag; only the record bytes need
// to be durable.
func datasync(file *os.File) error {
	return unix.Fdatasync(int(file.Fd()))
}

// Package journal implements the append-only log file behind the cache: a
// flat concatenation of records, each a raw payload followed by its length
// as a 2-byte little-endian trailer. The trailer placement lets a cursor
// walk the file newest-to-oldest in O(1) seeks per record, so queries never
// read more of the file than they have to.
//
// The file has no header, no magic bytes and no checksums. A zero-length
// file is the canonical empty state. Open never verifies that an existing
// file conforms to the record grammar; loading a malformed file is the
// caller's bug, not a detected condition.
package journal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FilePerm is the permission for a newly created log file.
const FilePerm = 0o600

// Log owns the single open handle to a log file. It is not safe for
// concurrent use; one invocation owns one Log from Open to Close.
type Log struct {
	file *os.File
	enc  []byte // reusable append encode buffer
}

// Open opens the log file at path for reading and appending, creating it
// and any missing parent directories if necessary.
//
// Open does not verify that existing content is a well-formed log.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create cache directory %q: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, FilePerm) //nolint:gosec // path comes from resolved config
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", path, err)
	}

	return &Log{file: file}, nil
}

// Path returns the filesystem path of the underlying file.
func (l *Log) Path() string {
	return l.file.Name()
}

// Append writes one record holding entry at the end of the file. It does
// not imply durability; call Sync before relying on the write surviving a
// crash. Returns ErrTooLarge, without writing anything, if entry exceeds
// MaxEntrySize.
func (l *Log) Append(entry []byte) error {
	if len(entry) > MaxEntrySize {
		return fmt.Errorf("append %d byte entry: %w", len(entry), ErrTooLarge)
	}

	// Payload and trailer go out in a single write so a record is never
	// split across two syscalls.
	l.enc = appendRecord(l.enc[:0], entry)

	if _, err := l.file.Write(l.enc); err != nil {
		return fmt.Errorf("append to %q: %w", l.Path(), err)
	}

	return nil
}

// Clear truncates the file to zero length and rewinds the handle.
func (l *Log) Clear() error {
	if _, err := l.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind %q: %w", l.Path(), err)
	}

	if err := l.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate %q: %w", l.Path(), err)
	}

	return nil
}

// Sync forces written data to stable storage (data-level fsync; file
// metadata such as timestamps may lag).
func (l *Log) Sync() error {
	if err := datasync(l.file); err != nil {
		return fmt.Errorf("sync %q: %w", l.Path(), err)
	}

	return nil
}

// Position reports the current seek offset of the handle. After a finished
// backward walk this is the number of stale bytes older than the walk's
// front, which is what the compaction policy measures.
func (l *Log) Position() (int64, error) {
	pos, err := l.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("position of %q: %w", l.Path(), err)
	}

	return pos, nil
}

// Close releases the file handle.
func (l *Log) Close() error {
	return l.file.Close()
}

// Delete removes the log file from the filesystem. The Log is consumed:
// the handle is closed first and no further operation is valid.
func (l *Log) Delete() error {
	path := l.file.Name()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove %q: %w", path, err)
	}

	return nil
}

// ReverseCursor positions the handle at the trailer of the last record (or
// at offset 0 when the file is too short to hold one) and returns a cursor
// over the log, newest record first.
//
// The cursor borrows the Log's handle: interleaving other Log operations
// with an unfinished walk leaves the seek offset wherever the last
// operation put it.
func (l *Log) ReverseCursor() *Cursor {
	pos, err := l.file.Seek(-TrailerSize, io.SeekEnd)
	if err != nil {
		// Shorter than one trailer: nothing to walk.
		pos = 0
	}

	return &Cursor{file: l.file, pos: pos}
}

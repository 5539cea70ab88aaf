package journal

import (
	"fmt"
	"io"
	"os"
)

// Cursor walks a log backward one record at a time. Usage follows the
// bufio.Scanner shape:
//
//	cur := log.ReverseCursor()
//	for cur.Prev() {
//		entry := cur.Bytes() // valid until the next Prev
//	}
//	if err := cur.Err(); err != nil {
//		...
//	}
//
// The cursor assumes the file is a legal concatenation of records. A
// trailer whose implied record does not fit inside the file is not
// detected here; the walk surfaces whatever I/O error the bogus seek or
// read produces, or silently misparses. Garbage in, garbage out.
type Cursor struct {
	file *os.File
	buf  []byte
	pos  int64
	err  error
}

// Prev advances the cursor to the previous (older) record. It returns
// false when the walk is exhausted or an I/O error occurred; Err
// distinguishes the two.
func (c *Cursor) Prev() bool {
	if c.err != nil || c.pos == 0 {
		return false
	}

	// The handle sits on the trailer of the record to yield:
	//
	//	| / | 01 | 00 | / | b | a | r | 04 | 00 |
	//	                                ^

	var trailer [TrailerSize]byte

	if _, err := io.ReadFull(c.file, trailer[:]); err != nil {
		c.err = fmt.Errorf("read trailer at %d: %w", c.pos, err)
		return false
	}

	length := decodeTrailer(trailer[:])

	// Reading the trailer moved the handle past it; step back over the
	// trailer and the payload to the payload start.
	//
	//	| / | 01 | 00 | / | b | a | r | 04 | 00 |
	//	                ^

	if _, err := c.file.Seek(-TrailerSize-length, io.SeekCurrent); err != nil {
		c.err = fmt.Errorf("seek to payload at %d: %w", c.pos, err)
		return false
	}

	if int64(cap(c.buf)) < length {
		c.buf = make([]byte, length)
	}

	c.buf = c.buf[:length]

	if _, err := io.ReadFull(c.file, c.buf); err != nil {
		c.err = fmt.Errorf("read %d byte payload at %d: %w", length, c.pos, err)
		return false
	}

	// The read left the handle back on this record's trailer. Step over
	// the payload and trailer once more to land on the previous record's
	// trailer, which is where the next Prev expects to start. Underflow
	// means this was the oldest record; treat it as exhaustion.
	//
	//	| / | 01 | 00 | / | b | a | r | 04 | 00 |
	//	      ^

	pos, err := c.file.Seek(-TrailerSize-length, io.SeekCurrent)
	if err != nil {
		pos = 0
	}

	c.pos = pos

	return true
}

// Bytes returns the payload of the record Prev last stopped on. The slice
// aliases the cursor's internal buffer and is overwritten by the next
// Prev; callers that hold on to it must copy.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// Err returns the first I/O error hit by the walk, or nil if the cursor
// stopped because it ran out of records.
func (c *Cursor) Err() error {
	return c.err
}

// Position reports the byte offset of the walk front: every record at an
// offset below it has not been yielded yet. Zero means the walk is
// exhausted; after a bounded walk it counts the stale bytes older than
// the retained window.
func (c *Cursor) Position() int64 {
	return c.pos
}

package journal

import (
	"encoding/binary"
	"errors"
)

const (
	// TrailerSize is the size of the little-endian length trailer that
	// follows every payload on disk.
	TrailerSize = 2

	// MaxEntrySize is the largest payload a single record can carry,
	// bounded by the 16-bit length trailer.
	MaxEntrySize = 1<<16 - 1
)

// ErrTooLarge is returned by Append when a payload exceeds MaxEntrySize.
// Nothing is written to the log in that case.
var ErrTooLarge = errors.New("journal: entry exceeds 65535 bytes")

// appendRecord appends the on-disk form of entry to dst and returns the
// extended slice. The layout is the raw payload followed by its length as
// an unsigned 16-bit little-endian trailer:
//
//	+-----------------+--------------------+
//	|  payload bytes  |  u16 LE len(payload)  |
//	+-----------------+--------------------+
//
// Storing the length behind the payload is what makes the backward walk
// possible: a reader positioned at the end of a record can always find the
// start of the payload from the trailer alone.
func appendRecord(dst, entry []byte) []byte {
	var trailer [TrailerSize]byte

	binary.LittleEndian.PutUint16(trailer[:], uint16(len(entry)))

	dst = append(dst, entry...)

	return append(dst, trailer[:]...)
}

// decodeTrailer interprets two bytes as a record's payload length. Bounds
// checking against the file is the cursor's job, not the codec's.
func decodeTrailer(buf []byte) int64 {
	return int64(binary.LittleEndian.Uint16(buf))
}

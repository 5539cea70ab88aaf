package cache

import "github.com/spaolacci/murmur3"

// hashedSet is a string membership set keyed by 64-bit murmur3, with exact
// comparison inside each bucket so a hash collision can never drop a
// distinct entry. Keying by hash lets the duplicate check run against the
// cursor's borrowed byte view without allocating a string per record.
type hashedSet struct {
	buckets map[uint64][]string
}

func newHashedSet() *hashedSet {
	return &hashedSet{buckets: make(map[uint64][]string)}
}

// add inserts raw if it is not already present. It returns the owned
// string copy and whether the entry was new; duplicates allocate nothing.
func (s *hashedSet) add(raw []byte) (string, bool) {
	sum := murmur3.Sum64(raw)

	for _, existing := range s.buckets[sum] {
		if existing == string(raw) {
			return "", false
		}
	}

	entry := string(raw)
	s.buckets[sum] = append(s.buckets[sum], entry)

	return entry, true
}

// Package intern deduplicates repeated strings — typically JSON object
// keys, which recur constantly across an array of similarly-shaped
// objects — so a caller building up a document summary from a vktor
// token stream can retain one copy of each distinct key instead of one
// per occurrence.
package intern

import "github.com/dchest/siphash"

// Fixed key pair for the hash used to bucket interned strings. Only used
// to spread entries across buckets, never as a security boundary.
const (
	k0 = 0x0123456789abcdef
	k1 = 0xfedcba9876543210
)

type entry struct {
	key   string
	value string
}

// Table is a string interning table. The zero value is not usable; use
// New.
type Table struct {
	buckets map[uint64][]entry
}

// New creates an empty Table.
func New() *Table {
	return &Table{buckets: make(map[uint64][]entry)}
}

// Intern returns a string equal to s. The first time a given value is
// seen, Intern retains and returns s itself; every subsequent call with
// an equal value returns that same retained string instead of s, so
// repeated keys across a document share one backing array.
func (t *Table) Intern(s string) string {
	h := hash(s)
	for _, e := range t.buckets[h] {
		if e.key == s {
			return e.value
		}
	}
	t.buckets[h] = append(t.buckets[h], entry{key: s, value: s})
	return s
}

// Len returns the number of distinct strings currently interned.
func (t *Table) Len() int {
	n := 0
	for _, bucket := range t.buckets {
		n += len(bucket)
	}
	return n
}

func hash(s string) uint64 {
	return siphash.Hash(k0, k1, []byte(s))
}

// Package fingerprint computes content fingerprints of fully-read JSON
// documents, used by the CLI's --dedup flag to skip re-printing
// byte-identical documents in a batch.
package fingerprint

import "golang.org/x/crypto/blake2b"

// Sum is a document fingerprint.
type Sum [32]byte

// Of returns the fingerprint of doc.
func Of(doc []byte) Sum {
	return blake2b.Sum256(doc)
}

// Seen deduplicates documents by fingerprint across a batch.
type Seen struct {
	sums map[Sum]struct{}
}

// NewSeen creates an empty dedup tracker.
func NewSeen() *Seen {
	return &Seen{sums: make(map[Sum]struct{})}
}

// Add reports whether doc's fingerprint has been seen before, recording
// it as seen either way.
func (s *Seen) Add(doc []byte) (alreadySeen bool) {
	sum := Of(doc)
	if _, ok := s.sums[sum]; ok {
		return true
	}
	s.sums[sum] = struct{}{}
	return false
}

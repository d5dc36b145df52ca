// Package source drives a vktor Parser from an io.Reader, transparently
// decompressing zstd-compressed input. It lives outside the core
// tokenizer package: vktor itself only knows about Feed/Parse, never
// about files or compression.
package source

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/shevron/vktor"
)

// ChunkSize is the default read buffer size used by Feed.
const ChunkSize = 64 * 1024

// Feed reads r in chunks of chunkSize bytes (ChunkSize when chunkSize is
// not positive) and feeds each one to p via p.Feed, calling p.Close once r
// is exhausted. It never calls p.Parse, so all of r is fed before any
// token is read; callers that want interleaved Feed/Parse should read r
// themselves and call p.Feed directly instead.
func Feed(p *vktor.Parser, r io.Reader, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = ChunkSize
	}
	for {
		buf := make([]byte, chunkSize)
		n, err := r.Read(buf)
		if n > 0 {
			if ferr := p.Feed(buf[:n]); ferr != nil {
				return fmt.Errorf("source: feed: %w", ferr)
			}
		}
		if err == io.EOF {
			p.Close()
			return nil
		}
		if err != nil {
			return fmt.Errorf("source: read: %w", err)
		}
	}
}

// Open wraps r in a zstd decompressor if magic indicates a zstd frame,
// otherwise returns a reader that yields r's bytes unchanged, starting
// with the ones read to check for the magic. The returned closer must be closed by
// the caller once done reading, even when no decompression occurred.
func Open(r io.Reader) (io.Reader, func() error, error) {
	br, ok := r.(peeker)
	if !ok {
		br = &bufPeeker{r: r}
	}

	magic, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("source: peek magic: %w", err)
	}
	if !isZstdMagic(magic) {
		return br, func() error { return nil }, nil
	}

	zr, err := zstd.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("source: new zstd reader: %w", err)
	}
	return zr, func() error { zr.Close(); return nil }, nil
}

var zstdMagic = [4]byte{0x28, 0xb5, 0x2f, 0xfd}

func isZstdMagic(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	return b[0] == zstdMagic[0] && b[1] == zstdMagic[1] && b[2] == zstdMagic[2] && b[3] == zstdMagic[3]
}

// peeker is satisfied by *bufio.Reader; Open accepts anything with Peek
// so a caller that already has a buffered reader avoids double-buffering.
type peeker interface {
	io.Reader
	Peek(n int) ([]byte, error)
}

// bufPeeker is a minimal Peek-capable wrapper for readers that don't
// already provide one, avoiding a bufio.Reader import just for this.
type bufPeeker struct {
	r    io.Reader
	peek []byte
	read bool
}

func (b *bufPeeker) Peek(n int) ([]byte, error) {
	if !b.read {
		buf := make([]byte, n)
		read, err := io.ReadFull(b.r, buf)
		b.peek = buf[:read]
		b.read = true
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return b.peek, err
		}
		return b.peek, nil
	}
	return b.peek, nil
}

func (b *bufPeeker) Read(p []byte) (int, error) {
	if len(b.peek) > 0 {
		n := copy(p, b.peek)
		b.peek = b.peek[n:]
		if n == len(p) {
			return n, nil
		}
		m, err := b.r.Read(p[n:])
		if err == io.EOF {
			err = nil
		}
		return n + m, err
	}
	return b.r.Read(p)
}

// Package gzindex builds a random-access index over a gzip file, adapted
// from Mark Adler's zran.c as ported by the teacher's zran and gzran
// packages: decompress once, remember decoder state every span bytes of
// uncompressed output, and later re-enter the stream near a requested
// offset instead of decompressing from byte zero.
//
// Unlike the teacher's point, which snapshots decoder state at arbitrary
// positions mid-block, an Index here only ever checkpoints between blocks
// (see gzip.Reader.ReadBlock and flate.Reader.Snapshot): no Huffman table
// or mid-symbol continuation needs saving, only the bit reader's leftover
// accumulator and the 32 KiB sliding window. Extracting re-decodes at most
// one extra block's worth of output before reaching the requested offset.
package gzindex

import (
	"io"
	"os"

	"github.com/relvacode/deflate/flate"
	"github.com/relvacode/deflate/gzip"
)

// Span is the minimum distance, in uncompressed bytes, between two
// consecutive access points. It is the same 1 MiB constant zran.c and its
// Go ports use.
const Span = 1 << 20

// point is one access point: the absolute compressed-file byte offset and
// the uncompressed byte offset it corresponds to, plus the flate-level
// state needed to resume decoding from there.
type point struct {
	compressedOffset   int64
	uncompressedOffset int64
	state              flate.Checkpoint
}

// Index is a sequence of access points into a gzip file, ordered by
// increasing uncompressedOffset, plus the compressed length of the gzip
// header that precedes the first DEFLATE block.
type Index struct {
	headerLen int64
	points    []point
}

// countingSource wraps an *os.File and counts every byte actually consumed
// from it, including bytes absorbed by gzip header parsing before the
// flate.Reader is constructed. It is a flate.ByteSource (Read and
// ReadByte) so that NewReader does not introduce its own buffering, which
// would make the count diverge from what a later Seek needs.
type countingSource struct {
	f *os.File
	n int64
}

func (c *countingSource) Read(p []byte) (int, error) {
	n, err := c.f.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingSource) ReadByte() (byte, error) {
	var b [1]byte
	n, err := c.f.Read(b[:])
	c.n += int64(n)
	if n == 0 && err == nil {
		err = io.EOF
	}
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// BuildIndex decompresses the gzip file at path once and builds an Index
// recording an access point at the start of every DEFLATE block whose
// cumulative uncompressed output has advanced at least Span bytes since the
// previous point. Data after the end of the gzip member is ignored;
// concatenated gzip streams are not supported (matching gzip.Reader).
func BuildIndex(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return Index{}, err
	}
	defer f.Close()

	cs := &countingSource{f: f}
	gr, err := gzip.NewReader(cs)
	if err != nil {
		return Index{}, err
	}
	idx := Index{headerLen: cs.n}

	idx.points = append(idx.points, point{
		compressedOffset:   idx.headerLen,
		uncompressedOffset: 0,
		state:              mustCheckpoint(gr),
	})

	var sinceLastPoint int64
	for {
		_, final, err := gr.ReadBlock()
		if err != nil {
			if err == io.EOF {
				return idx, nil
			}
			return Index{}, err
		}
		state, uoff := gr.Checkpoint()
		sinceLastPoint = uoff - idx.points[len(idx.points)-1].uncompressedOffset
		if final {
			return idx, nil
		}
		if sinceLastPoint >= Span {
			idx.points = append(idx.points, point{
				compressedOffset:   idx.headerLen + state.CompressedOffset,
				uncompressedOffset: uoff,
				state:              state,
			})
		}
	}
}

func mustCheckpoint(gr *gzip.Reader) flate.Checkpoint {
	cp, _ := gr.Checkpoint()
	return cp
}

// Extract reads length bytes of uncompressed data starting at offset
// (zero-indexed) from the gzip file at path, using idx to skip forward to
// the nearest preceding access point instead of decompressing from the
// start. If fewer than length bytes remain, Extract returns what it read
// together with io.EOF.
func (idx Index) Extract(path string, offset, length int64) ([]byte, error) {
	if length <= 0 {
		return nil, nil
	}
	if len(idx.points) == 0 {
		return nil, io.ErrUnexpectedEOF
	}

	pt := idx.points[0]
	for _, p := range idx.points {
		if p.uncompressedOffset > offset {
			break
		}
		pt = p
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.Seek(pt.compressedOffset, io.SeekStart); err != nil {
		return nil, err
	}

	fr := flate.Resume(flate.MakeByteSource(f), pt.state)

	skip := offset - pt.uncompressedOffset
	if skip > 0 {
		if _, err := io.CopyN(io.Discard, fr, skip); err != nil {
			return nil, err
		}
	}

	out := make([]byte, length)
	n, err := io.ReadFull(fr, out)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return out[:n], io.EOF
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flate implements the Inflater: a decoder for RFC 1951 DEFLATE
// compressed data streams.
package flate

import (
	"bytes"
	"io"
)

// Resetter resets a ReadCloser returned by NewReader to switch to a new
// underlying Reader, discarding any buffered data seen so far. This permits
// reusing a Reader rather than allocating a new one.
type Resetter interface {
	Reset(r io.Reader) error
}

// Reader is the Inflater: it decodes a DEFLATE stream block by block,
// buffering one block's worth of output at a time between Read calls.
type Reader struct {
	br    bitReader
	hist  History
	bd    blockDecoder
	pend  bytes.Buffer
	final bool
	err   error
}

// NewReader returns a new ReadCloser that decompresses the DEFLATE stream
// from r as it is read.
//
// It is the caller's responsibility to call Close on the ReadCloser when
// finished reading.
func NewReader(r io.Reader) io.ReadCloser {
	z := new(Reader)
	z.reset(MakeByteSource(r))
	return z
}

func (z *Reader) reset(r ByteSource) {
	z.br = bitReader{r: r}
	z.hist = History{}
	z.bd = blockDecoder{br: &z.br, hist: &z.hist, w: &z.pend}
	z.pend.Reset()
	z.final = false
	z.err = nil
}

// Read implements io.Reader. It decodes whole blocks at a time into an
// internal buffer and drains that buffer to p, so that a caller reading in
// small increments still only ever runs the block decoder on block
// boundaries.
func (z *Reader) Read(p []byte) (int, error) {
	for z.pend.Len() == 0 {
		if z.err != nil {
			return 0, z.err
		}
		if z.final {
			z.err = io.EOF
			return 0, z.err
		}
		final, err := z.bd.readBlock()
		if err != nil {
			z.err = err
			return 0, z.err
		}
		z.final = final
	}
	return z.pend.Read(p)
}

// Close implements io.Closer. It does not close the underlying reader.
func (z *Reader) Close() error {
	if z.err != nil && z.err != io.EOF {
		return z.err
	}
	return nil
}

// Reset discards z's state and makes it equivalent to the result of calling
// NewReader on r, but saves the allocation.
func (z *Reader) Reset(r io.Reader) error {
	z.reset(MakeByteSource(r))
	return nil
}

// ReadBlock decodes exactly one DEFLATE block and returns its decompressed
// bytes together with whether it was the stream's final block. It exists so
// a caller building a random-access index (package gzindex) can checkpoint
// decoder state between blocks instead of at arbitrary byte boundaries,
// mirroring the block-by-block ReadBlock the teacher's zran/gzran packages
// use for the same purpose.
func (z *Reader) ReadBlock() ([]byte, bool, error) {
	if z.err != nil {
		return nil, false, z.err
	}
	if z.final {
		z.err = io.EOF
		return nil, false, z.err
	}
	z.pend.Reset()
	final, err := z.bd.readBlock()
	if err != nil {
		z.err = err
		return nil, false, err
	}
	z.final = final
	out := make([]byte, z.pend.Len())
	copy(out, z.pend.Bytes())
	return out, final, nil
}

// Checkpoint captures enough decoder state, taken between two blocks, to
// resume decoding later without replaying the stream from the start: the
// bit reader's position and leftover bit accumulator, and the sliding
// window. No Huffman tables survive a block boundary (the next block always
// builds its own), so none need to be saved.
type Checkpoint struct {
	CompressedOffset int64 // bytes consumed from the ByteSource so far
	Bits             uint32
	NumBits          uint
	Hist             [MaxHist]byte
	HistPos          int
	HistCount        int64
}

// Snapshot returns a Checkpoint for z's current state. It must only be
// called between calls to ReadBlock (or before the first one), never in the
// middle of Read-based streaming, since it captures no mid-block state.
func (z *Reader) Snapshot() Checkpoint {
	return Checkpoint{
		CompressedOffset: z.br.roffset,
		Bits:             z.br.b,
		NumBits:          z.br.nb,
		Hist:             z.hist.buf,
		HistPos:          z.hist.pos,
		HistCount:        z.hist.count,
	}
}

// Resume builds a Reader that continues decoding from cp, reading further
// compressed bytes from r. The caller is responsible for positioning r at
// the byte offset the Checkpoint was taken from (cp.CompressedOffset bytes
// into whatever byte source produced it).
func Resume(r ByteSource, cp Checkpoint) *Reader {
	z := new(Reader)
	z.br = bitReader{r: r, b: cp.Bits, nb: cp.NumBits, roffset: cp.CompressedOffset}
	z.hist = History{buf: cp.Hist, pos: cp.HistPos, count: cp.HistCount}
	z.bd = blockDecoder{br: &z.br, hist: &z.hist, w: &z.pend}
	return z
}

// Decompress reads a complete DEFLATE stream from r and returns its
// decompressed content.
func Decompress(r io.Reader) ([]byte, error) {
	zr := NewReader(r)
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return out, zr.Close()
}

// DecompressTo streams a complete DEFLATE stream from r to w.
func DecompressTo(r io.Reader, w io.Writer) error {
	zr := NewReader(r)
	defer zr.Close()
	if _, err := io.Copy(w, zr); err != nil {
		return err
	}
	return zr.Close()
}

// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gzip implements reading of gzip-compressed files, as specified in
// RFC 1952, layered on top of flate's Inflater.
package gzip

import (
	"hash/crc32"
	"io"
	"time"

	"github.com/relvacode/deflate/flate"
)

const (
	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 8
	flagText    = 1 << 0
	flagHdrCrc  = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4
)

// HeaderError is the error type for RFC 1952 framing faults: a header (the
// ten-byte fixed part or one of its optional extensions) that does not parse,
// and a footer that does not match the decompressed data (ErrChecksum).
type HeaderError string

func (e HeaderError) Error() string { return "gzip: " + string(e) }

var (
	// ErrHeader is returned when a NUL-terminated name or comment field is
	// longer than the Reader's 512-byte buffer. A short read within a header
	// field returns the underlying read error instead.
	ErrHeader = HeaderError("invalid header")
	// ErrBadMagic is returned when the first two header bytes are not
	// 0x1F, 0x8B (spec.md §4.6, BadGzipMagic).
	ErrBadMagic = HeaderError("bad magic bytes")
	// ErrUnsupportedMethod is returned when the compression-method byte is
	// not 8 (DEFLATE), the only method RFC 1952 and this core support.
	ErrUnsupportedMethod = HeaderError("unsupported compression method")
	// ErrReservedFlagSet is returned when any of flag bits 5-7, reserved by
	// RFC 1952, is set.
	ErrReservedFlagSet = HeaderError("reserved flag bit set")
	// ErrChecksum is returned when the trailing CRC-32/ISIZE footer does not
	// match the decompressed content.
	ErrChecksum = HeaderError("invalid checksum")
)

const flagReservedMask = 1<<5 | 1<<6 | 1<<7

// Header holds the optional metadata carried by a gzip member.
type Header struct {
	Comment string
	Extra   []byte
	ModTime time.Time
	Name    string
	OS      byte
}

// Reader decodes a single gzip member: its header, the DEFLATE stream it
// wraps (via flate.Reader), and its CRC-32/ISIZE trailer. Unlike the
// teacher, Reader only supports a single member per stream — spec.md's
// gzip container is "one DEFLATE stream with a fixed framing" (§4), with no
// mention of multistream concatenation, so that surface is left out rather
// than carried unused.
type Reader struct {
	Header
	r      flate.ByteSource
	flate  io.ReadCloser
	digest uint32
	size   uint32
	flg    byte
	buf    [512]byte
	err    error
}

// NewReader constructs a Reader over r, parsing and validating the gzip
// header before returning. If r does not already implement
// flate.ByteSource, NewReader wraps it in a buffered reader.
func NewReader(r io.Reader) (*Reader, error) {
	z := new(Reader)
	z.r = flate.MakeByteSource(r)
	if err := z.readHeader(); err != nil {
		return nil, err
	}
	return z, nil
}

func get4(p []byte) uint32 {
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
}

func (z *Reader) readString() (string, error) {
	var err error
	for i := 0; ; i++ {
		if i >= len(z.buf) {
			return "", ErrHeader
		}
		z.buf[i], err = z.r.ReadByte()
		if err != nil {
			return "", err
		}
		if z.buf[i] == 0 {
			return string(z.buf[:i]), nil
		}
	}
}

func (z *Reader) read2() (uint32, error) {
	if _, err := io.ReadFull(z.r, z.buf[:2]); err != nil {
		return 0, err
	}
	return uint32(z.buf[0]) | uint32(z.buf[1])<<8, nil
}

func (z *Reader) readHeader() error {
	if _, err := io.ReadFull(z.r, z.buf[:10]); err != nil {
		return err
	}
	if z.buf[0] != gzipID1 || z.buf[1] != gzipID2 {
		return ErrBadMagic
	}
	if z.buf[2] != gzipDeflate {
		return ErrUnsupportedMethod
	}
	z.flg = z.buf[3]
	if z.flg&flagReservedMask != 0 {
		return ErrReservedFlagSet
	}
	z.ModTime = time.Unix(int64(get4(z.buf[4:8])), 0)
	// z.buf[8] is XFL (compression effort hint), z.buf[9] is OS.
	z.OS = z.buf[9]

	if z.flg&flagExtra != 0 {
		n, err := z.read2()
		if err != nil {
			return err
		}
		data := make([]byte, n)
		if _, err := io.ReadFull(z.r, data); err != nil {
			return err
		}
		z.Extra = data
	}
	if z.flg&flagName != 0 {
		s, err := z.readString()
		if err != nil {
			return err
		}
		z.Name = s
	}
	if z.flg&flagComment != 0 {
		s, err := z.readString()
		if err != nil {
			return err
		}
		z.Comment = s
	}
	if z.flg&flagHdrCrc != 0 {
		// spec.md §4.6: the header CRC-16 exists in the framing but is not
		// verified by this core; consume the two bytes and move on.
		if _, err := z.read2(); err != nil {
			return err
		}
	}

	z.flate = flate.NewReader(z.r)
	return nil
}

// Read implements io.Reader, decompressing the wrapped DEFLATE stream and
// accumulating its CRC-32 and size for trailer verification.
func (z *Reader) Read(p []byte) (n int, err error) {
	if z.err != nil {
		return 0, z.err
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err = z.flate.Read(p)
	z.digest = crc32.Update(z.digest, crc32.IEEETable, p[:n])
	z.size += uint32(n)
	if n != 0 || err != io.EOF {
		z.err = err
		return
	}

	if err := z.verifyFooter(); err != nil {
		z.err = err
		return 0, err
	}
	z.err = io.EOF
	return 0, io.EOF
}

// verifyFooter reads the trailing 4-byte CRC-32 and 4-byte ISIZE and checks
// them against the bytes seen so far.
func (z *Reader) verifyFooter() error {
	if _, err := io.ReadFull(z.r, z.buf[:8]); err != nil {
		return err
	}
	wantCRC, wantSize := get4(z.buf[:4]), get4(z.buf[4:8])
	if wantCRC != z.digest || wantSize != z.size {
		return ErrChecksum
	}
	return nil
}

// ReadBlock decodes exactly one DEFLATE block of the wrapped stream,
// accumulating CRC-32 and size exactly as Read does, and verifies the
// footer once the final block has been consumed. It exists for package
// gzindex's block-boundary checkpointing, mirroring Read's per-call
// accounting at a finer grain.
func (z *Reader) ReadBlock() (block []byte, final bool, err error) {
	if z.err != nil {
		return nil, false, z.err
	}
	fr := z.flate.(*flate.Reader)
	block, final, err = fr.ReadBlock()
	if err != nil {
		z.err = err
		return block, final, err
	}
	z.digest = crc32.Update(z.digest, crc32.IEEETable, block)
	z.size += uint32(len(block))
	if final {
		if ferr := z.verifyFooter(); ferr != nil {
			z.err = ferr
			return block, final, ferr
		}
	}
	return block, final, nil
}

// Checkpoint captures z's current decoding position: the flate-level
// Checkpoint plus the uncompressed byte offset reached so far. It must only
// be called between ReadBlock calls.
func (z *Reader) Checkpoint() (flate.Checkpoint, int64) {
	fr := z.flate.(*flate.Reader)
	return fr.Snapshot(), int64(z.size)
}

// Close closes the Reader. It does not close the underlying io.Reader.
func (z *Reader) Close() error { return z.flate.Close() }

// Decompress reads a complete gzip member from r and returns its
// decompressed content, verifying the trailing CRC-32 and length.
func Decompress(r io.Reader) ([]byte, error) {
	zr, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return out, zr.Close()
}

// DecompressTo streams a complete gzip member from r to w, verifying the
// trailing CRC-32 and length.
func DecompressTo(r io.Reader, w io.Writer) error {
	zr, err := NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()
	if _, err := io.Copy(w, zr); err != nil {
		return err
	}
	return zr.Close()
}

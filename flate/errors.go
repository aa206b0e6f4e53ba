// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "strconv"

// Kind distinguishes the format violations a CorruptInputError can report,
// matching the error kinds enumerated in RFC 1951's block grammar.
type Kind string

const (
	KindReservedBlockType      Kind = "reserved block type"
	KindBadStoredLength        Kind = "bad stored-block length"
	KindUnderFull              Kind = "under-full huffman code"
	KindOverFull               Kind = "over-full huffman code"
	KindNoPreviousLength       Kind = "code-length run with no previous length"
	KindRunOverflow            Kind = "code-length run overflows declared totals"
	KindReservedLengthSymbol   Kind = "reserved length symbol"
	KindReservedDistanceSymbol Kind = "reserved distance symbol"
	KindEmptyDistanceCode      Kind = "length symbol under empty distance code"
	KindBadCodeTree            Kind = "incomplete or invalid code tree"
)

// CorruptInputError reports a format violation in the compressed stream.
type CorruptInputError struct {
	Kind   Kind
	Offset int64 // bit-source byte offset, when known
}

func (e *CorruptInputError) Error() string {
	s := "flate: corrupt input: " + string(e.Kind)
	if e.Offset != 0 {
		s += " (before byte offset " + strconv.FormatInt(e.Offset, 10) + ")"
	}
	return s
}

// InternalError reports a logic fault in a call to the decoder itself —
// arguments out of range for History.Copy in particular — distinct from a
// malformed compressed stream.
type InternalError string

func (e InternalError) Error() string { return "flate: internal error: " + string(e) }

// ReadError reports an error encountered while reading the underlying byte
// source.
type ReadError struct {
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return "flate: read error at offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Err.Error()
}

// WriteError reports an error encountered while writing to the byte sink.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "flate: write error: " + e.Err.Error() }

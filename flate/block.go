// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "io"

// The next constants come from RFC 1951 §3.2.7. MaxLit is 288, not the 286
// some ports use internally, because spec.md's data model names the fixed
// literal/length code as having 288 symbols and states HLIT's derived range
// as [257, 288] directly. Symbols 286 and 287 may carry a code length (the
// fixed code gives them 8 bits); huffmanBody rejects them as reserved when
// one is decoded.
const (
	MaxLit   = 288
	MaxDist  = 32
	NumCodes = 19 // number of codes in the Huffman meta-code
)

// codeOrder is the fixed fill order for the 19 code-length-code lengths
// (RFC 1951 §3.2.7); position i in the stream sets the length of
// code-length symbol codeOrder[i].
var codeOrder = [...]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// distanceCode wraps the distance CanonicalCode for a block. absent is the
// "empty distance code" marker (spec.md §3): a literals-only block, where
// any length symbol referencing a distance is a format error rather than a
// lookup against a nil code.
type distanceCode struct {
	code   *huffmanCode
	absent bool
}

// blockDecoder reads and applies exactly one DEFLATE block (the
// BlockDecoder component): stored, fixed-Huffman, or dynamic-Huffman.
type blockDecoder struct {
	br   *bitReader
	hist *History
	w    io.ByteWriter

	// scratch reused across dynamic blocks within one stream.
	codeLenLens [NumCodes]int
	lens        [MaxLit + MaxDist]int
}

// readBlock reads the 3-bit block header and its body, reporting whether
// this was the final block in the stream.
func (d *blockDecoder) readBlock() (final bool, err error) {
	hdr, err := d.br.ReadBits(3)
	if err != nil {
		return false, err
	}
	final = hdr&1 == 1
	switch (hdr >> 1) & 3 {
	case 0:
		err = d.storedBlock()
	case 1:
		lit, dist := fixedCodes()
		err = d.huffmanBody(lit, distanceCode{code: dist})
	case 2:
		lit, dist, distAbsent, derr := d.dynamicHeader()
		if derr != nil {
			return final, derr
		}
		err = d.huffmanBody(lit, distanceCode{code: dist, absent: distAbsent})
	default:
		err = &CorruptInputError{Kind: KindReservedBlockType, Offset: d.br.roffset}
	}
	return final, err
}

// storedBlock reads an uncompressed block (type 0): align to a byte
// boundary, read LEN/NLEN, then copy LEN raw bytes to History and sink.
func (d *blockDecoder) storedBlock() error {
	d.br.AlignToByte()
	length, err := d.br.ReadAlignedUint16LE()
	if err != nil {
		return err
	}
	nlength, err := d.br.ReadAlignedUint16LE()
	if err != nil {
		return err
	}
	// The len XOR 0xFFFF == nlen check exactly as stated; the older ^len
	// form is buggy under sign extension and must not be used.
	if length^0xffff != nlength {
		return &CorruptInputError{Kind: KindBadStoredLength, Offset: d.br.roffset}
	}
	for i := 0; i < int(length); i++ {
		bits, err := d.br.ReadBits(8)
		if err != nil {
			return err
		}
		b := byte(bits)
		if err := d.w.WriteByte(b); err != nil {
			return &WriteError{Err: err}
		}
		d.hist.Append(b)
	}
	return nil
}

// dynamicHeader reads a type-2 block's header: the meta-Huffman code-length
// code, then the literal/length and distance code-length vectors it
// encodes, and builds the two resulting CanonicalCodes.
func (d *blockDecoder) dynamicHeader() (lit, dist *huffmanCode, distAbsent bool, err error) {
	hlit, err := d.br.ReadBits(5)
	if err != nil {
		return
	}
	hdist, err := d.br.ReadBits(5)
	if err != nil {
		return
	}
	hclen, err := d.br.ReadBits(4)
	if err != nil {
		return
	}
	numLit := int(hlit) + 257
	numDist := int(hdist) + 1
	numCL := int(hclen) + 4

	for i := range d.codeLenLens {
		d.codeLenLens[i] = 0
	}
	for i := 0; i < numCL; i++ {
		v, rerr := d.br.ReadBits(3)
		if rerr != nil {
			err = rerr
			return
		}
		d.codeLenLens[codeOrder[i]] = int(v)
	}
	clCode, cerr := newHuffmanCode(d.codeLenLens[:], false)
	if cerr != nil {
		err = cerr
		return
	}

	total := numLit + numDist
	for i := range d.lens[:total] {
		d.lens[i] = 0
	}
	i := 0
	for i < total {
		sym, derr := clCode.Decode(d.br)
		if derr != nil {
			err = derr
			return
		}
		switch {
		case sym < 16:
			d.lens[i] = sym
			i++
		case sym == 16:
			if i == 0 {
				err = &CorruptInputError{Kind: KindNoPreviousLength, Offset: d.br.roffset}
				return
			}
			var extra uint32
			extra, err = d.br.ReadBits(2)
			if err != nil {
				return
			}
			n := int(extra) + 3
			if i+n > total {
				err = &CorruptInputError{Kind: KindRunOverflow, Offset: d.br.roffset}
				return
			}
			prev := d.lens[i-1]
			for j := 0; j < n; j++ {
				d.lens[i] = prev
				i++
			}
		case sym == 17:
			var extra uint32
			extra, err = d.br.ReadBits(3)
			if err != nil {
				return
			}
			n := int(extra) + 3
			if i+n > total {
				err = &CorruptInputError{Kind: KindRunOverflow, Offset: d.br.roffset}
				return
			}
			for j := 0; j < n; j++ {
				d.lens[i] = 0
				i++
			}
		case sym == 18:
			var extra uint32
			extra, err = d.br.ReadBits(7)
			if err != nil {
				return
			}
			n := int(extra) + 11
			if i+n > total {
				err = &CorruptInputError{Kind: KindRunOverflow, Offset: d.br.roffset}
				return
			}
			for j := 0; j < n; j++ {
				d.lens[i] = 0
				i++
			}
		default:
			err = InternalError("dynamicHeader: unexpected code-length symbol")
			return
		}
	}

	litLens := d.lens[:numLit]
	distLens := d.lens[numLit:total]

	lit, err = newHuffmanCode(litLens, false)
	if err != nil {
		return
	}

	if numDist == 1 && distLens[0] == 0 {
		return lit, nil, true, nil
	}
	dist, derr := newHuffmanCode(distLens, true)
	if derr != nil {
		if cie, ok := derr.(*CorruptInputError); ok &&
			(cie.Kind == KindUnderFull || cie.Kind == KindOverFull) {
			derr = &CorruptInputError{Kind: KindBadCodeTree, Offset: d.br.roffset}
		}
		err = derr
		return
	}
	return lit, dist, false, nil
}

// huffmanBody decodes a fixed or dynamic block's body: literals, runs, and
// the end-of-block marker.
func (d *blockDecoder) huffmanBody(lit *huffmanCode, dist distanceCode) error {
	for {
		sym, err := lit.Decode(d.br)
		if err != nil {
			return err
		}
		switch {
		case sym < 256:
			b := byte(sym)
			if err := d.w.WriteByte(b); err != nil {
				return &WriteError{Err: err}
			}
			d.hist.Append(b)
		case sym == 256:
			return nil
		case sym <= 285:
			length, err := runLength(sym, d.br)
			if err != nil {
				return err
			}
			if dist.absent || dist.code == nil {
				return &CorruptInputError{Kind: KindEmptyDistanceCode, Offset: d.br.roffset}
			}
			dsym, err := dist.code.Decode(d.br)
			if err != nil {
				return err
			}
			distance, err := distanceValue(dsym, d.br)
			if err != nil {
				return err
			}
			if err := d.hist.Copy(distance, length, d.w); err != nil {
				return err
			}
		default: // 286, 287: reserved
			return &CorruptInputError{Kind: KindReservedLengthSymbol, Offset: d.br.roffset}
		}
	}
}

// runLength computes the match length for literal/length symbol sym
// (257-285), reading any extra bits the symbol requires.
func runLength(sym int, br *bitReader) (int, error) {
	switch {
	case sym <= 264:
		return sym - 254, nil
	case sym == 285:
		return 258, nil
	default:
		extra := (sym - 261) / 4
		base := (((sym-265)%4+4)<<uint(extra) + 3)
		v, err := br.ReadBits(uint(extra))
		if err != nil {
			return 0, err
		}
		return base + int(v), nil
	}
}

// distanceValue computes the back-reference distance for distance symbol
// sym (0-29), reading any extra bits the symbol requires.
func distanceValue(sym int, br *bitReader) (int, error) {
	switch {
	case sym <= 3:
		return sym + 1, nil
	case sym >= 30:
		return 0, &CorruptInputError{Kind: KindReservedDistanceSymbol, Offset: br.roffset}
	default:
		extra := sym/2 - 1
		base := (sym%2+2)<<uint(extra) + 1
		v, err := br.ReadBits(uint(extra))
		if err != nil {
			return 0, err
		}
		return base + int(v), nil
	}
}

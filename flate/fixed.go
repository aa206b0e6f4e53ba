// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "sync"

// RFC 1951 §3.2.6's fixed literal/length code: 8 bits for 0-143, 9 bits for
// 144-255, 7 bits for 256-279, 8 bits for 280-287. The fixed distance code
// uses 5 bits for all 32 symbols.
const (
	numFixedLitSyms  = 288
	numFixedDistSyms = 32
)

var (
	fixedLiteralCode  *huffmanCode
	fixedDistanceCode *huffmanCode
	fixedOnce         sync.Once
)

// fixedCodes returns the two process-wide fixed Huffman codes, building
// them on first use. They are immutable once built and never mutated.
func fixedCodes() (lit, dist *huffmanCode) {
	fixedOnce.Do(func() {
		lengths := make([]int, numFixedLitSyms)
		for i := 0; i < 144; i++ {
			lengths[i] = 8
		}
		for i := 144; i < 256; i++ {
			lengths[i] = 9
		}
		for i := 256; i < 280; i++ {
			lengths[i] = 7
		}
		for i := 280; i < numFixedLitSyms; i++ {
			lengths[i] = 8
		}
		var err error
		fixedLiteralCode, err = newHuffmanCode(lengths, false)
		if err != nil {
			panic("flate: fixed literal code: " + err.Error())
		}

		distLengths := make([]int, numFixedDistSyms)
		for i := range distLengths {
			distLengths[i] = 5
		}
		fixedDistanceCode, err = newHuffmanCode(distLengths, false)
		if err != nil {
			panic("flate: fixed distance code: " + err.Error())
		}
	})
	return fixedLiteralCode, fixedDistanceCode
}

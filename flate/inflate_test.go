package flate

import (
	"bytes"
	"testing"
)

// boundary scenarios are spec.md §8's table of bit strings read LSB-first
// and their expected decompressed output (as hex bytes) or error kind.
func TestBoundaryScenarios(t *testing.T) {
	cases := []struct {
		name     string
		bits     string
		wantHex  string
		wantKind Kind
	}{
		{
			name:    "empty stored block",
			bits:    "1 00 00000 0000000000000000 1111111111111111",
			wantHex: "",
		},
		{
			name:    "one stored block",
			bits:    "1 00 00000 1100000000000000 0011111111111111 10100000 00101000 11000100",
			wantHex: "051423",
		},
		{
			name: "two stored blocks",
			bits: `0 00 00000 0100000000000000 1011111111111111 10100000 00101000
			       1 00 00000 1000000000000000 0111111111111111 11000100`,
			wantHex: "051423",
		},
		{
			name:    "fixed huffman end of block only",
			bits:    "1 10 0000000",
			wantHex: "",
		},
		{
			name:    "fixed huffman literals and run",
			bits:    "1 10 00110000 10110000 10111111 110010000 111000000 111111111 0000000",
			wantHex: "00808f90c0ff",
		},
		{
			name:    "overlapping run",
			bits:    "1 10 00110001 0000010 00000 0000000",
			wantHex: "0101010101",
		},
		{
			name:     "reserved block type",
			bits:     "1 11 00000",
			wantKind: KindReservedBlockType,
		},
		{
			name:     "bad stored length",
			bits:     "1 00 00000 0010000000010000 1111100100110101",
			wantKind: KindBadStoredLength,
		},
		{
			name:     "reserved length symbol",
			bits:     "1 10 11000110",
			wantKind: KindReservedLengthSymbol,
		},
		{
			name:     "reserved distance symbol",
			bits:     "1 10 00110000 0000001 11110",
			wantKind: KindReservedDistanceSymbol,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := bytes.NewReader(bitsToBytes(c.bits))
			got, err := Decompress(in)
			if c.wantKind != "" {
				cie, ok := err.(*CorruptInputError)
				if !ok {
					t.Fatalf("got err=%v, want CorruptInputError{Kind: %s}", err, c.wantKind)
				}
				if cie.Kind != c.wantKind {
					t.Fatalf("got Kind=%s, want %s", cie.Kind, c.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			wantBytes := hexToBytes(t, c.wantHex)
			if !bytes.Equal(got, wantBytes) {
				t.Errorf("got %x, want %s", got, c.wantHex)
			}
		})
	}
}

func hexToBytes(t *testing.T, s string) []byte {
	t.Helper()
	if len(s)%2 != 0 {
		t.Fatalf("odd-length hex string %q", s)
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi := hexNibble(t, s[2*i])
		lo := hexNibble(t, s[2*i+1])
		out[i] = hi<<4 | lo
	}
	return out
}

func hexNibble(t *testing.T, c byte) byte {
	t.Helper()
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		t.Fatalf("invalid hex digit %q", c)
		return 0
	}
}

func TestDecompressToStreams(t *testing.T) {
	in := bytes.NewReader(bitsToBytes("1 10 00110000 10110000 10111111 110010000 111000000 111111111 0000000"))
	var out bytes.Buffer
	if err := DecompressTo(in, &out); err != nil {
		t.Fatalf("DecompressTo: %v", err)
	}
	want := hexToBytes(t, "00808f90c0ff")
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("got %x, want %x", out.Bytes(), want)
	}
}

func TestDecompressDeterministic(t *testing.T) {
	bits := "1 10 00110001 0000010 00000 0000000"
	data := bitsToBytes(bits)
	first, err := Decompress(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Decompress(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("non-deterministic output: %x vs %x", first, second)
	}
}

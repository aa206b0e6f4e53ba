package gzindex

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// helloGzip is "hello" gzip-compressed with a stored DEFLATE block.
var helloGzip = []byte{
	0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff,
	0x01, 0x05, 0x00, 0xfa, 0xff, 0x68, 0x65, 0x6c, 0x6c, 0x6f,
	0x86, 0xa6, 0x10, 0x36, 0x05, 0x00, 0x00, 0x00,
}

func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.gz")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildIndexAndExtractWhole(t *testing.T) {
	path := writeTestFile(t, helloGzip)
	idx, err := BuildIndex(path)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if len(idx.points) == 0 {
		t.Fatal("expected at least one access point")
	}
	got, err := idx.Extract(path, 0, 5)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestExtractMidStream(t *testing.T) {
	path := writeTestFile(t, helloGzip)
	idx, err := BuildIndex(path)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	got, err := idx.Extract(path, 2, 3)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(got) != "llo" {
		t.Errorf("got %q, want %q", got, "llo")
	}
}

func TestExtractPastEndReturnsEOF(t *testing.T) {
	path := writeTestFile(t, helloGzip)
	idx, err := BuildIndex(path)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	got, err := idx.Extract(path, 3, 10)
	if err != io.EOF {
		t.Fatalf("expected io.EOF for a request past the end of the stream")
	}
	if string(got) != "lo" {
		t.Errorf("got %q, want %q", got, "lo")
	}
}

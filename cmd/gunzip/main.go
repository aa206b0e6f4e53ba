// Command gunzip decompresses a single gzip file to a plaintext output
// file. Its shape — open input, decompress fully, write output, fatal on
// any error — follows JoshVarga-blast/cmd/blast/main.go, adapted from
// flag-based to the two positional arguments spec.md §6 specifies, and from
// stdlib log to capnslog for the diagnostic line, matching how the teacher
// repo itself logs.
package main

import (
	"os"

	"github.com/coreos/pkg/capnslog"

	"github.com/relvacode/deflate/gzip"
)

var plog = capnslog.NewPackageLogger("github.com/relvacode/deflate", "gunzip")

func main() {
	if len(os.Args) != 3 {
		plog.Fatalf("usage: gunzip <input.gz> <output>")
	}
	inputPath, outputPath := os.Args[1], os.Args[2]

	in, err := os.Open(inputPath)
	if err != nil {
		plog.Fatalf("gunzip: %v", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		plog.Fatalf("gunzip: %v", err)
	}

	if err := gzip.DecompressTo(in, out); err != nil {
		out.Close()
		plog.Fatalf("gunzip: %v", err)
	}
	if err := out.Close(); err != nil {
		plog.Fatalf("gunzip: %v", err)
	}
}

// Package source reads the text to be searched from files, standard input
// or compressed archives.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// Source is a named text ready to be searched.
type Source struct {
	Name string
	Text string
}

// Load reads path, decompressing it by extension (.gz, .zst, .lz4). The
// path "-" reads standard input.
func Load(ctx context.Context, path string) (Source, error) {
	if err := ctx.Err(); err != nil {
		return Source{}, err
	}

	if path == StdinName {
		return Read("stdin", os.Stdin)
	}

	// #nosec G304 - paths are supplied by the user on the command line
	f, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r, closeFn, err := decompressor(path, f)
	if err != nil {
		return Source{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer closeFn()

	return Read(path, r)
}

// Read reads all of r as UTF-8 text.
func Read(name string, r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if !utf8.Valid(data) {
		return Source{}, fmt.Errorf("%s is not valid UTF-8 text", name)
	}
	return Source{Name: name, Text: string(data)}, nil
}

// decompressor wraps r according to the file extension of path.
func decompressor(path string, r io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { _ = zr.Close() }, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case ".lz4":
		return lz4.NewReader(r), func() {}, nil
	default:
		return r, func() {}, nil
	}
}

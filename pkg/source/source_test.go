package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "abracadabra\nwith a second line\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestLoadPlain(t *testing.T) {
	path := writeFile(t, "plain.txt", []byte(sample))

	src, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Name)
	assert.Equal(t, sample, src.Text)
}

func TestLoadCompressed(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var zs bytes.Buffer
	zw, err := zstd.NewWriter(&zs)
	require.NoError(t, err)
	_, err = zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var l4 bytes.Buffer
	lw := lz4.NewWriter(&l4)
	_, err = lw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, lw.Close())

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{name: "gzip", file: "text.txt.gz", data: gz.Bytes()},
		{name: "zstd", file: "text.txt.zst", data: zs.Bytes()},
		{name: "lz4", file: "text.txt.lz4", data: l4.Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.data)
			src, err := Load(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, sample, src.Text)
		})
	}
}

func TestLoadCorruptGzip(t *testing.T) {
	path := writeFile(t, "broken.gz", []byte("definitely not gzip"))
	_, err := Load(context.Background(), path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, "whatever.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadRejectsInvalidUTF8(t *testing.T) {
	_, err := Read("bin", bytes.NewReader([]byte{0xff, 0xfe, 0x00}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestRead(t *testing.T) {
	src, err := Read("typed", strings.NewReader("héllo"))
	require.NoError(t, err)
	assert.Equal(t, Source{Name: "typed", Text: "héllo"}, src)
}

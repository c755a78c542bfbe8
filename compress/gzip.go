package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/nbt/errs"
)

// gzipWriterPool pools gzip writers; Reset rebinds them to a new output.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

// GzipCompressor reads and writes gzip streams (RFC 1952), the wrapper of
// level.dat, player data and most standalone NBT files.
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip compressor with default settings.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress compresses the input data into a single gzip member.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	gw, _ := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(gw)
	gw.Reset(&buf)

	if _, err := gw.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses gzip data. Concatenated members are joined.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	defer gr.Close()

	return readLimited(gr, "gzip", len(data))
}

// readLimited drains r, failing once more than MaxDecompressedSize bytes are produced.
func readLimited(r io.Reader, algorithm string, sizeHint int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(min(sizeHint*4, MaxDecompressedSize))

	n, err := buf.ReadFrom(io.LimitReader(r, MaxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", algorithm, err)
	}
	if n > MaxDecompressedSize {
		return nil, fmt.Errorf("%w: %s output over %d bytes", errs.ErrDecompressedTooLarge, algorithm, MaxDecompressedSize)
	}

	return buf.Bytes(), nil
}

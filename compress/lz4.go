package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/nbt/errs"
)

// maxLZ4Expansion is the largest output/input ratio of an LZ4 block: every
// extra match length byte adds at most 255 output bytes.
const maxLZ4Expansion = 255

// lz4CompressorPool pools lz4.Compressor instances for reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor stores documents as a single LZ4 block. The block format has
// no header, so the decompressed size is found by retrying with larger buffers.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block.
//
// The output buffer starts at 4x the input size and doubles on
// lz4.ErrInvalidSourceShortBuffer. A block cannot expand more than
// maxLZ4Expansion times, so running past that bound means corrupt input.
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: errs.ErrDecompressedTooLarge past MaxDecompressedSize, or other decompression errors
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bound := min(len(data)*maxLZ4Expansion+64, MaxDecompressedSize)
	bufSize := min(len(data)*4, bound)
	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || bufSize >= bound {
			if bound == MaxDecompressedSize && bufSize >= bound {
				return nil, fmt.Errorf("%w: lz4 output over %d bytes", errs.ErrDecompressedTooLarge, MaxDecompressedSize)
			}

			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		bufSize = min(bufSize*2, bound)
	}
}

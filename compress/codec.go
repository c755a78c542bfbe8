package compress

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// MaxDecompressedSize bounds the output of every Decompressor in this package.
// Decompressing past it fails with errs.ErrDecompressedTooLarge.
const MaxDecompressedSize = 128 * 1024 * 1024

// Compressor compresses an encoded NBT document.
//
// Memory management:
//   - Returned slice is owned by the caller unless documented otherwise
//   - Input slice is not modified
//   - Internal encoders are pooled and reused
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores an encoded NBT document from its compressed form.
//
// Implementations return an error for corrupted input or for input produced
// by a different algorithm, and never produce more than MaxDecompressedSize
// bytes.
//
// Thread Safety: all Decompressor implementations in this package are safe
// for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes a single compression round-trip.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data
	DecompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression. Returns 0.0 if the
// original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses data with the given algorithm, decompresses the result
// and reports sizes and timings. It fails if the round-trip does not
// reproduce data.
func Measure(compressionType format.CompressionType, data []byte) (CompressionStats, error) {
	stats := CompressionStats{Algorithm: compressionType, OriginalSize: int64(len(data))}

	codec, err := GetCodec(compressionType)
	if err != nil {
		return stats, err
	}

	start := time.Now()
	compressed, err := codec.Compress(data)
	if err != nil {
		return stats, fmt.Errorf("%s compress: %w", compressionType, err)
	}
	stats.CompressionTimeNs = time.Since(start).Nanoseconds()
	stats.CompressedSize = int64(len(compressed))

	start = time.Now()
	restored, err := codec.Decompress(compressed)
	if err != nil {
		return stats, fmt.Errorf("%s decompress: %w", compressionType, err)
	}
	stats.DecompressionTimeNs = time.Since(start).Nanoseconds()

	if !bytes.Equal(restored, data) {
		return stats, fmt.Errorf("%s round-trip mismatch: %d bytes in, %d bytes out", compressionType, len(data), len(restored))
	}

	return stats, nil
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Error wrapping errs.ErrUnsupportedCompression for unknown types
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionZlib:
		return NewZlibCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression %s", errs.ErrUnsupportedCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZlib: NewZlibCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Detect guesses the wrapper of an NBT file from its leading bytes.
//
// Gzip, zlib and zstd are recognized by their headers. Anything else is
// reported as CompressionNone; S2 and LZ4 blocks carry no magic and are
// never detected.
func Detect(data []byte) format.CompressionType {
	switch {
	case len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B:
		return format.CompressionGzip
	case len(data) >= 4 && bytes.Equal(data[:4], zstdMagic):
		return format.CompressionZstd
	case len(data) >= 2 && data[0]&0x0F == 8 && data[0]>>4 <= 7 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0:
		return format.CompressionZlib
	default:
		return format.CompressionNone
	}
}

package compress

// ZstdCompressor provides Zstandard compression for archived NBT data.
//
// The default build uses the pure Go klauspost/compress/zstd implementation.
// Building with the nbt_cgozstd tag switches to the cgo valyala/gozstd
// bindings; both produce standard zstd frames and interoperate.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

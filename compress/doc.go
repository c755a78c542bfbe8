// Package compress provides the compression wrappers NBT documents are stored in.
//
// NBT itself is uncompressed; files put the encoded document inside a
// general-purpose container. Standalone files such as level.dat use gzip,
// region file chunks use zlib, and servers.dat is stored raw. Zstd, S2 and
// LZ4 are offered for archival and caching layers.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Built-in codecs are looked up by format.CompressionType:
//
//	codec, err := compress.GetCodec(format.CompressionGzip)
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(fileBytes)
//
// Detect recognizes gzip, zlib and zstd input by its header, which is how
// tools open a file of unknown wrapping:
//
//	codec, _ := compress.GetCodec(compress.Detect(fileBytes))
//
// # Supported Algorithms
//
//   - None: pass-through, returns the input slice
//   - Gzip: klauspost/compress/gzip with pooled writers
//   - Zlib: klauspost/compress/zlib with pooled writers
//   - Zstd: klauspost/compress/zstd with pooled encoders and decoders, or
//     valyala/gozstd when built with the nbt_cgozstd tag
//   - S2: klauspost/compress/s2 block format
//   - LZ4: pierrec/lz4 block format
//
// # Safety
//
// Decompression never produces more than MaxDecompressedSize bytes; larger
// outputs fail with errs.ErrDecompressedTooLarge instead of exhausting
// memory on hostile input.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use.
package compress

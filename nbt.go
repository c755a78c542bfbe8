// Package nbt reads and writes NBT (Named Binary Tag), the binary tree format
// Minecraft uses for worlds, player data, chunks and item stacks.
//
// A document is a single named Compound tag. Values are big-endian, strings
// are length-prefixed modified UTF-8, and the format is always byte-exact:
// decoding and re-encoding a document reproduces its bytes.
//
// # Core Features
//
//   - Tag value model with typed accessors and compound/list operations (package tag)
//   - Hardened decoder: bounds-checked reads, nesting limit, no allocation
//     beyond what the input can hold (package codec)
//   - Big-endian Java Edition and little-endian Bedrock Edition byte orders
//   - File wrappers: gzip, zlib, zstd, S2, LZ4 with detection (package compress)
//   - SNBT, YAML and CBOR renderings (packages snbt, nbtyaml, convert)
//
// # Basic Usage
//
// Reading a level.dat file:
//
//	data, _ := os.ReadFile("level.dat")
//	root, compression, err := nbt.DecodeCompressed(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	level, _ := root.Get("Data")
//	name, _ := level.Get("LevelName")
//
// Building and writing a document:
//
//	root := tag.Compound(
//	    tag.String("Bananrama").Named("name"),
//	).Named("hello world")
//	data, err := nbt.EncodeCompressed(root, format.CompressionGzip)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec and
// compress packages. For repeated use with the same options, create a
// codec.Decoder or codec.Encoder once and reuse it.
package nbt

import (
	"fmt"

	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/compress"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/hash"
	"github.com/arloliu/nbt/tag"
)

var (
	defaultDecoder = mustDecoder()
	defaultEncoder = mustEncoder()
)

func mustDecoder() *codec.Decoder {
	dec, err := codec.NewDecoder()
	if err != nil {
		panic(err)
	}

	return dec
}

func mustEncoder() *codec.Encoder {
	enc, err := codec.NewEncoder()
	if err != nil {
		panic(err)
	}

	return enc
}

func decoderFor(opts []codec.Option) (*codec.Decoder, error) {
	if len(opts) == 0 {
		return defaultDecoder, nil
	}

	return codec.NewDecoder(opts...)
}

func encoderFor(opts []codec.Option) (*codec.Encoder, error) {
	if len(opts) == 0 {
		return defaultEncoder, nil
	}

	return codec.NewEncoder(opts...)
}

// Decode decodes an uncompressed NBT document.
//
// Available options:
//   - codec.WithBigEndian() / codec.WithLittleEndian()
//   - codec.WithMaxDepth(n)
//   - codec.WithLogger(logger)
//
// Returns an error wrapping errs.ErrMalformedInput for invalid documents.
func Decode(data []byte, opts ...codec.Option) (*tag.Tag, error) {
	dec, err := decoderFor(opts)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// Encode encodes the root compound as an uncompressed NBT document.
//
// Returns an error wrapping errs.ErrInvalidTag for trees the format cannot
// represent.
func Encode(root *tag.Tag, opts ...codec.Option) ([]byte, error) {
	enc, err := encoderFor(opts)
	if err != nil {
		return nil, err
	}

	return enc.Encode(root)
}

// DecodeCompressed detects the wrapper of data (gzip, zlib, zstd or none),
// unwraps it and decodes the document. The detected compression is returned
// so the file can be written back the same way.
//
// Example:
//
//	root, compression, err := nbt.DecodeCompressed(data)
//	// ... modify root ...
//	out, err := nbt.EncodeCompressed(root, compression)
func DecodeCompressed(data []byte, opts ...codec.Option) (*tag.Tag, format.CompressionType, error) {
	compression := compress.Detect(data)

	raw, err := Decompress(data, compression)
	if err != nil {
		return nil, compression, err
	}

	root, err := Decode(raw, opts...)
	if err != nil {
		return nil, compression, err
	}

	return root, compression, nil
}

// EncodeCompressed encodes the root compound and wraps it with the given
// compression.
func EncodeCompressed(root *tag.Tag, compression format.CompressionType, opts ...codec.Option) ([]byte, error) {
	c, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	raw, err := Encode(root, opts...)
	if err != nil {
		return nil, err
	}

	out, err := c.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("%s compression: %w", compression, err)
	}

	return out, nil
}

// Decompress unwraps data with the given compression.
func Decompress(data []byte, compression format.CompressionType) ([]byte, error) {
	c, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	raw, err := c.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s decompression: %w", compression, err)
	}

	return raw, nil
}

// Fingerprint returns the 64-bit xxHash of the big-endian encoding of root.
//
// Equal trees have equal fingerprints, which makes it a cheap change
// detector for cached chunks and player files. Trees the encoder rejects
// return its error.
func Fingerprint(root *tag.Tag) (uint64, error) {
	data, err := defaultEncoder.Encode(root)
	if err != nil {
		return 0, err
	}

	return hash.Sum64(data), nil
}

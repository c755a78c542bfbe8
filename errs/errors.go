// Package errs defines the sentinel errors returned by the nbt packages.
//
// Errors are wrapped with context using fmt.Errorf("%w: ...") so callers
// should compare with errors.Is:
//
//	root, err := nbt.Decode(data)
//	if errors.Is(err, errs.ErrMalformedInput) {
//	    // truncated or corrupt document
//	}
package errs

import "errors"

// Codec errors.
var (
	// ErrMalformedInput is returned by the decoder for truncated buffers, unknown
	// kind bytes, negative or oversized lengths and missing End terminators.
	ErrMalformedInput = errors.New("malformed NBT input")

	// ErrInvalidTag is returned by the encoder for trees it refuses to serialize.
	ErrInvalidTag = errors.New("invalid NBT tag")

	// ErrMaxDepthExceeded is wrapped together with ErrMalformedInput or
	// ErrInvalidTag when nesting goes past the configured limit.
	ErrMaxDepthExceeded = errors.New("maximum nesting depth exceeded")

	// ErrStringTooLong is wrapped with ErrInvalidTag when a string or name does
	// not fit the uint16 length prefix.
	ErrStringTooLong = errors.New("string too long")

	// ErrInvalidUTF8 is wrapped with ErrMalformedInput when a string payload is
	// not valid modified UTF-8.
	ErrInvalidUTF8 = errors.New("invalid modified UTF-8")
)

// Value model errors.
var (
	// ErrKindMismatch is returned by typed accessors and mutators on a tag of a
	// different kind.
	ErrKindMismatch = errors.New("tag kind mismatch")

	// ErrIndexOutOfRange is returned by list element access.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidOption is returned when a functional option carries an invalid value.
	ErrInvalidOption = errors.New("invalid option")
)

// Conversion errors.
var (
	// ErrUnmappableValue is returned by convert.Infer for Go values with no
	// unambiguous tag kind.
	ErrUnmappableValue = errors.New("value cannot be mapped to a tag")

	// ErrHeterogeneousList is returned when list elements infer to different kinds.
	ErrHeterogeneousList = errors.New("heterogeneous list elements")
)

// Compression errors.
var (
	// ErrUnsupportedCompression is returned for unknown compression types.
	ErrUnsupportedCompression = errors.New("unsupported compression type")

	// ErrDecompressedTooLarge is returned when decompressed output exceeds the safety limit.
	ErrDecompressedTooLarge = errors.New("decompressed data exceeds limit")
)

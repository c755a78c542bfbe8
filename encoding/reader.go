package encoding

import (
	"fmt"

	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/mutf8"
)

// Reader reads NBT wire primitives from an immutable byte slice.
//
// Every read is bounds-checked: reading past the end of the data returns an
// error wrapping errs.ErrMalformedInput and leaves the cursor unchanged.
//
// Note: Reader is NOT thread-safe.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader positioned at the start of data.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{
		data:   data,
		engine: engine,
	}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) need(n int, what string) error {
	if n < 0 || n > len(r.data)-r.pos {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d, %d remaining",
			errs.ErrMalformedInput, what, n, r.pos, len(r.data)-r.pos)
	}

	return nil
}

// ReadKind reads a kind byte and rejects values outside the defined set.
func (r *Reader) ReadKind() (format.Kind, error) {
	if err := r.need(1, "kind"); err != nil {
		return 0, err
	}

	kind := format.Kind(r.data[r.pos])
	if !kind.IsValid() {
		return 0, fmt.Errorf("%w: unknown tag kind 0x%02X at offset %d", errs.ErrMalformedInput, byte(kind), r.pos)
	}
	r.pos++

	return kind, nil
}

// ReadInt8 reads a signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	if err := r.need(1, "byte"); err != nil {
		return 0, err
	}
	v := int8(r.data[r.pos]) //nolint:gosec
	r.pos++

	return v, nil
}

// ReadUint16 reads a 16-bit unsigned integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.need(2, "uint16"); err != nil {
		return 0, err
	}
	v := r.engine.Uint16(r.data[r.pos:])
	r.pos += 2

	return v, nil
}

// ReadInt16 reads a 16-bit signed integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err //nolint:gosec
}

// ReadUint32 reads 32 raw bits.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need(4, "uint32"); err != nil {
		return 0, err
	}
	v := r.engine.Uint32(r.data[r.pos:])
	r.pos += 4

	return v, nil
}

// ReadInt32 reads a 32-bit signed integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err //nolint:gosec
}

// ReadUint64 reads 64 raw bits.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.need(8, "uint64"); err != nil {
		return 0, err
	}
	v := r.engine.Uint64(r.data[r.pos:])
	r.pos += 8

	return v, nil
}

// ReadInt64 reads a 64-bit signed integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err //nolint:gosec
}

// ReadBytes returns the next n bytes as a sub-slice of the underlying data.
// The caller must copy the result if it outlives the input buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n, "byte run"); err != nil {
		return nil, err
	}
	v := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n

	return v, nil
}

// ReadInt32Slice reads count 32-bit signed integers.
func (r *Reader) ReadInt32Slice(count int) ([]int32, error) {
	if count < 0 || count > r.Remaining()/4 {
		return nil, fmt.Errorf("%w: %d int32 values at offset %d exceed %d remaining bytes",
			errs.ErrMalformedInput, count, r.pos, r.Remaining())
	}

	values := make([]int32, count)
	for i := range values {
		values[i] = int32(r.engine.Uint32(r.data[r.pos:])) //nolint:gosec
		r.pos += 4
	}

	return values, nil
}

// ReadInt64Slice reads count 64-bit signed integers.
func (r *Reader) ReadInt64Slice(count int) ([]int64, error) {
	if count < 0 || count > r.Remaining()/8 {
		return nil, fmt.Errorf("%w: %d int64 values at offset %d exceed %d remaining bytes",
			errs.ErrMalformedInput, count, r.pos, r.Remaining())
	}

	values := make([]int64, count)
	for i := range values {
		values[i] = int64(r.engine.Uint64(r.data[r.pos:])) //nolint:gosec
		r.pos += 8
	}

	return values, nil
}

// ReadString reads a uint16 length-prefixed modified UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	start := r.pos

	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}

	raw, err := r.ReadBytes(int(n))
	if err != nil {
		r.pos = start
		return "", err
	}

	s, err := mutf8.Decode(raw)
	if err != nil {
		r.pos = start
		return "", fmt.Errorf("%w: string at offset %d: %w", errs.ErrMalformedInput, start, err)
	}

	return s, nil
}

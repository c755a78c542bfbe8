package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/pool"
	"github.com/arloliu/nbt/mutf8"
)

// MaxStringLength is the largest encoded string payload in bytes.
// NBT strings and names carry an unsigned 16-bit byte-length prefix.
const MaxStringLength = math.MaxUint16

// MaxArrayLength is the largest element count of arrays and lists.
const MaxArrayLength = math.MaxInt32

// Writer appends NBT wire primitives to a pooled byte buffer.
//
// Note: Writer is NOT thread-safe.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter creates a Writer backed by a buffer from the encoder pool.
// Call Release when the encoded bytes are no longer needed.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		buf:    pool.GetEncodeBuffer(),
		engine: engine,
	}
}

// WriteKind writes a single kind byte.
func (w *Writer) WriteKind(kind format.Kind) {
	w.buf.MustWriteByte(byte(kind))
}

// WriteInt8 writes a signed byte.
func (w *Writer) WriteInt8(v int8) {
	w.buf.MustWriteByte(byte(v))
}

// WriteInt16 writes a 16-bit signed integer.
func (w *Writer) WriteInt16(v int16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, uint16(v)) //nolint:gosec
}

// WriteUint16 writes a 16-bit unsigned integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

// WriteInt32 writes a 32-bit signed integer.
func (w *Writer) WriteInt32(v int32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(v)) //nolint:gosec
}

// WriteInt64 writes a 64-bit signed integer.
func (w *Writer) WriteInt64(v int64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, uint64(v)) //nolint:gosec
}

// WriteUint32 writes 32 raw bits, used for IEEE-754 binary32 payloads.
func (w *Writer) WriteUint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

// WriteUint64 writes 64 raw bits, used for IEEE-754 binary64 payloads.
func (w *Writer) WriteUint64(v uint64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
}

// WriteBytes writes data verbatim.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.MustWrite(data)
}

// WriteInt32Slice writes each value as a 32-bit signed integer.
func (w *Writer) WriteInt32Slice(values []int32) {
	w.buf.Grow(4 * len(values))
	for _, v := range values {
		w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(v)) //nolint:gosec
	}
}

// WriteInt64Slice writes each value as a 64-bit signed integer.
func (w *Writer) WriteInt64Slice(values []int64) {
	w.buf.Grow(8 * len(values))
	for _, v := range values {
		w.buf.B = w.engine.AppendUint64(w.buf.B, uint64(v)) //nolint:gosec
	}
}

// WriteString writes s as a uint16 byte-length prefix followed by its modified
// UTF-8 encoding.
//
// Returns an error wrapping errs.ErrStringTooLong if the encoded form exceeds
// MaxStringLength bytes; nothing is written in that case.
func (w *Writer) WriteString(s string) error {
	n := mutf8.EncodedLen(s)
	if n > MaxStringLength {
		return fmt.Errorf("%w: encoded length %d exceeds maximum %d", errs.ErrStringTooLong, n, MaxStringLength)
	}

	w.buf.Grow(2 + n)
	w.buf.B = w.engine.AppendUint16(w.buf.B, uint16(n)) //nolint:gosec
	w.buf.B = mutf8.AppendEncode(w.buf.B, s)

	return nil
}

// Bytes returns the bytes written so far.
//
// The returned slice shares the pooled buffer and becomes invalid after Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Release returns the buffer to the pool. The Writer must not be used afterwards.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutEncodeBuffer(w.buf)
		w.buf = nil
	}
}

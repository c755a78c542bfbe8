package encoding

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// ==============================================================================
// Writer Tests
// ==============================================================================

func TestWriter_BigEndianLayout(t *testing.T) {
	w := NewWriter(endian.GetBigEndianEngine())
	defer w.Release()

	w.WriteKind(format.KindInt)
	w.WriteInt8(-1)
	w.WriteInt16(-2)
	w.WriteInt32(0x01020304)
	w.WriteInt64(-1)
	w.WriteUint32(math.Float32bits(1.0))
	w.WriteUint64(math.Float64bits(-2.0))

	expected := []byte{
		0x03,
		0xFF,
		0xFF, 0xFE,
		0x01, 0x02, 0x03, 0x04,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0x3F, 0x80, 0x00, 0x00,
		0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	require.Equal(t, expected, w.Bytes())
	require.Equal(t, len(expected), w.Len())
}

func TestWriter_LittleEndianLayout(t *testing.T) {
	w := NewWriter(endian.GetLittleEndianEngine())
	defer w.Release()

	w.WriteInt32(0x01020304)
	w.WriteInt32Slice([]int32{1})
	w.WriteInt64Slice([]int64{2})

	expected := []byte{
		0x04, 0x03, 0x02, 0x01,
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	require.Equal(t, expected, w.Bytes())
}

func TestWriter_WriteString(t *testing.T) {
	w := NewWriter(endian.GetBigEndianEngine())
	defer w.Release()

	require.NoError(t, w.WriteString("hi"))
	require.NoError(t, w.WriteString(""))
	require.NoError(t, w.WriteString("\x00"))

	require.Equal(t, []byte{0x00, 0x02, 'h', 'i', 0x00, 0x00, 0x00, 0x02, 0xC0, 0x80}, w.Bytes())
}

func TestWriter_WriteString_TooLong(t *testing.T) {
	w := NewWriter(endian.GetBigEndianEngine())
	defer w.Release()

	require.NoError(t, w.WriteString(strings.Repeat("a", MaxStringLength)))
	before := w.Len()

	err := w.WriteString(strings.Repeat("a", MaxStringLength+1))
	require.ErrorIs(t, err, errs.ErrStringTooLong)
	require.Equal(t, before, w.Len(), "nothing is written on failure")

	// Three-byte characters count by encoded length, not rune count.
	err = w.WriteString(strings.Repeat("€", MaxStringLength/3+1))
	require.ErrorIs(t, err, errs.ErrStringTooLong)
}

// ==============================================================================
// Reader Tests
// ==============================================================================

func TestReader_ReadScalars(t *testing.T) {
	data := []byte{
		0x0A,
		0x80,
		0x80, 0x00,
		0xFF, 0xFF, 0xFF, 0xFE,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00,
		0x3F, 0x80, 0x00, 0x00,
	}
	r := NewReader(data, endian.GetBigEndianEngine())

	kind, err := r.ReadKind()
	require.NoError(t, err)
	require.Equal(t, format.KindCompound, kind)

	b, err := r.ReadInt8()
	require.NoError(t, err)
	require.Equal(t, int8(-128), b)

	s, err := r.ReadInt16()
	require.NoError(t, err)
	require.Equal(t, int16(math.MinInt16), s)

	i, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-2), i)

	l, err := r.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(256), l)

	f, err := r.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, float32(1.0), math.Float32frombits(f))

	require.Equal(t, len(data), r.Offset())
	require.Equal(t, 0, r.Remaining())
}

func TestReader_Truncated(t *testing.T) {
	engine := endian.GetBigEndianEngine()

	tests := []struct {
		name string
		data []byte
		read func(r *Reader) error
	}{
		{"kind", nil, func(r *Reader) error { _, err := r.ReadKind(); return err }},
		{"int8", nil, func(r *Reader) error { _, err := r.ReadInt8(); return err }},
		{"int16", []byte{0x00}, func(r *Reader) error { _, err := r.ReadInt16(); return err }},
		{"int32", []byte{0x00, 0x00, 0x00}, func(r *Reader) error { _, err := r.ReadInt32(); return err }},
		{"int64", make([]byte, 7), func(r *Reader) error { _, err := r.ReadInt64(); return err }},
		{"bytes", []byte{0x01}, func(r *Reader) error { _, err := r.ReadBytes(2); return err }},
		{"negative bytes", []byte{0x01}, func(r *Reader) error { _, err := r.ReadBytes(-1); return err }},
		{"int32 slice", make([]byte, 7), func(r *Reader) error { _, err := r.ReadInt32Slice(2); return err }},
		{"int64 slice", make([]byte, 15), func(r *Reader) error { _, err := r.ReadInt64Slice(2); return err }},
		{"string length", []byte{0x00}, func(r *Reader) error { _, err := r.ReadString(); return err }},
		{"string body", []byte{0x00, 0x0A, 'a', 'b', 'c'}, func(r *Reader) error { _, err := r.ReadString(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data, engine)
			err := tt.read(r)
			require.ErrorIs(t, err, errs.ErrMalformedInput)
			require.Equal(t, 0, r.Offset(), "failed reads must not move the cursor")
		})
	}
}

func TestReader_UnknownKind(t *testing.T) {
	r := NewReader([]byte{0xFF}, endian.GetBigEndianEngine())

	_, err := r.ReadKind()
	require.ErrorIs(t, err, errs.ErrMalformedInput)
	require.Contains(t, err.Error(), "0xFF")
}

func TestReader_ReadString(t *testing.T) {
	data := []byte{0x00, 0x06, 0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80, 0x99}
	r := NewReader(data, endian.GetBigEndianEngine())

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "\U0001F600", s)
	require.Equal(t, 8, r.Offset())
}

func TestReader_ReadString_InvalidEncoding(t *testing.T) {
	r := NewReader([]byte{0x00, 0x01, 0xC3}, endian.GetBigEndianEngine())

	_, err := r.ReadString()
	require.ErrorIs(t, err, errs.ErrMalformedInput)
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestReader_ReadBytesIsBounded(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := NewReader(data, endian.GetBigEndianEngine())

	b, err := r.ReadBytes(2)
	require.NoError(t, err)
	require.Equal(t, 2, cap(b), "sub-slice capacity must not expose following bytes")
}

func TestWriterReaderSymmetry(t *testing.T) {
	for _, engine := range []endian.EndianEngine{endian.GetBigEndianEngine(), endian.GetLittleEndianEngine()} {
		t.Run(endian.Name(engine), func(t *testing.T) {
			w := NewWriter(engine)
			defer w.Release()

			w.WriteInt16(-300)
			w.WriteInt32Slice([]int32{math.MinInt32, 0, math.MaxInt32})
			w.WriteInt64Slice([]int64{math.MinInt64, math.MaxInt64})
			require.NoError(t, w.WriteString("naïve \U0001F600"))

			r := NewReader(bytes.Clone(w.Bytes()), engine)

			s, err := r.ReadInt16()
			require.NoError(t, err)
			require.Equal(t, int16(-300), s)

			ints, err := r.ReadInt32Slice(3)
			require.NoError(t, err)
			require.Equal(t, []int32{math.MinInt32, 0, math.MaxInt32}, ints)

			longs, err := r.ReadInt64Slice(2)
			require.NoError(t, err)
			require.Equal(t, []int64{math.MinInt64, math.MaxInt64}, longs)

			str, err := r.ReadString()
			require.NoError(t, err)
			require.Equal(t, "naïve \U0001F600", str)
			require.Equal(t, 0, r.Remaining())
		})
	}
}

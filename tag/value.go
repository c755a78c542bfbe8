package tag

import (
	"fmt"
	"math"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

func (t *Tag) expect(kind format.Kind) error {
	if t.kind != kind {
		return fmt.Errorf("%w: %s tag read as %s", errs.ErrKindMismatch, t.kind, kind)
	}

	return nil
}

// AsByte returns the value of a Byte tag.
func (t *Tag) AsByte() (int8, error) {
	if err := t.expect(format.KindByte); err != nil {
		return 0, err
	}

	return int8(t.bits), nil //nolint:gosec
}

// AsShort returns the value of a Short tag.
func (t *Tag) AsShort() (int16, error) {
	if err := t.expect(format.KindShort); err != nil {
		return 0, err
	}

	return int16(t.bits), nil //nolint:gosec
}

// AsInt returns the value of an Int tag.
func (t *Tag) AsInt() (int32, error) {
	if err := t.expect(format.KindInt); err != nil {
		return 0, err
	}

	return int32(t.bits), nil //nolint:gosec
}

// AsLong returns the value of a Long tag.
func (t *Tag) AsLong() (int64, error) {
	if err := t.expect(format.KindLong); err != nil {
		return 0, err
	}

	return int64(t.bits), nil //nolint:gosec
}

// AsFloat returns the value of a Float tag.
func (t *Tag) AsFloat() (float32, error) {
	if err := t.expect(format.KindFloat); err != nil {
		return 0, err
	}

	return math.Float32frombits(uint32(t.bits)), nil //nolint:gosec
}

// AsDouble returns the value of a Double tag.
func (t *Tag) AsDouble() (float64, error) {
	if err := t.expect(format.KindDouble); err != nil {
		return 0, err
	}

	return math.Float64frombits(t.bits), nil
}

// AsString returns the value of a String tag.
func (t *Tag) AsString() (string, error) {
	if err := t.expect(format.KindString); err != nil {
		return "", err
	}

	return t.str, nil
}

// AsByteArray returns the payload of a ByteArray tag. The slice is shared with the tag.
func (t *Tag) AsByteArray() ([]byte, error) {
	if err := t.expect(format.KindByteArray); err != nil {
		return nil, err
	}

	return t.bytes, nil
}

// AsIntArray returns the payload of an IntArray tag. The slice is shared with the tag.
func (t *Tag) AsIntArray() ([]int32, error) {
	if err := t.expect(format.KindIntArray); err != nil {
		return nil, err
	}

	return t.ints, nil
}

// AsLongArray returns the payload of a LongArray tag. The slice is shared with the tag.
func (t *Tag) AsLongArray() ([]int64, error) {
	if err := t.expect(format.KindLongArray); err != nil {
		return nil, err
	}

	return t.longs, nil
}

// AsList returns the elements of a List tag. The slice is shared with the tag.
func (t *Tag) AsList() ([]*Tag, error) {
	if err := t.expect(format.KindList); err != nil {
		return nil, err
	}

	return t.children, nil
}

// AsCompound returns the entries of a Compound tag in order. The slice is
// shared with the tag.
func (t *Tag) AsCompound() ([]*Tag, error) {
	if err := t.expect(format.KindCompound); err != nil {
		return nil, err
	}

	return t.children, nil
}

// Bits returns the raw scalar payload: the sign-extended value of integer
// kinds, or the IEEE-754 bit pattern of Float (low 32 bits) and Double.
func (t *Tag) Bits() (uint64, error) {
	if !t.kind.IsNumeric() {
		return 0, fmt.Errorf("%w: %s tag has no scalar payload", errs.ErrKindMismatch, t.kind)
	}

	return t.bits, nil
}

// Int64Value returns the value of any numeric tag as an int64.
//
// Float and Double values are truncated toward zero and saturate at the int64
// range; NaN converts to 0.
func (t *Tag) Int64Value() (int64, error) {
	switch t.kind {
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong:
		return int64(t.bits), nil //nolint:gosec
	case format.KindFloat:
		return truncate(float64(math.Float32frombits(uint32(t.bits)))), nil //nolint:gosec
	case format.KindDouble:
		return truncate(math.Float64frombits(t.bits)), nil
	default:
		return 0, fmt.Errorf("%w: %s tag is not numeric", errs.ErrKindMismatch, t.kind)
	}
}

// Int32Value returns Int64Value truncated to 32 bits (two's complement wrap).
func (t *Tag) Int32Value() (int32, error) {
	v, err := t.Int64Value()
	return int32(v), err //nolint:gosec
}

// Int16Value returns Int64Value truncated to 16 bits (two's complement wrap).
func (t *Tag) Int16Value() (int16, error) {
	v, err := t.Int64Value()
	return int16(v), err //nolint:gosec
}

// Int8Value returns Int64Value truncated to 8 bits (two's complement wrap).
func (t *Tag) Int8Value() (int8, error) {
	v, err := t.Int64Value()
	return int8(v), err //nolint:gosec
}

// Float64Value returns the value of any numeric tag as a float64.
func (t *Tag) Float64Value() (float64, error) {
	switch t.kind {
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong:
		return float64(int64(t.bits)), nil //nolint:gosec
	case format.KindFloat:
		return float64(math.Float32frombits(uint32(t.bits))), nil //nolint:gosec
	case format.KindDouble:
		return math.Float64frombits(t.bits), nil
	default:
		return 0, fmt.Errorf("%w: %s tag is not numeric", errs.ErrKindMismatch, t.kind)
	}
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// Narrow truncates v to the width of the integer kind by masking and sign
// extension, the same wrap-around a Java cast performs. Non-integer kinds
// return v unchanged.
func Narrow(v int64, kind format.Kind) int64 {
	switch kind {
	case format.KindByte:
		return int64(int8(v)) //nolint:gosec
	case format.KindShort:
		return int64(int16(v)) //nolint:gosec
	case format.KindInt:
		return int64(int32(v)) //nolint:gosec
	default:
		return v
	}
}

// SetInt64 replaces the value of an integer tag, truncating v to the tag width.
func (t *Tag) SetInt64(v int64) error {
	if !t.kind.IsInteger() {
		return fmt.Errorf("%w: cannot set integer on %s tag", errs.ErrKindMismatch, t.kind)
	}
	t.bits = uint64(Narrow(v, t.kind)) //nolint:gosec

	return nil
}

// SetFloat64 replaces the value of a Float or Double tag. Float tags round v
// to the nearest float32.
func (t *Tag) SetFloat64(v float64) error {
	switch t.kind {
	case format.KindFloat:
		t.bits = uint64(math.Float32bits(float32(v)))
	case format.KindDouble:
		t.bits = math.Float64bits(v)
	default:
		return fmt.Errorf("%w: cannot set float on %s tag", errs.ErrKindMismatch, t.kind)
	}

	return nil
}

// SetString replaces the value of a String tag.
func (t *Tag) SetString(v string) error {
	if err := t.expect(format.KindString); err != nil {
		return err
	}
	t.str = v

	return nil
}

// SetByteArray replaces the payload of a ByteArray tag.
func (t *Tag) SetByteArray(v []byte) error {
	if err := t.expect(format.KindByteArray); err != nil {
		return err
	}
	t.bytes = v

	return nil
}

// SetIntArray replaces the payload of an IntArray tag.
func (t *Tag) SetIntArray(v []int32) error {
	if err := t.expect(format.KindIntArray); err != nil {
		return err
	}
	t.ints = v

	return nil
}

// SetLongArray replaces the payload of a LongArray tag.
func (t *Tag) SetLongArray(v []int64) error {
	if err := t.expect(format.KindLongArray); err != nil {
		return err
	}
	t.longs = v

	return nil
}

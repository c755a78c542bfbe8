package tag

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// ==============================================================================
// Construction and Names
// ==============================================================================

func TestConstructors_Kinds(t *testing.T) {
	tests := []struct {
		tag  *Tag
		kind format.Kind
	}{
		{End(), format.KindEnd},
		{Byte(1), format.KindByte},
		{Short(1), format.KindShort},
		{Int(1), format.KindInt},
		{Long(1), format.KindLong},
		{Float(1), format.KindFloat},
		{Double(1), format.KindDouble},
		{ByteArray([]byte{1}), format.KindByteArray},
		{String("x"), format.KindString},
		{List(format.KindInt), format.KindList},
		{Compound(), format.KindCompound},
		{IntArray([]int32{1}), format.KindIntArray},
		{LongArray([]int64{1}), format.KindLongArray},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.Equal(t, tt.kind, tt.tag.Kind())
			_, ok := tt.tag.Name()
			require.False(t, ok, "fresh tags are unnamed")
		})
	}
}

func TestNamed(t *testing.T) {
	tg := Int(5).Named("Score")

	name, ok := tg.Name()
	require.True(t, ok)
	require.Equal(t, "Score", name)
}

func TestCompound_NamesEntries(t *testing.T) {
	anon := Byte(1)
	root := Compound(anon, Short(2).Named("s"))

	name, ok := anon.Name()
	require.True(t, ok, "compound entries always carry a name")
	require.Equal(t, "", name)
	require.Equal(t, []string{"", "s"}, root.Names())
}

func TestList_ClearsElementNames(t *testing.T) {
	elem := Int(1).Named("stale")
	list := List(format.KindInt, elem)

	_, ok := elem.Name()
	require.False(t, ok, "list elements are unnamed")
	require.Equal(t, 1, list.Len())

	added := Int(2).Named("also stale")
	require.NoError(t, list.Add(added))
	_, ok = added.Name()
	require.False(t, ok)
}

func TestString_Debug(t *testing.T) {
	require.Equal(t, "Int(3)", Int(3).String())
	require.Equal(t, `"x": Byte(-1)`, Byte(-1).Named("x").String())
	require.Equal(t, "Float(1.5)", Float(1.5).String())
	require.Equal(t, `String("hi")`, String("hi").String())
	require.Equal(t, "List<Double>[2]", List(format.KindDouble, Double(1), Double(2)).String())
	require.Equal(t, `"": Compound{0}`, Compound().Named("").String())
	require.Equal(t, "IntArray[3]", IntArray([]int32{1, 2, 3}).String())
	require.Equal(t, "<nil>", (*Tag)(nil).String())
}

// ==============================================================================
// Typed Accessors
// ==============================================================================

func TestAccessors(t *testing.T) {
	b, err := Byte(-5).AsByte()
	require.NoError(t, err)
	require.Equal(t, int8(-5), b)

	s, err := Short(-300).AsShort()
	require.NoError(t, err)
	require.Equal(t, int16(-300), s)

	i, err := Int(math.MinInt32).AsInt()
	require.NoError(t, err)
	require.Equal(t, int32(math.MinInt32), i)

	l, err := Long(math.MaxInt64).AsLong()
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), l)

	f, err := Float(0.25).AsFloat()
	require.NoError(t, err)
	require.Equal(t, float32(0.25), f)

	d, err := Double(-1e300).AsDouble()
	require.NoError(t, err)
	require.Equal(t, -1e300, d)

	str, err := String("abc").AsString()
	require.NoError(t, err)
	require.Equal(t, "abc", str)

	ba, err := ByteArray([]byte{1, 2}).AsByteArray()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, ba)

	ia, err := IntArray([]int32{3}).AsIntArray()
	require.NoError(t, err)
	require.Equal(t, []int32{3}, ia)

	la, err := LongArray([]int64{4}).AsLongArray()
	require.NoError(t, err)
	require.Equal(t, []int64{4}, la)

	elems, err := List(format.KindByte, Byte(1)).AsList()
	require.NoError(t, err)
	require.Len(t, elems, 1)

	entries, err := Compound(Byte(1).Named("a")).AsCompound()
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestAccessors_KindMismatch(t *testing.T) {
	long := Long(1)

	_, err := long.AsInt()
	require.ErrorIs(t, err, errs.ErrKindMismatch)

	_, err = long.AsString()
	require.ErrorIs(t, err, errs.ErrKindMismatch)

	_, err = String("x").AsList()
	require.ErrorIs(t, err, errs.ErrKindMismatch)

	_, err = List(format.KindEnd).AsCompound()
	require.ErrorIs(t, err, errs.ErrKindMismatch)

	_, err = String("x").Bits()
	require.ErrorIs(t, err, errs.ErrKindMismatch)
}

func TestFloatBits_PreservesPayload(t *testing.T) {
	const quietNaN = 0x7FC00001

	f := FloatBits(quietNaN)
	bits, err := f.Bits()
	require.NoError(t, err)
	require.Equal(t, uint64(quietNaN), bits)

	d := DoubleBits(0x7FF8000000000001)
	bits, err = d.Bits()
	require.NoError(t, err)
	require.Equal(t, uint64(0x7FF8000000000001), bits)
}

// ==============================================================================
// Coercion
// ==============================================================================

func TestInt64Value(t *testing.T) {
	tests := []struct {
		name     string
		tag      *Tag
		expected int64
	}{
		{"byte", Byte(-3), -3},
		{"short", Short(1000), 1000},
		{"int", Int(-70000), -70000},
		{"long", Long(1 << 40), 1 << 40},
		{"float truncates", Float(2.9), 2},
		{"negative double truncates toward zero", Double(-2.9), -2},
		{"nan", Double(math.NaN()), 0},
		{"positive overflow saturates", Double(1e30), math.MaxInt64},
		{"negative overflow saturates", Float(-1e30), math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.tag.Int64Value()
			require.NoError(t, err)
			require.Equal(t, tt.expected, v)
		})
	}

	_, err := String("1").Int64Value()
	require.ErrorIs(t, err, errs.ErrKindMismatch)
}

func TestNarrowingTruncates(t *testing.T) {
	big := Long(0x1_2345_6789)

	i32, err := big.Int32Value()
	require.NoError(t, err)
	require.Equal(t, int32(0x23456789), i32)

	i16, err := Int(0x18000).Int16Value()
	require.NoError(t, err)
	require.Equal(t, int16(-32768), i16)

	i8, err := Short(255).Int8Value()
	require.NoError(t, err)
	require.Equal(t, int8(-1), i8)

	require.Equal(t, int64(-128), Narrow(128, format.KindByte))
	require.Equal(t, int64(1<<40), Narrow(1<<40, format.KindLong))
}

func TestFloat64Value(t *testing.T) {
	v, err := Int(7).Float64Value()
	require.NoError(t, err)
	require.Equal(t, 7.0, v)

	v, err = Float(0.5).Float64Value()
	require.NoError(t, err)
	require.Equal(t, 0.5, v)

	_, err = ByteArray(nil).Float64Value()
	require.ErrorIs(t, err, errs.ErrKindMismatch)
}

// ==============================================================================
// Mutation
// ==============================================================================

func TestSetters(t *testing.T) {
	b := Byte(0)
	require.NoError(t, b.SetInt64(300))
	v, _ := b.AsByte()
	require.Equal(t, int8(44), v, "300 wraps to 44 in a signed byte")

	f := Float(0)
	require.NoError(t, f.SetFloat64(1.25))
	fv, _ := f.AsFloat()
	require.Equal(t, float32(1.25), fv)

	d := Double(0)
	require.NoError(t, d.SetFloat64(-8))
	dv, _ := d.AsDouble()
	require.Equal(t, -8.0, dv)

	s := String("")
	require.NoError(t, s.SetString("new"))
	sv, _ := s.AsString()
	require.Equal(t, "new", sv)

	require.NoError(t, ByteArray(nil).SetByteArray([]byte{1}))
	require.NoError(t, IntArray(nil).SetIntArray([]int32{1}))
	require.NoError(t, LongArray(nil).SetLongArray([]int64{1}))

	require.ErrorIs(t, String("").SetInt64(1), errs.ErrKindMismatch)
	require.ErrorIs(t, Int(0).SetFloat64(1), errs.ErrKindMismatch)
	require.ErrorIs(t, Int(0).SetString("x"), errs.ErrKindMismatch)
	require.ErrorIs(t, Int(0).SetByteArray(nil), errs.ErrKindMismatch)
	require.ErrorIs(t, Int(0).SetIntArray(nil), errs.ErrKindMismatch)
	require.ErrorIs(t, Int(0).SetLongArray(nil), errs.ErrKindMismatch)
}

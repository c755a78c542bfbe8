package tag

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

func TestCompound_GetLastWriteVisible(t *testing.T) {
	root := Compound(
		Int(1).Named("dup"),
		String("mid").Named("other"),
		Int(2).Named("dup"),
	)

	got, ok := root.Get("dup")
	require.True(t, ok)
	v, _ := got.AsInt()
	require.Equal(t, int32(2), v)
	require.Equal(t, 3, root.Len(), "duplicates are preserved")

	_, ok = root.Get("missing")
	require.False(t, ok)

	_, ok = Int(1).Get("dup")
	require.False(t, ok, "non-compounds have no entries")
}

func TestCompound_Set(t *testing.T) {
	root := Compound(Int(1).Named("a"), Int(2).Named("b"), Int(3).Named("a"))

	require.NoError(t, root.Set("a", Long(9)))
	require.Equal(t, []string{"a", "b", "a"}, root.Names())

	first, _ := root.AsCompound()
	require.Equal(t, format.KindInt, first[0].Kind(), "only the visible entry is replaced")
	require.Equal(t, format.KindLong, first[2].Kind())

	require.NoError(t, root.Set("c", Byte(0)))
	require.Equal(t, []string{"a", "b", "a", "c"}, root.Names())

	require.ErrorIs(t, Int(0).Set("x", Int(1)), errs.ErrKindMismatch)
}

func TestCompound_AppendAndRemove(t *testing.T) {
	root := Compound()

	require.NoError(t, root.Append("x", Int(1)))
	require.NoError(t, root.Append("x", Int(2)))
	require.NoError(t, root.Append("y", Int(3)))
	require.Equal(t, []string{"x", "x", "y"}, root.Names())

	require.Equal(t, 2, root.Remove("x"))
	require.Equal(t, []string{"y"}, root.Names())
	require.Equal(t, 0, root.Remove("x"))
	require.Equal(t, 0, List(format.KindEnd).Remove("x"))

	require.ErrorIs(t, List(format.KindEnd).Append("x", Int(1)), errs.ErrKindMismatch)
	require.Nil(t, Int(1).Names())
}

func TestList_Operations(t *testing.T) {
	list := List(format.KindEnd)
	require.Equal(t, format.KindEnd, list.ElemKind())

	require.NoError(t, list.Add(Int(10)))
	require.Equal(t, format.KindInt, list.ElemKind(), "first element fixes an End declaration")

	require.NoError(t, list.Add(Int(20)))
	elem, err := list.Index(1)
	require.NoError(t, err)
	v, _ := elem.AsInt()
	require.Equal(t, int32(20), v)

	_, err = list.Index(2)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = list.Index(-1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	require.NoError(t, list.SetElemKind(format.KindShort))
	require.Equal(t, format.KindShort, list.ElemKind())

	require.ErrorIs(t, Int(1).Add(Int(2)), errs.ErrKindMismatch)
	require.ErrorIs(t, Int(1).SetElemKind(format.KindInt), errs.ErrKindMismatch)
	_, err = Int(1).Index(0)
	require.ErrorIs(t, err, errs.ErrKindMismatch)
	require.Equal(t, format.KindEnd, Int(1).ElemKind())
}

func TestList_ConstructionDoesNotValidate(t *testing.T) {
	list := List(format.KindInt, String("not an int"))

	require.Equal(t, format.KindInt, list.ElemKind())
	require.Equal(t, 1, list.Len())
}

func TestLen(t *testing.T) {
	require.Equal(t, 3, ByteArray([]byte{1, 2, 3}).Len())
	require.Equal(t, 2, IntArray([]int32{1, 2}).Len())
	require.Equal(t, 1, LongArray([]int64{1}).Len())
	require.Equal(t, 0, String("abc").Len())
	require.Equal(t, 0, Int(1).Len())
}

// ==============================================================================
// Equality and Cloning
// ==============================================================================

func sampleTree() *Tag {
	return Compound(
		Byte(1).Named("b"),
		Short(2).Named("s"),
		Int(3).Named("i"),
		Long(4).Named("l"),
		Float(5.5).Named("f"),
		Double(6.25).Named("d"),
		ByteArray([]byte{7, 8}).Named("ba"),
		String("nine").Named("str"),
		List(format.KindInt, Int(1), Int(2), Int(3)).Named("list"),
		Compound(String("inner").Named("x")).Named("nested"),
		IntArray([]int32{10, 11}).Named("ia"),
		LongArray([]int64{12}).Named("la"),
	).Named("root")
}

func TestEqual(t *testing.T) {
	require.True(t, sampleTree().Equal(sampleTree()))
	require.True(t, (*Tag)(nil).Equal(nil))
	require.False(t, Int(1).Equal(nil))
}

func TestEqual_Differences(t *testing.T) {
	tests := []struct {
		name string
		a, b *Tag
	}{
		{"kind", Int(1), Long(1)},
		{"value", Int(1), Int(2)},
		{"name", Int(1).Named("a"), Int(1).Named("b")},
		{"string", String("a"), String("b")},
		{"bytes", ByteArray([]byte{1}), ByteArray([]byte{2})},
		{"ints", IntArray([]int32{1}), IntArray([]int32{1, 2})},
		{"longs", LongArray([]int64{1}), LongArray([]int64{2})},
		{"list kind", List(format.KindEnd), List(format.KindInt)},
		{"list order", List(format.KindInt, Int(1), Int(2)), List(format.KindInt, Int(2), Int(1))},
		{"compound order", Compound(Int(1).Named("a"), Int(2).Named("b")), Compound(Int(2).Named("b"), Int(1).Named("a"))},
		{"compound length", Compound(Int(1).Named("a")), Compound()},
		{"signed zero", Double(0), Double(math.Copysign(0, -1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, tt.a.Equal(tt.b))
			require.False(t, tt.b.Equal(tt.a))
		})
	}
}

func TestEqual_NaNByBits(t *testing.T) {
	require.True(t, Double(math.NaN()).Equal(Double(math.NaN())))
}

func TestEqual_UnnamedMatchesEmptyName(t *testing.T) {
	require.True(t, Compound().Equal(Compound().Named("")))
}

func TestClone_IsDeep(t *testing.T) {
	orig := sampleTree()
	clone := orig.Clone()
	require.True(t, orig.Equal(clone))

	nested, _ := clone.Get("nested")
	require.NoError(t, nested.Set("x", String("changed")))
	ba, _ := clone.Get("ba")
	raw, _ := ba.AsByteArray()
	raw[0] = 99

	require.False(t, orig.Equal(clone))
	origBA, _ := orig.Get("ba")
	origRaw, _ := origBA.AsByteArray()
	require.Equal(t, byte(7), origRaw[0])
	require.Nil(t, (*Tag)(nil).Clone())
}

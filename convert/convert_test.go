package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

type blockID int16

// ==============================================================================
// Infer
// ==============================================================================

func TestInfer_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected *tag.Tag
	}{
		{"int8", int8(-1), tag.Byte(-1)},
		{"uint8", uint8(200), tag.Byte(-56)},
		{"bool true", true, tag.Byte(1)},
		{"bool false", false, tag.Byte(0)},
		{"int16", int16(300), tag.Short(300)},
		{"int32", int32(-7), tag.Int(-7)},
		{"int64", int64(1) << 40, tag.Long(1 << 40)},
		{"float32", float32(0.5), tag.Float(0.5)},
		{"float64", 2.5, tag.Double(2.5)},
		{"string", "stone", tag.String("stone")},
		{"bytes", []byte{1, 2}, tag.ByteArray([]byte{1, 2})},
		{"int32 slice", []int32{3, 4}, tag.IntArray([]int32{3, 4})},
		{"int64 slice", []int64{5}, tag.LongArray([]int64{5})},
		{"named int16", blockID(12), tag.Short(12)},
		{"byte array type", [3]byte{7, 8, 9}, tag.ByteArray([]byte{7, 8, 9})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Infer(tt.value)
			require.NoError(t, err)
			require.True(t, tt.expected.Equal(got), "got %v", got)
		})
	}
}

func TestInfer_Unmappable(t *testing.T) {
	values := []any{
		nil,
		int(1),
		uint(1),
		uint16(1),
		uint32(1),
		uint64(1),
		complex(1, 2),
		struct{}{},
		map[int]any{1: int8(1)},
		(*tag.Tag)(nil),
		[]any{int8(1), int(2)},
		map[string]any{"k": uint32(1)},
		func() {},
	}

	for _, v := range values {
		_, err := Infer(v)
		require.ErrorIs(t, err, errs.ErrUnmappableValue, "%T", v)
	}
}

func TestInfer_List(t *testing.T) {
	got, err := Infer([]any{int32(1), int32(2)})
	require.NoError(t, err)
	require.True(t, tag.List(format.KindInt, tag.Int(1), tag.Int(2)).Equal(got))

	got, err = Infer([]string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, format.KindString, got.ElemKind())
	require.Equal(t, 2, got.Len())

	got, err = Infer([][]int32{{1}, {2, 3}})
	require.NoError(t, err)
	require.Equal(t, format.KindIntArray, got.ElemKind())

	got, err = Infer([]any{})
	require.NoError(t, err)
	require.True(t, tag.List(format.KindEnd).Equal(got))

	got, err = Infer([]float64(nil))
	require.NoError(t, err)
	require.Equal(t, format.KindEnd, got.ElemKind())
}

func TestInfer_HeterogeneousList(t *testing.T) {
	_, err := Infer([]any{int32(1), "two"})
	require.ErrorIs(t, err, errs.ErrHeterogeneousList)
}

func TestInfer_CompoundSortsKeys(t *testing.T) {
	got, err := Infer(map[string]any{
		"zPos": int32(3),
		"xPos": int32(1),
		"Name": "chunk",
		"Sub":  map[string]int16{"b": 2, "a": 1},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "Sub", "xPos", "zPos"}, got.Names())

	sub, ok := got.Get("Sub")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, sub.Names())
}

func TestInfer_TagPassesThrough(t *testing.T) {
	inner := tag.IntArray([]int32{1})

	got, err := Infer(inner)
	require.NoError(t, err)
	require.Same(t, inner, got)

	root, err := Infer(map[string]any{"biomes": inner})
	require.NoError(t, err)
	entry, _ := root.Get("biomes")
	require.Same(t, inner, entry)

	list, err := Infer([]*tag.Tag{tag.Long(1), tag.Long(2)})
	require.NoError(t, err)
	require.Equal(t, format.KindLong, list.ElemKind())
}

func TestInfer_ErrorNamesPath(t *testing.T) {
	_, err := Infer(map[string]any{"Level": map[string]any{"Pos": []any{1.0, int(2)}}})
	require.ErrorIs(t, err, errs.ErrUnmappableValue)
	assert.Contains(t, err.Error(), `"Level": "Pos": [1]`)
}

// ==============================================================================
// Native
// ==============================================================================

func sortedTree() *tag.Tag {
	return tag.Compound(
		tag.ByteArray([]byte{1}).Named("a"),
		tag.Byte(-1).Named("b"),
		tag.Double(math.Pi).Named("d"),
		tag.Float(1.5).Named("f"),
		tag.Int(7).Named("i"),
		tag.IntArray([]int32{1, 2}).Named("ia"),
		tag.Long(math.MinInt64).Named("l"),
		tag.LongArray([]int64{9}).Named("la"),
		tag.List(format.KindCompound, tag.Compound(tag.String("x").Named("id"))).Named("list"),
		tag.Compound(tag.Short(2).Named("s")).Named("nested"),
		tag.String("hello").Named("str"),
	)
}

func TestNative(t *testing.T) {
	got := Native(sortedTree())

	m, ok := got.(map[string]any)
	require.True(t, ok)
	require.Equal(t, int8(-1), m["b"])
	require.Equal(t, float32(1.5), m["f"])
	require.Equal(t, int64(math.MinInt64), m["l"])
	require.Equal(t, []int32{1, 2}, m["ia"])
	require.Equal(t, []any{map[string]any{"id": "x"}}, m["list"])
	require.Equal(t, map[string]any{"s": int16(2)}, m["nested"])

	require.Nil(t, Native(nil))
	require.Nil(t, Native(tag.End()))
}

func TestNative_DuplicateNamesLastWins(t *testing.T) {
	got := Native(tag.Compound(tag.Int(1).Named("a"), tag.Int(2).Named("a")))
	require.Equal(t, map[string]any{"a": int32(2)}, got)
}

func TestInferNative_RoundTrip(t *testing.T) {
	tree := sortedTree()

	got, err := Infer(Native(tree))
	require.NoError(t, err)
	require.True(t, tree.Equal(got))
}

// ==============================================================================
// CBOR
// ==============================================================================

func TestCBOR_RoundTrip(t *testing.T) {
	tree := tag.Compound(
		tag.Long(-5).Named("count"),
		tag.String("minecraft:stone").Named("id"),
		tag.List(format.KindLong, tag.Long(1), tag.Long(2)).Named("ids"),
		tag.Double(0.25).Named("ratio"),
		tag.ByteArray([]byte{0xDE, 0xAD}).Named("raw"),
		tag.Compound(tag.String("v").Named("k")).Named("sub"),
	)

	data, err := MarshalCBOR(tree)
	require.NoError(t, err)

	got, err := UnmarshalCBOR(data)
	require.NoError(t, err)
	require.True(t, tree.Equal(got), "got %v", got)
}

func TestCBOR_Deterministic(t *testing.T) {
	a, err := MarshalCBOR(tag.Compound(tag.Int(1).Named("b"), tag.Int(2).Named("a")))
	require.NoError(t, err)
	b, err := MarshalCBOR(tag.Compound(tag.Int(2).Named("a"), tag.Int(1).Named("b")))
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestCBOR_WidensIntegers(t *testing.T) {
	data, err := MarshalCBOR(tag.Compound(tag.Byte(3).Named("b"), tag.IntArray([]int32{1}).Named("ia")))
	require.NoError(t, err)

	got, err := UnmarshalCBOR(data)
	require.NoError(t, err)

	b, _ := got.Get("b")
	require.Equal(t, format.KindLong, b.Kind())
	ia, _ := got.Get("ia")
	require.Equal(t, format.KindList, ia.Kind())
	require.Equal(t, format.KindLong, ia.ElemKind())
}

func TestCBOR_Invalid(t *testing.T) {
	_, err := UnmarshalCBOR([]byte{0xFF})
	require.Error(t, err)

	_, err = UnmarshalCBOR([]byte{0xF6}) // null
	require.ErrorIs(t, err, errs.ErrUnmappableValue)
}

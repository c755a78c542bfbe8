package convert

import (
	"math"

	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

// Native converts t into plain Go values, discarding kinds and names:
//
//	Byte..Double        int8, int16, int32, int64, float32, float64
//	String              string
//	ByteArray           []byte
//	IntArray            []int32
//	LongArray           []int64
//	List                []any
//	Compound            map[string]any
//
// Duplicate compound names keep the last entry. Payload slices are shared
// with t. A nil tag or an End tag converts to nil.
func Native(t *tag.Tag) any {
	if t == nil {
		return nil
	}

	switch t.Kind() {
	case format.KindByte:
		v, _ := t.AsByte()
		return v
	case format.KindShort:
		v, _ := t.AsShort()
		return v
	case format.KindInt:
		v, _ := t.AsInt()
		return v
	case format.KindLong:
		v, _ := t.AsLong()
		return v
	case format.KindFloat:
		bits, _ := t.Bits()
		return math.Float32frombits(uint32(bits)) //nolint:gosec
	case format.KindDouble:
		bits, _ := t.Bits()
		return math.Float64frombits(bits)
	case format.KindString:
		v, _ := t.AsString()
		return v
	case format.KindByteArray:
		v, _ := t.AsByteArray()
		return v
	case format.KindIntArray:
		v, _ := t.AsIntArray()
		return v
	case format.KindLongArray:
		v, _ := t.AsLongArray()
		return v
	case format.KindList:
		elems, _ := t.AsList()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = Native(e)
		}

		return out
	case format.KindCompound:
		entries, _ := t.AsCompound()
		out := make(map[string]any, len(entries))
		for _, e := range entries {
			if e == nil {
				continue
			}
			name, _ := e.Name()
			out[name] = Native(e)
		}

		return out
	default:
		return nil
	}
}

package convert

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

var tagType = reflect.TypeOf((*tag.Tag)(nil))

// Infer converts v into a tag tree. Tags found inside v are used as they are,
// not copied; their names are adjusted to their new position.
func Infer(v any) (*tag.Tag, error) {
	switch x := v.(type) {
	case *tag.Tag:
		if x == nil {
			return nil, fmt.Errorf("%w: nil *tag.Tag", errs.ErrUnmappableValue)
		}

		return x, nil
	case bool:
		if x {
			return tag.Byte(1), nil
		}

		return tag.Byte(0), nil
	case int8:
		return tag.Byte(x), nil
	case uint8:
		return tag.Byte(int8(x)), nil //nolint:gosec
	case int16:
		return tag.Short(x), nil
	case int32:
		return tag.Int(x), nil
	case int64:
		return tag.Long(x), nil
	case float32:
		return tag.Float(x), nil
	case float64:
		return tag.Double(x), nil
	case string:
		return tag.String(x), nil
	case []byte:
		return tag.ByteArray(x), nil
	case []int32:
		return tag.IntArray(x), nil
	case []int64:
		return tag.LongArray(x), nil
	case []any:
		return inferList(len(x), func(i int) (*tag.Tag, error) { return Infer(x[i]) })
	case map[string]any:
		return inferCompound(reflect.ValueOf(x))
	case nil:
		return nil, fmt.Errorf("%w: nil", errs.ErrUnmappableValue)
	}

	return inferValue(reflect.ValueOf(v))
}

// inferValue handles named types and containers by reflection.
func inferValue(rv reflect.Value) (*tag.Tag, error) {
	if rv.Type() == tagType {
		return Infer(rv.Interface())
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Infer(rv.Bool())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intTag(rv.Kind(), rv.Int()), nil
	case reflect.Uint8:
		return tag.Byte(int8(rv.Uint())), nil //nolint:gosec
	case reflect.Float32:
		return tag.Float(float32(rv.Float())), nil
	case reflect.Float64:
		return tag.Double(rv.Float()), nil
	case reflect.String:
		return tag.String(rv.String()), nil
	case reflect.Interface:
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil interface", errs.ErrUnmappableValue)
		}

		return Infer(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return inferSequence(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", errs.ErrUnmappableValue, rv.Type().Key())
		}

		return inferCompound(rv)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnmappableValue, rv.Type())
	}
}

func intTag(k reflect.Kind, v int64) *tag.Tag {
	switch k {
	case reflect.Int8:
		return tag.Byte(int8(v)) //nolint:gosec
	case reflect.Int16:
		return tag.Short(int16(v)) //nolint:gosec
	case reflect.Int32:
		return tag.Int(int32(v)) //nolint:gosec
	default:
		return tag.Long(v)
	}
}

func inferSequence(rv reflect.Value) (*tag.Tag, error) {
	n := rv.Len()

	switch rv.Type().Elem().Kind() {
	case reflect.Uint8:
		b := make([]byte, n)
		for i := range n {
			b[i] = byte(rv.Index(i).Uint())
		}

		return tag.ByteArray(b), nil
	case reflect.Int32:
		v := make([]int32, n)
		for i := range n {
			v[i] = int32(rv.Index(i).Int()) //nolint:gosec
		}

		return tag.IntArray(v), nil
	case reflect.Int64:
		v := make([]int64, n)
		for i := range n {
			v[i] = rv.Index(i).Int()
		}

		return tag.LongArray(v), nil
	default:
		return inferList(n, func(i int) (*tag.Tag, error) { return inferValue(rv.Index(i)) })
	}
}

// inferList builds a List from n elements produced by elem. All elements
// must infer to the same kind.
func inferList(n int, elem func(i int) (*tag.Tag, error)) (*tag.Tag, error) {
	if n == 0 {
		return tag.List(format.KindEnd), nil
	}

	elems := make([]*tag.Tag, n)
	for i := range elems {
		child, err := elem(i)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		if i > 0 && child.Kind() != elems[0].Kind() {
			return nil, fmt.Errorf("%w: element 0 is %s, element %d is %s",
				errs.ErrHeterogeneousList, elems[0].Kind(), i, child.Kind())
		}
		elems[i] = child
	}

	return tag.List(elems[0].Kind(), elems...), nil
}

func inferCompound(rv reflect.Value) (*tag.Tag, error) {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)

	keyType := rv.Type().Key()
	entries := make([]*tag.Tag, 0, len(keys))
	for _, k := range keys {
		child, err := inferValue(rv.MapIndex(reflect.ValueOf(k).Convert(keyType)))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
		entries = append(entries, child.Named(k))
	}

	return tag.Compound(entries...), nil
}

package tag

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/nbt/format"
)

// Tag is a single node of an NBT tree.
//
// The zero value is an unnamed End tag.
type Tag struct {
	kind  format.Kind
	name  string
	named bool

	// bits holds scalar payloads: sign-extended integers for Byte..Long and
	// the raw IEEE-754 pattern for Float (low 32 bits) and Double.
	bits uint64

	str   string
	bytes []byte
	ints  []int32
	longs []int64

	elemKind format.Kind
	children []*Tag
}

// End returns an End tag. End tags only appear on the wire as compound
// terminators; they are exposed for completeness.
func End() *Tag {
	return &Tag{kind: format.KindEnd}
}

// Byte returns a Byte tag.
func Byte(v int8) *Tag {
	return &Tag{kind: format.KindByte, bits: uint64(int64(v))} //nolint:gosec
}

// Short returns a Short tag.
func Short(v int16) *Tag {
	return &Tag{kind: format.KindShort, bits: uint64(int64(v))} //nolint:gosec
}

// Int returns an Int tag.
func Int(v int32) *Tag {
	return &Tag{kind: format.KindInt, bits: uint64(int64(v))} //nolint:gosec
}

// Long returns a Long tag.
func Long(v int64) *Tag {
	return &Tag{kind: format.KindLong, bits: uint64(v)} //nolint:gosec
}

// Float returns a Float tag.
func Float(v float32) *Tag {
	return &Tag{kind: format.KindFloat, bits: uint64(math.Float32bits(v))}
}

// FloatBits returns a Float tag holding the exact IEEE-754 bit pattern bits.
func FloatBits(bits uint32) *Tag {
	return &Tag{kind: format.KindFloat, bits: uint64(bits)}
}

// Double returns a Double tag.
func Double(v float64) *Tag {
	return &Tag{kind: format.KindDouble, bits: math.Float64bits(v)}
}

// DoubleBits returns a Double tag holding the exact IEEE-754 bit pattern bits.
func DoubleBits(bits uint64) *Tag {
	return &Tag{kind: format.KindDouble, bits: bits}
}

// String returns a String tag.
func String(v string) *Tag {
	return &Tag{kind: format.KindString, str: v}
}

// ByteArray returns a ByteArray tag. The tag takes ownership of v.
func ByteArray(v []byte) *Tag {
	return &Tag{kind: format.KindByteArray, bytes: v}
}

// IntArray returns an IntArray tag. The tag takes ownership of v.
func IntArray(v []int32) *Tag {
	return &Tag{kind: format.KindIntArray, ints: v}
}

// LongArray returns a LongArray tag. The tag takes ownership of v.
func LongArray(v []int64) *Tag {
	return &Tag{kind: format.KindLongArray, longs: v}
}

// List returns a List tag with the declared element kind elem.
//
// Element names are cleared. The element kinds are not checked against elem.
func List(elem format.Kind, elems ...*Tag) *Tag {
	for _, e := range elems {
		if e != nil {
			e.clearName()
		}
	}

	return &Tag{kind: format.KindList, elemKind: elem, children: elems}
}

// Compound returns a Compound tag holding entries in order.
//
// Entries without a name are given the empty name. Duplicate names are kept.
func Compound(entries ...*Tag) *Tag {
	for _, e := range entries {
		if e != nil && !e.named {
			e.named = true
		}
	}

	return &Tag{kind: format.KindCompound, children: entries}
}

// Named sets the tag name and returns t, for use in constructor chains.
func (t *Tag) Named(name string) *Tag {
	t.name = name
	t.named = true

	return t
}

func (t *Tag) clearName() {
	t.name = ""
	t.named = false
}

// Kind returns the tag kind.
func (t *Tag) Kind() format.Kind {
	return t.kind
}

// Name returns the tag name. ok is false for tags that are not compound
// entries or a document root, such as list elements.
func (t *Tag) Name() (name string, ok bool) {
	return t.name, t.named
}

// String returns a short debugging representation such as Int(3) or
// "Pos": List<Double>[3]. Use the snbt package for full renderings.
func (t *Tag) String() string {
	if t == nil {
		return "<nil>"
	}

	var body string
	switch t.kind {
	case format.KindEnd:
		body = "End"
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong:
		body = t.kind.String() + "(" + strconv.FormatInt(int64(t.bits), 10) + ")" //nolint:gosec
	case format.KindFloat:
		body = "Float(" + strconv.FormatFloat(float64(math.Float32frombits(uint32(t.bits))), 'g', -1, 32) + ")"
	case format.KindDouble:
		body = "Double(" + strconv.FormatFloat(math.Float64frombits(t.bits), 'g', -1, 64) + ")"
	case format.KindString:
		body = "String(" + strconv.Quote(t.str) + ")"
	case format.KindByteArray:
		body = fmt.Sprintf("ByteArray[%d]", len(t.bytes))
	case format.KindIntArray:
		body = fmt.Sprintf("IntArray[%d]", len(t.ints))
	case format.KindLongArray:
		body = fmt.Sprintf("LongArray[%d]", len(t.longs))
	case format.KindList:
		body = fmt.Sprintf("List<%s>[%d]", t.elemKind, len(t.children))
	case format.KindCompound:
		body = fmt.Sprintf("Compound{%d}", len(t.children))
	default:
		body = fmt.Sprintf("Kind(0x%02X)", byte(t.kind))
	}

	if t.named {
		return strconv.Quote(t.name) + ": " + body
	}

	return body
}

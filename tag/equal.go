package tag

import (
	"bytes"
	"slices"

	"github.com/arloliu/nbt/format"
)

// Equal reports whether t and other are deeply equal: same kind, same name,
// same payload and, for containers, pairwise equal children in the same order.
//
// Scalars compare by bit pattern, so a NaN Float equals a NaN Float with the
// same payload and 0.0 differs from -0.0. Unnamed tags compare equal to tags
// named "", so a constructed root matches its decoded form.
func (t *Tag) Equal(other *Tag) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind || t.name != other.name {
		return false
	}

	switch t.kind {
	case format.KindEnd:
		return true
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong, format.KindFloat, format.KindDouble:
		return t.bits == other.bits
	case format.KindString:
		return t.str == other.str
	case format.KindByteArray:
		return bytes.Equal(t.bytes, other.bytes)
	case format.KindIntArray:
		return slices.Equal(t.ints, other.ints)
	case format.KindLongArray:
		return slices.Equal(t.longs, other.longs)
	case format.KindList:
		if t.elemKind != other.elemKind {
			return false
		}

		return childrenEqual(t.children, other.children)
	case format.KindCompound:
		return childrenEqual(t.children, other.children)
	default:
		return false
	}
}

func childrenEqual(a, b []*Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of t. Payload slices and children are copied.
func (t *Tag) Clone() *Tag {
	if t == nil {
		return nil
	}

	c := &Tag{
		kind:     t.kind,
		name:     t.name,
		named:    t.named,
		bits:     t.bits,
		str:      t.str,
		bytes:    slices.Clone(t.bytes),
		ints:     slices.Clone(t.ints),
		longs:    slices.Clone(t.longs),
		elemKind: t.elemKind,
	}
	if t.children != nil {
		c.children = make([]*Tag, len(t.children))
		for i, child := range t.children {
			c.children[i] = child.Clone()
		}
	}

	return c
}

package tag

import (
	"fmt"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// Len returns the number of children of a List or Compound, or the element
// count of an array tag. It returns 0 for every other kind.
func (t *Tag) Len() int {
	switch t.kind {
	case format.KindList, format.KindCompound:
		return len(t.children)
	case format.KindByteArray:
		return len(t.bytes)
	case format.KindIntArray:
		return len(t.ints)
	case format.KindLongArray:
		return len(t.longs)
	default:
		return 0
	}
}

// Get returns the last compound entry named name. Earlier duplicates are
// shadowed, matching how readers of the format resolve repeated names.
func (t *Tag) Get(name string) (*Tag, bool) {
	if t.kind != format.KindCompound {
		return nil, false
	}

	for i := len(t.children) - 1; i >= 0; i-- {
		if c := t.children[i]; c != nil && c.name == name {
			return c, true
		}
	}

	return nil, false
}

// Set names child and replaces the last compound entry with the same name, or
// appends child when no such entry exists.
func (t *Tag) Set(name string, child *Tag) error {
	if err := t.expect(format.KindCompound); err != nil {
		return err
	}
	child.Named(name)

	for i := len(t.children) - 1; i >= 0; i-- {
		if c := t.children[i]; c != nil && c.name == name {
			t.children[i] = child
			return nil
		}
	}
	t.children = append(t.children, child)

	return nil
}

// Append names child and appends it to a compound even if the name is already
// present.
func (t *Tag) Append(name string, child *Tag) error {
	if err := t.expect(format.KindCompound); err != nil {
		return err
	}
	t.children = append(t.children, child.Named(name))

	return nil
}

// Remove deletes every compound entry named name and returns how many were removed.
func (t *Tag) Remove(name string) int {
	if t.kind != format.KindCompound {
		return 0
	}

	kept := t.children[:0]
	for _, c := range t.children {
		if c != nil && c.name == name {
			continue
		}
		kept = append(kept, c)
	}
	removed := len(t.children) - len(kept)
	clear(t.children[len(kept):])
	t.children = kept

	return removed
}

// Names returns the compound entry names in order, duplicates included.
func (t *Tag) Names() []string {
	if t.kind != format.KindCompound {
		return nil
	}

	names := make([]string, 0, len(t.children))
	for _, c := range t.children {
		if c != nil {
			names = append(names, c.name)
		}
	}

	return names
}

// ElemKind returns the declared element kind of a List tag, or KindEnd for
// other kinds.
func (t *Tag) ElemKind() format.Kind {
	if t.kind != format.KindList {
		return format.KindEnd
	}

	return t.elemKind
}

// SetElemKind changes the declared element kind of a List tag.
func (t *Tag) SetElemKind(kind format.Kind) error {
	if err := t.expect(format.KindList); err != nil {
		return err
	}
	t.elemKind = kind

	return nil
}

// Add appends child to a List tag and clears its name.
//
// When the list is empty and declared as End, the declared kind becomes the
// child's kind. Otherwise the kinds are not compared.
func (t *Tag) Add(child *Tag) error {
	if err := t.expect(format.KindList); err != nil {
		return err
	}
	if len(t.children) == 0 && t.elemKind == format.KindEnd {
		t.elemKind = child.kind
	}
	child.clearName()
	t.children = append(t.children, child)

	return nil
}

// Index returns the i-th element of a List tag.
func (t *Tag) Index(i int) (*Tag, error) {
	if err := t.expect(format.KindList); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(t.children) {
		return nil, fmt.Errorf("%w: index %d, length %d", errs.ErrIndexOutOfRange, i, len(t.children))
	}

	return t.children[i], nil
}

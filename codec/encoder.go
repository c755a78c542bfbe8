package codec

import (
	"fmt"

	"github.com/arloliu/nbt/encoding"
	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

// Encoder serializes tag trees into NBT documents.
//
// An Encoder is safe for concurrent use; each call works on its own pooled
// buffer.
type Encoder struct {
	cfg *Config
}

// NewEncoder creates an Encoder. Without options it writes the big-endian Java
// Edition format with a nesting limit of DefaultMaxDepth.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Encode serializes root into a new byte slice. An unnamed root is written
// with the empty name.
//
// The encoder refuses trees the format cannot represent and returns an error
// wrapping errs.ErrInvalidTag:
//   - a nil or non-Compound root
//   - a compound entry of kind End
//   - a List whose elements differ from the declared element kind, or a
//     non-empty List declared as End
//   - a string or name longer than 65535 encoded bytes
//   - nesting deeper than the configured limit
//
// No partial output is returned on error.
func (e *Encoder) Encode(root *tag.Tag) ([]byte, error) {
	return e.AppendEncode(nil, root)
}

// AppendEncode serializes root and appends the result to dst. On error dst is
// returned unchanged.
func (e *Encoder) AppendEncode(dst []byte, root *tag.Tag) ([]byte, error) {
	if root == nil {
		return dst, e.fail(fmt.Errorf("%w: nil root", errs.ErrInvalidTag))
	}
	if root.Kind() != format.KindCompound {
		return dst, e.fail(fmt.Errorf("%w: root tag is %s, expected Compound", errs.ErrInvalidTag, root.Kind()))
	}

	w := encoding.NewWriter(e.cfg.engine)
	defer w.Release()

	name, _ := root.Name()
	w.WriteKind(format.KindCompound)
	if err := w.WriteString(name); err != nil {
		return dst, e.fail(fmt.Errorf("%w: root name: %w", errs.ErrInvalidTag, err))
	}

	state := encodeState{w: w, maxDepth: e.cfg.maxDepth}
	if err := state.writePayload(root, 1); err != nil {
		return dst, e.fail(err)
	}

	e.cfg.logger.Debug().
		Str("root", name).
		Int("bytes", w.Len()).
		Str("order", endian.Name(e.cfg.engine)).
		Msg("encoded NBT document")

	return append(dst, w.Bytes()...), nil
}

func (e *Encoder) fail(err error) error {
	e.cfg.logger.Debug().Err(err).Msg("NBT encode failed")
	return err
}

type encodeState struct {
	w        *encoding.Writer
	maxDepth int
}

func (s *encodeState) writePayload(t *tag.Tag, depth int) error {
	w := s.w

	switch kind := t.Kind(); kind {
	case format.KindEnd:
		return nil
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong, format.KindFloat, format.KindDouble:
		bits, _ := t.Bits()
		switch kind.Width() {
		case 1:
			w.WriteInt8(int8(bits)) //nolint:gosec
		case 2:
			w.WriteInt16(int16(bits)) //nolint:gosec
		case 4:
			w.WriteUint32(uint32(bits)) //nolint:gosec
		default:
			w.WriteUint64(bits)
		}

		return nil
	case format.KindString:
		v, _ := t.AsString()
		if err := w.WriteString(v); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidTag, err)
		}

		return nil
	case format.KindByteArray:
		v, _ := t.AsByteArray()
		if err := checkLength(kind, len(v)); err != nil {
			return err
		}
		w.WriteInt32(int32(len(v))) //nolint:gosec
		w.WriteBytes(v)

		return nil
	case format.KindIntArray:
		v, _ := t.AsIntArray()
		if err := checkLength(kind, len(v)); err != nil {
			return err
		}
		w.WriteInt32(int32(len(v))) //nolint:gosec
		w.WriteInt32Slice(v)

		return nil
	case format.KindLongArray:
		v, _ := t.AsLongArray()
		if err := checkLength(kind, len(v)); err != nil {
			return err
		}
		w.WriteInt32(int32(len(v))) //nolint:gosec
		w.WriteInt64Slice(v)

		return nil
	case format.KindList:
		return s.writeList(t, depth)
	case format.KindCompound:
		return s.writeCompound(t, depth)
	default:
		return fmt.Errorf("%w: unknown tag kind 0x%02X", errs.ErrInvalidTag, byte(kind))
	}
}

func checkLength(kind format.Kind, n int) error {
	if n > encoding.MaxArrayLength {
		return fmt.Errorf("%w: %s length %d exceeds maximum %d", errs.ErrInvalidTag, kind, n, encoding.MaxArrayLength)
	}

	return nil
}

func (s *encodeState) checkDepth(depth int) error {
	if depth > s.maxDepth {
		return fmt.Errorf("%w: %w: limit %d", errs.ErrInvalidTag, errs.ErrMaxDepthExceeded, s.maxDepth)
	}

	return nil
}

func (s *encodeState) writeList(t *tag.Tag, depth int) error {
	if err := s.checkDepth(depth); err != nil {
		return err
	}

	elem := t.ElemKind()
	elems, _ := t.AsList()
	if !elem.IsValid() {
		return fmt.Errorf("%w: list declares unknown element kind 0x%02X", errs.ErrInvalidTag, byte(elem))
	}
	if elem == format.KindEnd && len(elems) > 0 {
		return fmt.Errorf("%w: list declared End holds %d elements", errs.ErrInvalidTag, len(elems))
	}
	if err := checkLength(format.KindList, len(elems)); err != nil {
		return err
	}
	for i, el := range elems {
		if el == nil {
			return fmt.Errorf("%w: list element %d is nil", errs.ErrInvalidTag, i)
		}
		if el.Kind() != elem {
			return fmt.Errorf("%w: list declares %s but element %d is %s", errs.ErrInvalidTag, elem, i, el.Kind())
		}
	}

	s.w.WriteKind(elem)
	s.w.WriteInt32(int32(len(elems))) //nolint:gosec
	for i, el := range elems {
		if err := s.writePayload(el, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}

	return nil
}

func (s *encodeState) writeCompound(t *tag.Tag, depth int) error {
	if err := s.checkDepth(depth); err != nil {
		return err
	}

	entries, _ := t.AsCompound()
	for i, entry := range entries {
		if entry == nil {
			return fmt.Errorf("%w: compound entry %d is nil", errs.ErrInvalidTag, i)
		}

		name, _ := entry.Name()
		kind := entry.Kind()
		if kind == format.KindEnd {
			return fmt.Errorf("%w: compound entry %q has kind End", errs.ErrInvalidTag, name)
		}

		s.w.WriteKind(kind)
		if err := s.w.WriteString(name); err != nil {
			return fmt.Errorf("%w: entry name: %w", errs.ErrInvalidTag, err)
		}
		if err := s.writePayload(entry, depth+1); err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
	}
	s.w.WriteKind(format.KindEnd)

	return nil
}

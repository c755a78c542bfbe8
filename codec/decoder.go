package codec

import (
	"bytes"
	"fmt"

	"github.com/arloliu/nbt/encoding"
	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

// Decoder reconstructs tag trees from NBT documents.
//
// A Decoder holds only immutable configuration; it is safe for concurrent use
// and may decode any number of documents.
type Decoder struct {
	cfg *Config
}

// NewDecoder creates a Decoder. Without options it reads the big-endian Java
// Edition format with a nesting limit of DefaultMaxDepth.
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// Decode decodes the document at the start of data and returns its root
// compound. Bytes after the root compound are ignored.
//
// Any truncation, unknown kind byte, negative or oversized count, invalid
// string encoding or excessive nesting returns an error wrapping
// errs.ErrMalformedInput and no tree.
func (d *Decoder) Decode(data []byte) (*tag.Tag, error) {
	root, _, err := d.DecodePrefix(data)
	return root, err
}

// DecodePrefix is like Decode but also returns the number of bytes consumed,
// for documents embedded in larger streams.
func (d *Decoder) DecodePrefix(data []byte) (*tag.Tag, int, error) {
	r := encoding.NewReader(data, d.cfg.engine)

	kind, err := r.ReadKind()
	if err != nil {
		return nil, 0, d.fail(err)
	}
	if kind != format.KindCompound {
		return nil, 0, d.fail(fmt.Errorf("%w: root tag is %s, expected Compound", errs.ErrMalformedInput, kind))
	}

	name, err := r.ReadString()
	if err != nil {
		return nil, 0, d.fail(err)
	}

	state := decodeState{r: r, maxDepth: d.cfg.maxDepth}
	root, err := state.readPayload(format.KindCompound, 1)
	if err != nil {
		return nil, 0, d.fail(err)
	}
	root.Named(name)

	d.cfg.logger.Debug().
		Str("root", name).
		Int("bytes", r.Offset()).
		Int("trailing", r.Remaining()).
		Str("order", endian.Name(d.cfg.engine)).
		Msg("decoded NBT document")

	return root, r.Offset(), nil
}

func (d *Decoder) fail(err error) error {
	d.cfg.logger.Debug().Err(err).Msg("NBT decode failed")
	return err
}

// decodeState carries the cursor of a single Decode call.
type decodeState struct {
	r        *encoding.Reader
	maxDepth int
}

// readPayload reads the payload of a tag of the given kind. depth is the
// nesting level the payload would occupy if it is a container.
func (s *decodeState) readPayload(kind format.Kind, depth int) (*tag.Tag, error) {
	r := s.r

	switch kind {
	case format.KindEnd:
		return tag.End(), nil
	case format.KindByte:
		v, err := r.ReadInt8()
		if err != nil {
			return nil, err
		}

		return tag.Byte(v), nil
	case format.KindShort:
		v, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}

		return tag.Short(v), nil
	case format.KindInt:
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}

		return tag.Int(v), nil
	case format.KindLong:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}

		return tag.Long(v), nil
	case format.KindFloat:
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}

		return tag.FloatBits(v), nil
	case format.KindDouble:
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}

		return tag.DoubleBits(v), nil
	case format.KindByteArray:
		n, err := s.readCount(kind)
		if err != nil {
			return nil, err
		}
		raw, err := r.ReadBytes(n)
		if err != nil {
			return nil, err
		}

		return tag.ByteArray(bytes.Clone(raw)), nil
	case format.KindString:
		v, err := r.ReadString()
		if err != nil {
			return nil, err
		}

		return tag.String(v), nil
	case format.KindList:
		return s.readList(depth)
	case format.KindCompound:
		return s.readCompound(depth)
	case format.KindIntArray:
		n, err := s.readCount(kind)
		if err != nil {
			return nil, err
		}
		v, err := r.ReadInt32Slice(n)
		if err != nil {
			return nil, err
		}

		return tag.IntArray(v), nil
	case format.KindLongArray:
		n, err := s.readCount(kind)
		if err != nil {
			return nil, err
		}
		v, err := r.ReadInt64Slice(n)
		if err != nil {
			return nil, err
		}

		return tag.LongArray(v), nil
	default:
		return nil, fmt.Errorf("%w: unknown tag kind 0x%02X", errs.ErrMalformedInput, byte(kind))
	}
}

// readCount reads a non-negative int32 array count.
func (s *decodeState) readCount(kind format.Kind) (int, error) {
	offset := s.r.Offset()
	n, err := s.r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s length %d at offset %d", errs.ErrMalformedInput, kind, n, offset)
	}

	return int(n), nil
}

func (s *decodeState) checkDepth(depth int) error {
	if depth > s.maxDepth {
		return fmt.Errorf("%w: %w: limit %d at offset %d",
			errs.ErrMalformedInput, errs.ErrMaxDepthExceeded, s.maxDepth, s.r.Offset())
	}

	return nil
}

func (s *decodeState) readList(depth int) (*tag.Tag, error) {
	if err := s.checkDepth(depth); err != nil {
		return nil, err
	}

	offset := s.r.Offset()
	elem, err := s.r.ReadKind()
	if err != nil {
		return nil, err
	}
	n, err := s.r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return tag.List(elem), nil
	}
	if elem == format.KindEnd {
		return nil, fmt.Errorf("%w: list at offset %d has %d elements of kind End", errs.ErrMalformedInput, offset, n)
	}

	// Every element needs at least MinPayloadSize bytes, which bounds the
	// allocation below by the input size.
	if int(n) > s.r.Remaining()/elem.MinPayloadSize() {
		return nil, fmt.Errorf("%w: list at offset %d declares %d %s elements, %d bytes remaining",
			errs.ErrMalformedInput, offset, n, elem, s.r.Remaining())
	}

	elems := make([]*tag.Tag, n)
	for i := range elems {
		if elems[i], err = s.readPayload(elem, depth+1); err != nil {
			return nil, err
		}
	}

	return tag.List(elem, elems...), nil
}

func (s *decodeState) readCompound(depth int) (*tag.Tag, error) {
	if err := s.checkDepth(depth); err != nil {
		return nil, err
	}

	var entries []*tag.Tag
	for {
		kind, err := s.r.ReadKind()
		if err != nil {
			return nil, err
		}
		if kind == format.KindEnd {
			return tag.Compound(entries...), nil
		}

		name, err := s.r.ReadString()
		if err != nil {
			return nil, err
		}
		child, err := s.readPayload(kind, depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, child.Named(name))
	}
}

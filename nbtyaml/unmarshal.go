package nbtyaml

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

// MaxDepth limits list and compound nesting in parsed documents. The root
// compound is depth 1.
const MaxDepth = 512

// Unmarshal parses a document produced by Marshal, or written by hand in the
// same form, and returns its root compound.
//
// Errors wrap errs.ErrMalformedInput and name the offending line.
func Unmarshal(data []byte) (*tag.Tag, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
	}

	return FromNode(&doc)
}

// FromNode converts a YAML document or root mapping node into a root compound.
func FromNode(n *yaml.Node) (*tag.Tag, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) != 1 {
			return nil, fmt.Errorf("%w: empty YAML document", errs.ErrMalformedInput)
		}
		n = n.Content[0]
	}
	n = deref(n)
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, malformed(n, "document must be a mapping with exactly one root entry")
	}

	key, body := deref(n.Content[0]), n.Content[1]
	if key.Kind != yaml.ScalarNode {
		return nil, malformed(key, "root name must be a scalar")
	}

	root, err := parseNode(body, format.KindCompound, true, 1)
	if err != nil {
		return nil, err
	}

	return root.Named(key.Value), nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

func malformed(n *yaml.Node, msg string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", errs.ErrMalformedInput, n.Line, fmt.Sprintf(msg, args...))
}

// parseNode converts n into a tag. When implied is true the kind is known
// from the context and a tag on n, if present, must agree with it.
func parseNode(n *yaml.Node, kind format.Kind, implied bool, depth int) (*tag.Tag, error) {
	n = deref(n)

	elem := format.KindEnd
	k, e, ok := parseTag(n.Tag)
	switch {
	case ok && implied && k != kind:
		return nil, malformed(n, "tag %s where %s is expected", n.Tag, kindNames[kind])
	case ok:
		kind, elem = k, e
	case implied && kind == format.KindList:
		return nil, malformed(n, "nested list needs a %s<kind> tag", listTagPrefix)
	case implied:
	case n.Kind == yaml.MappingNode:
		kind = format.KindCompound
	default:
		return nil, malformed(n, "value needs a kind tag such as !int or !string")
	}

	if kind.IsContainer() && depth > MaxDepth {
		return nil, fmt.Errorf("%w: %w: line %d", errs.ErrMalformedInput, errs.ErrMaxDepthExceeded, n.Line)
	}

	switch kind {
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong:
		v, err := parseInt(n, kind)
		if err != nil {
			return nil, err
		}

		return intTag(kind, v), nil
	case format.KindFloat:
		bits, err := parseFloat(n, 32)
		if err != nil {
			return nil, err
		}

		return tag.FloatBits(uint32(bits)), nil //nolint:gosec
	case format.KindDouble:
		bits, err := parseFloat(n, 64)
		if err != nil {
			return nil, err
		}

		return tag.DoubleBits(bits), nil
	case format.KindString:
		if n.Kind != yaml.ScalarNode {
			return nil, malformed(n, "string must be a scalar")
		}

		return tag.String(n.Value), nil
	case format.KindByteArray:
		v, err := parseArray(n, format.KindByte)
		if err != nil {
			return nil, err
		}
		b := make([]byte, len(v))
		for i, x := range v {
			b[i] = byte(x) //nolint:gosec
		}

		return tag.ByteArray(b), nil
	case format.KindIntArray:
		v, err := parseArray(n, format.KindInt)
		if err != nil {
			return nil, err
		}
		ints := make([]int32, len(v))
		for i, x := range v {
			ints[i] = int32(x) //nolint:gosec
		}

		return tag.IntArray(ints), nil
	case format.KindLongArray:
		v, err := parseArray(n, format.KindLong)
		if err != nil {
			return nil, err
		}

		return tag.LongArray(v), nil
	case format.KindList:
		return parseList(n, elem, depth)
	case format.KindCompound:
		return parseCompound(n, depth)
	default:
		return nil, malformed(n, "%s tags cannot appear in a document", kind)
	}
}

func parseList(n *yaml.Node, elem format.Kind, depth int) (*tag.Tag, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, malformed(n, "list must be a sequence")
	}
	if elem == format.KindEnd && len(n.Content) > 0 {
		return nil, malformed(n, "%send list has %d elements", listTagPrefix, len(n.Content))
	}

	elems := make([]*tag.Tag, len(n.Content))
	for i, c := range n.Content {
		child, err := parseNode(c, elem, true, depth+1)
		if err != nil {
			return nil, err
		}
		elems[i] = child
	}

	return tag.List(elem, elems...), nil
}

func parseCompound(n *yaml.Node, depth int) (*tag.Tag, error) {
	if n.Kind != yaml.MappingNode {
		return nil, malformed(n, "compound must be a mapping")
	}

	entries := make([]*tag.Tag, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := deref(n.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, malformed(key, "compound key must be a scalar")
		}
		child, err := parseNode(n.Content[i+1], format.KindEnd, false, depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, child.Named(key.Value))
	}

	return tag.Compound(entries...), nil
}

func parseArray(n *yaml.Node, elem format.Kind) ([]int64, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, malformed(n, "array must be a sequence")
	}

	out := make([]int64, len(n.Content))
	for i, c := range n.Content {
		v, err := parseInt(deref(c), elem)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func parseInt(n *yaml.Node, kind format.Kind) (int64, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, malformed(n, "%s must be a scalar", kindNames[kind])
	}

	v, err := strconv.ParseInt(n.Value, 0, kind.Width()*8)
	if err != nil {
		return 0, malformed(n, "bad %s value %q", kindNames[kind], n.Value)
	}

	return v, nil
}

// parseFloat returns the IEEE-754 bits of a float scalar. Hex values are raw
// bit patterns.
func parseFloat(n *yaml.Node, bitSize int) (uint64, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, malformed(n, "float must be a scalar")
	}

	s := n.Value
	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		bits, err := strconv.ParseUint(hex, 16, bitSize)
		if err != nil {
			return 0, malformed(n, "bad float bits %q", s)
		}

		return bits, nil
	}

	var f float64
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		f = math.Inf(1)
	case "-.inf":
		f = math.Inf(-1)
	case ".nan":
		f = math.NaN()
	default:
		var err error
		if f, err = strconv.ParseFloat(s, bitSize); err != nil {
			return 0, malformed(n, "bad float value %q", s)
		}
	}

	if bitSize == 32 {
		return uint64(math.Float32bits(float32(f))), nil
	}

	return math.Float64bits(f), nil
}

func intTag(kind format.Kind, v int64) *tag.Tag {
	switch kind {
	case format.KindByte:
		return tag.Byte(int8(v)) //nolint:gosec
	case format.KindShort:
		return tag.Short(int16(v)) //nolint:gosec
	case format.KindInt:
		return tag.Int(int32(v)) //nolint:gosec
	default:
		return tag.Long(v)
	}
}

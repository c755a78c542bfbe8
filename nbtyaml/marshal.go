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

// Marshal renders the root compound t as YAML.
func Marshal(t *tag.Tag) ([]byte, error) {
	node, err := ToNode(t)
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("yaml encode: %w", err)
	}

	return out, nil
}

// ToNode converts the root compound t into a YAML document node.
func ToNode(t *tag.Tag) (*yaml.Node, error) {
	if t == nil || t.Kind() != format.KindCompound {
		return nil, fmt.Errorf("%w: root must be a Compound", errs.ErrInvalidTag)
	}

	body, err := valueNode(t, true)
	if err != nil {
		return nil, err
	}
	name, _ := t.Name()

	return &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{keyNode(name), body},
		}},
	}, nil
}

func keyNode(name string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
}

// valueNode converts t. implied reports whether the kind is known from the
// context, in which case the tag is omitted.
func valueNode(t *tag.Tag, implied bool) (*yaml.Node, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil tag", errs.ErrInvalidTag)
	}

	kind := t.Kind()
	n := &yaml.Node{}
	if !implied || kind == format.KindList {
		n.Tag = yamlTag(kind, t.ElemKind())
	}

	switch kind {
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong:
		v, _ := t.Int64Value()
		setScalar(n, "!!int", strconv.FormatInt(v, 10))
	case format.KindFloat:
		bits, _ := t.Bits()
		setFloat(n, kind, formatFloat(float64(math.Float32frombits(uint32(bits))), bits, 32)) //nolint:gosec
	case format.KindDouble:
		bits, _ := t.Bits()
		setFloat(n, kind, formatFloat(math.Float64frombits(bits), bits, 64))
	case format.KindString:
		v, _ := t.AsString()
		setScalar(n, "!!str", v)
		n.Style = yaml.DoubleQuotedStyle
	case format.KindByteArray:
		v, _ := t.AsByteArray()
		flowSeq(n, len(v), func(i int) string { return strconv.Itoa(int(int8(v[i]))) }) //nolint:gosec
	case format.KindIntArray:
		v, _ := t.AsIntArray()
		flowSeq(n, len(v), func(i int) string { return strconv.FormatInt(int64(v[i]), 10) })
	case format.KindLongArray:
		v, _ := t.AsLongArray()
		flowSeq(n, len(v), func(i int) string { return strconv.FormatInt(v[i], 10) })
	case format.KindList:
		elems, _ := t.AsList()
		n.Kind = yaml.SequenceNode
		if !t.ElemKind().IsContainer() {
			n.Style = yaml.FlowStyle
		}
		for i, e := range elems {
			child, err := valueNode(e, true)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			n.Content = append(n.Content, child)
		}
	case format.KindCompound:
		entries, _ := t.AsCompound()
		n.Kind = yaml.MappingNode
		if len(entries) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, e := range entries {
			if e == nil {
				continue
			}
			name, _ := e.Name()
			child, err := valueNode(e, false)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", name, err)
			}
			n.Content = append(n.Content, keyNode(name), child)
		}
	default:
		return nil, fmt.Errorf("%w: %s tag cannot be represented", errs.ErrInvalidTag, kind)
	}

	return n, nil
}

func setScalar(n *yaml.Node, implicitTag, value string) {
	n.Kind = yaml.ScalarNode
	n.Value = value
	if n.Tag == "" {
		n.Tag = implicitTag
	}
}

// setFloat tags raw-bit values explicitly, since a hex scalar would
// otherwise read as an integer.
func setFloat(n *yaml.Node, kind format.Kind, value string) {
	if n.Tag == "" && strings.HasPrefix(value, "0x") {
		n.Tag = yamlTag(kind, format.KindEnd)
	}
	setScalar(n, "!!float", value)
}

func flowSeq(n *yaml.Node, count int, elem func(i int) string) {
	n.Kind = yaml.SequenceNode
	n.Style = yaml.FlowStyle
	n.Content = make([]*yaml.Node, count)
	for i := range count {
		n.Content[i] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: elem(i)}
	}
}

// formatFloat writes NaN as its raw bit pattern so the payload survives.
// Finite values always carry a decimal point or exponent.
func formatFloat(v float64, bits uint64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return fmt.Sprintf("0x%0*x", bitSize/4, bits)
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(v, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

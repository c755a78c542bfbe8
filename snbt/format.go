package snbt

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/options"
	"github.com/arloliu/nbt/tag"
)

// Config holds rendering settings.
type Config struct {
	indent   string
	colors   *Colors
	rootName bool
}

// Option configures Format and Write.
type Option = options.Option[*Config]

// WithIndent enables multi-line output indented by indent per level. indent
// must consist of spaces and tabs.
func WithIndent(indent string) Option {
	return options.New(func(c *Config) error {
		if strings.Trim(indent, " \t") != "" {
			return fmt.Errorf("%w: indent %q is not whitespace", errs.ErrInvalidOption, indent)
		}
		c.indent = indent

		return nil
	})
}

// WithColors highlights the output with the given palette. A nil palette
// disables coloring.
func WithColors(colors *Colors) Option {
	return options.NoError(func(c *Config) {
		c.colors = colors
	})
}

// WithRootName prefixes the output with the name of the rendered tag.
func WithRootName() Option {
	return options.NoError(func(c *Config) {
		c.rootName = true
	})
}

// Format renders t as SNBT.
func Format(t *tag.Tag, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, t, opts...); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Write renders t as SNBT to w.
func Write(w io.Writer, t *tag.Tag, opts ...Option) error {
	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	p := printer{cfg: cfg}
	if cfg.rootName {
		name, _ := t.Name()
		p.name(name)
		p.sep()
	}
	p.value(t, 0)
	if cfg.indent != "" {
		p.sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, p.sb.String())

	return err
}

type printer struct {
	cfg *Config
	sb  strings.Builder
}

func (p *printer) pretty() bool {
	return p.cfg.indent != ""
}

func (p *printer) put(role Role, s string) {
	p.sb.WriteString(p.cfg.colors.Color(role, s))
}

func (p *printer) newline(depth int) {
	p.sb.WriteByte('\n')
	for range depth {
		p.sb.WriteString(p.cfg.indent)
	}
}

// sep writes the name/value separator.
func (p *printer) sep() {
	if p.pretty() {
		p.put(PunctRole, ": ")
	} else {
		p.put(PunctRole, ":")
	}
}

func (p *printer) comma() {
	if p.pretty() {
		p.put(PunctRole, ", ")
	} else {
		p.put(PunctRole, ",")
	}
}

func (p *printer) name(name string) {
	if isBareName(name) {
		p.put(NameRole, name)
	} else {
		p.put(NameRole, Quote(name))
	}
}

func (p *printer) number(n, suffix string) {
	p.put(NumberRole, n)
	if suffix != "" {
		p.put(SuffixRole, suffix)
	}
}

func (p *printer) value(t *tag.Tag, depth int) {
	if t == nil {
		p.put(PunctRole, "null")
		return
	}

	switch kind := t.Kind(); kind {
	case format.KindByte, format.KindShort, format.KindInt, format.KindLong:
		v, _ := t.Int64Value()
		p.number(strconv.FormatInt(v, 10), suffix(kind))
	case format.KindFloat:
		v, _ := t.AsFloat()
		p.number(formatFloat(float64(v), 32), "f")
	case format.KindDouble:
		v, _ := t.AsDouble()
		p.number(formatFloat(v, 64), "d")
	case format.KindString:
		v, _ := t.AsString()
		p.put(StringRole, Quote(v))
	case format.KindByteArray:
		v, _ := t.AsByteArray()
		p.array("B", len(v), func(i int) { p.number(strconv.Itoa(int(int8(v[i]))), "b") }) //nolint:gosec
	case format.KindIntArray:
		v, _ := t.AsIntArray()
		p.array("I", len(v), func(i int) { p.number(strconv.FormatInt(int64(v[i]), 10), "") })
	case format.KindLongArray:
		v, _ := t.AsLongArray()
		p.array("L", len(v), func(i int) { p.number(strconv.FormatInt(v[i], 10), "L") })
	case format.KindList:
		p.list(t, depth)
	case format.KindCompound:
		p.compound(t, depth)
	default:
		p.put(PunctRole, "end")
	}
}

func (p *printer) array(prefix string, n int, elem func(i int)) {
	p.put(PunctRole, "[")
	p.put(SuffixRole, prefix)
	p.put(PunctRole, ";")
	for i := range n {
		if i > 0 {
			p.comma()
		} else if p.pretty() {
			p.sb.WriteByte(' ')
		}
		elem(i)
	}
	p.put(PunctRole, "]")
}

func (p *printer) list(t *tag.Tag, depth int) {
	elems, _ := t.AsList()
	p.put(PunctRole, "[")
	if p.pretty() && t.ElemKind().IsContainer() && len(elems) > 0 {
		for i, e := range elems {
			if i > 0 {
				p.put(PunctRole, ",")
			}
			p.newline(depth + 1)
			p.value(e, depth+1)
		}
		p.newline(depth)
	} else {
		for i, e := range elems {
			if i > 0 {
				p.comma()
			}
			p.value(e, depth+1)
		}
	}
	p.put(PunctRole, "]")
}

func (p *printer) compound(t *tag.Tag, depth int) {
	entries, _ := t.AsCompound()
	p.put(PunctRole, "{")
	written := 0
	for _, e := range entries {
		if e == nil {
			continue
		}
		if written > 0 {
			p.put(PunctRole, ",")
		}
		if p.pretty() {
			p.newline(depth + 1)
		}
		name, _ := e.Name()
		p.name(name)
		p.sep()
		p.value(e, depth+1)
		written++
	}
	if p.pretty() && written > 0 {
		p.newline(depth)
	}
	p.put(PunctRole, "}")
}

func suffix(kind format.Kind) string {
	switch kind {
	case format.KindByte:
		return "b"
	case format.KindShort:
		return "s"
	case format.KindLong:
		return "L"
	default:
		return ""
	}
}

// formatFloat always includes a decimal point or exponent so the value is not
// mistaken for an integer.
func formatFloat(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	s := strconv.FormatFloat(v, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

func isBareName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c == '_', c == '-', c == '.', c == '+':
		default:
			return false
		}
	}

	return true
}

// Quote returns s as an SNBT string literal. Double quotes are used unless s
// contains a double quote and no single quote.
func Quote(s string) string {
	q := byte('"')
	if strings.IndexByte(s, '"') >= 0 && strings.IndexByte(s, '\'') < 0 {
		q = '\''
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(q)
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == q || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte(q)

	return sb.String()
}

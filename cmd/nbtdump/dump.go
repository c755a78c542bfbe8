package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/arloliu/nbt"
	"github.com/arloliu/nbt/compress"
	"github.com/arloliu/nbt/convert"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/nbtyaml"
	"github.com/arloliu/nbt/snbt"
	"github.com/arloliu/nbt/tag"
)

type dumper struct {
	cfg    Config
	logger zerolog.Logger
	stdin  io.Reader
}

func newDumper(cfg Config, logger zerolog.Logger) *dumper {
	return &dumper{cfg: cfg, logger: logger, stdin: os.Stdin}
}

func (d *dumper) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(d.stdin)
	}

	return os.ReadFile(path)
}

// readDocument loads path ("-" for stdin) as NBT or YAML and returns the root
// with the compression it was stored with.
func (d *dumper) readDocument(path string) (*tag.Tag, format.CompressionType, error) {
	data, err := d.readInput(path)
	if err != nil {
		return nil, format.CompressionNone, err
	}

	if d.cfg.InputFormat == "yaml" {
		root, err := nbtyaml.Unmarshal(data)
		if err != nil {
			return nil, format.CompressionNone, fmt.Errorf("%s: %w", path, err)
		}

		return root, format.CompressionNone, nil
	}

	compression := compress.Detect(data)
	if d.cfg.Compression != "auto" {
		compression, _ = format.ParseCompression(d.cfg.Compression)
	}

	raw, err := nbt.Decompress(data, compression)
	if err != nil {
		return nil, compression, fmt.Errorf("%s: %w", path, err)
	}

	root, err := nbt.Decode(raw, d.cfg.CodecOptions(d.logger)...)
	if err != nil {
		return nil, compression, fmt.Errorf("%s: %w", path, err)
	}

	d.logger.Debug().
		Str("file", path).
		Stringer("compression", compression).
		Int("stored_bytes", len(data)).
		Int("raw_bytes", len(raw)).
		Msg("read document")

	return root, compression, nil
}

// render produces the output bytes for root: binary NBT when an output
// compression is set, otherwise the configured text or CBOR rendering.
func (d *dumper) render(root *tag.Tag, colors *snbt.Colors) ([]byte, error) {
	if d.cfg.OutCompression != "" {
		compression, _ := format.ParseCompression(d.cfg.OutCompression)
		return nbt.EncodeCompressed(root, compression, d.cfg.CodecOptions(d.logger)...)
	}

	switch d.cfg.Format {
	case "yaml":
		return nbtyaml.Marshal(root)
	case "cbor":
		return convert.MarshalCBOR(root)
	default:
		s, err := d.formatSNBT(root, colors)
		if err != nil {
			return nil, err
		}

		return []byte(s), nil
	}
}

func (d *dumper) formatSNBT(root *tag.Tag, colors *snbt.Colors) (string, error) {
	opts := []snbt.Option{snbt.WithRootName(), snbt.WithIndent(d.cfg.Indent)}
	if colors != nil {
		opts = append(opts, snbt.WithColors(colors))
	}

	return snbt.Format(root, opts...)
}

// colors returns the SNBT palette for output written to w, or nil when the
// output should stay plain.
func (d *dumper) colors(w io.Writer) *snbt.Colors {
	switch d.cfg.Color {
	case "never":
		return nil
	case "always":
		color.NoColor = false
		return snbt.NewColors()
	}

	f, ok := w.(*os.File)
	if !ok || d.cfg.Output != "" {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return snbt.NewColors()
	}

	return nil
}

// diffDocuments returns a line diff of the plain SNBT renderings of a and b,
// and whether they differ.
func (d *dumper) diffDocuments(a, b *tag.Tag) (string, bool, error) {
	left, err := d.formatSNBT(a, nil)
	if err != nil {
		return "", false, err
	}
	right, err := d.formatSNBT(b, nil)
	if err != nil {
		return "", false, err
	}
	if left == right {
		return "", false, nil
	}

	return diffLines(left, right), true, nil
}

func diffLines(left, right string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}

		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String()
}

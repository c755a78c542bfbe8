package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt"
	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/convert"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/nbtyaml"
	"github.com/arloliu/nbt/tag"
)

func levelTree(version int32) *tag.Tag {
	return tag.Compound(
		tag.Compound(
			tag.String("New World").Named("LevelName"),
			tag.Int(version).Named("version"),
			tag.List(format.KindDouble, tag.Double(0.5), tag.Double(64)).Named("Pos"),
		).Named("Data"),
	).Named("")
}

func writeDocument(t *testing.T, root *tag.Tag, compression format.CompressionType, opts ...codec.Option) string {
	t.Helper()
	data, err := nbt.EncodeCompressed(root, compression, opts...)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "level.dat")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestRun_SNBT(t *testing.T) {
	path := writeDocument(t, levelTree(19133), format.CompressionGzip)

	var out bytes.Buffer
	require.NoError(t, run([]string{"--color", "never", path}, &out))

	s := out.String()
	require.Contains(t, s, `LevelName: "New World"`)
	require.Contains(t, s, "version: 19133")
	require.Contains(t, s, "Pos: [0.5d, 64.0d]")
}

func TestRun_YAMLAndCBOR(t *testing.T) {
	root := levelTree(1)
	path := writeDocument(t, root, format.CompressionZlib)

	var out bytes.Buffer
	require.NoError(t, run([]string{"--format", "yaml", path}, &out))
	decoded, err := nbtyaml.Unmarshal(out.Bytes())
	require.NoError(t, err)
	require.True(t, root.Equal(decoded))

	out.Reset()
	require.NoError(t, run([]string{"-f", "cbor", path}, &out))
	fromCBOR, err := convert.UnmarshalCBOR(out.Bytes())
	require.NoError(t, err)
	data, _ := fromCBOR.Get("Data")
	name, _ := data.Get("LevelName")
	s, _ := name.AsString()
	require.Equal(t, "New World", s)
}

func TestRun_Recompress(t *testing.T) {
	root := levelTree(7)
	path := writeDocument(t, root, format.CompressionGzip)
	target := filepath.Join(t.TempDir(), "level.zst")

	var out bytes.Buffer
	require.NoError(t, run([]string{"--out-compression", "zstd", "-o", target, path}, &out))
	require.Zero(t, out.Len())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	decoded, compression, err := nbt.DecodeCompressed(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, compression)
	require.True(t, root.Equal(decoded))
}

func TestRun_YAMLInputToNBT(t *testing.T) {
	root := levelTree(3)
	doc, err := nbtyaml.Marshal(root)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, doc, 0o600))

	var out bytes.Buffer
	require.NoError(t, run([]string{"--input-format", "yaml", "--out-compression", "none", path}, &out))

	decoded, err := nbt.Decode(out.Bytes())
	require.NoError(t, err)
	require.True(t, root.Equal(decoded))
}

func TestRun_LittleEndian(t *testing.T) {
	path := writeDocument(t, levelTree(5), format.CompressionNone, codec.WithLittleEndian())

	var out bytes.Buffer
	require.Error(t, run([]string{path}, &out), "little-endian input read as big-endian")

	out.Reset()
	require.NoError(t, run([]string{"--little-endian", "--color", "never", path}, &out))
	require.Contains(t, out.String(), "version: 5")
}

func TestRun_Fingerprint(t *testing.T) {
	root := levelTree(9)
	path := writeDocument(t, root, format.CompressionGzip)

	var out bytes.Buffer
	require.NoError(t, run([]string{"--fingerprint", path}, &out))

	sum, err := nbt.Fingerprint(root)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%016x\n", sum), out.String())
}

func TestRun_Diff(t *testing.T) {
	a := writeDocument(t, levelTree(1), format.CompressionGzip)
	b := writeDocument(t, levelTree(2), format.CompressionZlib)

	var out bytes.Buffer
	require.NoError(t, run([]string{"--diff", a, a}, &out), "identical documents")
	require.Zero(t, out.Len())

	err := run([]string{"--diff", b, a}, &out)
	var exit exitError
	require.ErrorAs(t, err, &exit)
	require.Equal(t, 1, exit.ExitCode())
	require.Contains(t, out.String(), "-         version: 1,\n")
	require.Contains(t, out.String(), "+         version: 2,\n")
	require.Contains(t, out.String(), `          LevelName: "New World"`)
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer

	require.Error(t, run(nil, &out), "missing input")
	require.Error(t, run([]string{"--format", "json", "x"}, &out))
	require.Error(t, run([]string{filepath.Join(t.TempDir(), "missing.dat")}, &out))
	require.NoError(t, run([]string{"--help"}, &out))
}

func TestDiffLines(t *testing.T) {
	diff := diffLines("a\nb\nc\n", "a\nx\nc\n")

	require.Equal(t, "  a\n- b\n+ x\n  c\n", diff)
}

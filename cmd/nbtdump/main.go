// nbtdump prints NBT documents in a readable form.
//
// The input may be raw or wrapped in gzip, zlib or zstd; the wrapper is
// detected from its magic bytes unless --compression names it. The document
// is rendered as SNBT (default), lossless YAML or CBOR. With --out-compression
// the document is written back as binary NBT instead, which converts between
// compressions and, together with --input-format yaml, turns an edited YAML
// dump back into an NBT file.
//
// With --diff the SNBT renderings of two documents are compared line by line
// and the command exits with status 1 when they differ.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/arloliu/nbt"
)

type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func (e exitError) ExitCode() int { return e.code }

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string, stdout io.Writer) error {
	var flags flagValues

	flagSet := pflag.NewFlagSet("nbtdump", pflag.ContinueOnError)
	flags.addFlags(flagSet)
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	if flagSet.NArg() != 1 {
		printHelp(flagSet)
		return fmt.Errorf("expected exactly one input file, got %d", flagSet.NArg())
	}

	cfg, err := flags.resolve(flagSet)
	if err != nil {
		return err
	}

	logger := initLogger("nbtdump", cfg.Verbose)
	d := newDumper(cfg, logger)

	root, compression, err := d.readDocument(flagSet.Arg(0))
	if err != nil {
		return err
	}

	out := stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch {
	case flags.diffPath != "":
		other, _, err := d.readDocument(flags.diffPath)
		if err != nil {
			return err
		}

		diff, differ, err := d.diffDocuments(root, other)
		if err != nil {
			return err
		}
		if !differ {
			logger.Debug().Msg("documents are identical")
			return nil
		}
		if _, err := io.WriteString(out, diff); err != nil {
			return err
		}

		return exitError{code: 1}

	case flags.printHash:
		sum, err := nbt.Fingerprint(root)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%016x\n", sum)

		return err
	}

	data, err := d.render(root, d.colors(out))
	if err != nil {
		return err
	}

	logger.Debug().
		Stringer("input_compression", compression).
		Str("format", cfg.Format).
		Str("out_compression", cfg.OutCompression).
		Int("bytes", len(data)).
		Msg("rendered document")

	_, err = out.Write(data)

	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `nbtdump prints NBT documents as SNBT, YAML or CBOR.

Usage:
  nbtdump [flags] FILE

FILE may be "-" to read from stdin. Settings are taken from --config (TOML),
then overridden by flags given on the command line.

Flags:
`)
	flagSet.PrintDefaults()
}

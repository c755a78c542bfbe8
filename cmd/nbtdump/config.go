package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/format"
)

// Config holds the effective nbtdump settings.
type Config struct {
	Format         string // snbt, yaml or cbor
	InputFormat    string // nbt or yaml
	Compression    string // auto or a compression name
	OutCompression string // re-encode as NBT with this compression when set
	Output         string
	Color          string // auto, always or never
	Indent         string
	LittleEndian   bool
	MaxDepth       int
	Verbose        bool
}

// DefaultConfig returns the settings used when neither a config file nor a
// flag overrides them.
func DefaultConfig() Config {
	return Config{
		Format:      "snbt",
		InputFormat: "nbt",
		Compression: "auto",
		Color:       "auto",
		Indent:      "    ",
		MaxDepth:    codec.DefaultMaxDepth,
	}
}

type fileConfig struct {
	Format         string `toml:"format"`
	InputFormat    string `toml:"input_format"`
	Compression    string `toml:"compression"`
	OutCompression string `toml:"out_compression"`
	Color          string `toml:"color"`
	Indent         string `toml:"indent"`
	LittleEndian   bool   `toml:"little_endian"`
	MaxDepth       int    `toml:"max_depth"`
	Verbose        bool   `toml:"verbose"`
}

// loadConfigFile overrides cfg with every key defined in the TOML file at path.
func loadConfigFile(path string, cfg Config) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load nbtdump config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load nbtdump config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(raw.Format)
	}
	if meta.IsDefined("input_format") {
		cfg.InputFormat = strings.TrimSpace(raw.InputFormat)
	}
	if meta.IsDefined("compression") {
		cfg.Compression = strings.TrimSpace(raw.Compression)
	}
	if meta.IsDefined("out_compression") {
		cfg.OutCompression = strings.TrimSpace(raw.OutCompression)
	}
	if meta.IsDefined("color") {
		cfg.Color = strings.TrimSpace(raw.Color)
	}
	if meta.IsDefined("indent") {
		cfg.Indent = raw.Indent
	}
	if meta.IsDefined("little_endian") {
		cfg.LittleEndian = raw.LittleEndian
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}

	return cfg, nil
}

// flagValues binds command line flags. Only flags the user changed override
// the file configuration.
type flagValues struct {
	cfg        Config
	configPath string
	diffPath   string
	printHash  bool
}

func (f *flagValues) addFlags(flagSet *pflag.FlagSet) {
	d := DefaultConfig()
	flagSet.StringVarP(&f.cfg.Format, "format", "f", d.Format, "output rendering: snbt, yaml or cbor")
	flagSet.StringVar(&f.cfg.InputFormat, "input-format", d.InputFormat, "input format: nbt or yaml")
	flagSet.StringVarP(&f.cfg.Compression, "compression", "c", d.Compression, "input compression: auto, none, gzip, zlib, zstd, s2 or lz4")
	flagSet.StringVar(&f.cfg.OutCompression, "out-compression", d.OutCompression, "write binary NBT with this compression instead of a rendering")
	flagSet.StringVarP(&f.cfg.Output, "output", "o", d.Output, "write to this file instead of stdout")
	flagSet.StringVar(&f.cfg.Color, "color", d.Color, "colorize SNBT: auto, always or never")
	flagSet.StringVar(&f.cfg.Indent, "indent", d.Indent, "SNBT indentation, empty for compact output")
	flagSet.BoolVar(&f.cfg.LittleEndian, "little-endian", d.LittleEndian, "read and write little-endian (Bedrock) NBT")
	flagSet.IntVar(&f.cfg.MaxDepth, "max-depth", d.MaxDepth, "maximum nesting depth")
	flagSet.BoolVarP(&f.cfg.Verbose, "verbose", "v", d.Verbose, "enable debug logging")
	flagSet.StringVar(&f.configPath, "config", "", "TOML file with default settings")
	flagSet.StringVar(&f.diffPath, "diff", "", "compare against this file and print a line diff")
	flagSet.BoolVar(&f.printHash, "fingerprint", false, "print the xxHash64 fingerprint of the document")
}

// resolve merges defaults, the config file and changed flags, in that order.
func (f *flagValues) resolve(flagSet *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = loadConfigFile(f.configPath, cfg); err != nil {
			return Config{}, err
		}
	}

	overrides := map[string]func(){
		"format":          func() { cfg.Format = f.cfg.Format },
		"input-format":    func() { cfg.InputFormat = f.cfg.InputFormat },
		"compression":     func() { cfg.Compression = f.cfg.Compression },
		"out-compression": func() { cfg.OutCompression = f.cfg.OutCompression },
		"output":          func() { cfg.Output = f.cfg.Output },
		"color":           func() { cfg.Color = f.cfg.Color },
		"indent":          func() { cfg.Indent = f.cfg.Indent },
		"little-endian":   func() { cfg.LittleEndian = f.cfg.LittleEndian },
		"max-depth":       func() { cfg.MaxDepth = f.cfg.MaxDepth },
		"verbose":         func() { cfg.Verbose = f.cfg.Verbose },
	}
	for name, apply := range overrides {
		if flagSet.Changed(name) {
			apply()
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Format {
	case "snbt", "yaml", "cbor":
	default:
		return fmt.Errorf("invalid format %q: want snbt, yaml or cbor", c.Format)
	}

	switch c.InputFormat {
	case "nbt", "yaml":
	default:
		return fmt.Errorf("invalid input format %q: want nbt or yaml", c.InputFormat)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q: want auto, always or never", c.Color)
	}

	if c.Compression != "auto" {
		if _, ok := format.ParseCompression(c.Compression); !ok {
			return fmt.Errorf("invalid compression %q", c.Compression)
		}
	}
	if c.OutCompression != "" {
		if _, ok := format.ParseCompression(c.OutCompression); !ok {
			return fmt.Errorf("invalid output compression %q", c.OutCompression)
		}
	}

	if c.MaxDepth < 1 {
		return fmt.Errorf("invalid max depth %d: must be at least 1", c.MaxDepth)
	}

	return nil
}

// CodecOptions returns the codec options for the byte order, depth limit and logger.
func (c Config) CodecOptions(logger zerolog.Logger) []codec.Option {
	opts := []codec.Option{codec.WithMaxDepth(c.MaxDepth), codec.WithLogger(logger)}
	if c.LittleEndian {
		opts = append(opts, codec.WithLittleEndian())
	}

	return opts
}

package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"ramen/internal/trace"
)

// Compile настраивает конвейер bind → resolve → lower.
type Compile struct {
	ModuleName       string `toml:"module_name" yaml:"module_name"`
	LiteralWidth     uint32 `toml:"literal_width" yaml:"literal_width"`
	SymbolSeparator  string `toml:"symbol_separator" yaml:"symbol_separator"`
	LinkageSeparator string `toml:"linkage_separator" yaml:"linkage_separator"`
}

// Diagnostics настраивает вывод диагностик.
type Diagnostics struct {
	Max     int    `toml:"max" yaml:"max"`
	Color   string `toml:"color" yaml:"color"` // auto | on | off
	Context int8   `toml:"context" yaml:"context"`
}

// Trace настраивает трассировку проходов.
type Trace struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	Mode   string `toml:"mode" yaml:"mode"`     // stream | ring | both
	Output string `toml:"output" yaml:"output"` // "" | stderr | stdout | путь к файлу
}

// Config is the contents of ramen.toml / ramen.yaml.
type Config struct {
	Compile     Compile     `toml:"compile" yaml:"compile"`
	Diagnostics Diagnostics `toml:"diagnostics" yaml:"diagnostics"`
	Trace       Trace       `toml:"trace" yaml:"trace"`
}

// Config file names, looked up in this order.
const (
	TomlName = "ramen.toml"
	YamlName = "ramen.yaml"
)

// MaxLiteralWidth is the widest integer type the backend can represent.
const MaxLiteralWidth = 1<<23 - 1

var (
	// ErrCompileSectionMissing indicates a config file without [compile].
	ErrCompileSectionMissing = errors.New("missing [compile]")
	// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config format")
)

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		Compile: Compile{
			ModuleName:       "main",
			LiteralWidth:     32,
			SymbolSeparator:  ".",
			LinkageSeparator: "$",
		},
		Diagnostics: Diagnostics{Max: 100, Color: "auto", Context: 1},
		Trace:       Trace{Level: "off", Format: "text", Mode: "stream"},
	}
}

// Load reads a config file; the format follows the extension. Keys missing
// in the file keep their default values.
func Load(path string) (Config, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data, path)
	case ".yaml", ".yml":
		return ParseYAML(data, path)
	default:
		return Config{}, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// ParseTOML decodes TOML config data on top of the defaults.
func ParseTOML(data []byte, path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("compile") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrCompileSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseYAML decodes YAML config data on top of the defaults.
func ParseYAML(data []byte, path string) (Config, error) {
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	if _, ok := probe["compile"]; !ok {
		return Config{}, fmt.Errorf("%s: %w", path, ErrCompileSectionMissing)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges. All problems are reported at once.
func (c Config) Validate() error {
	var errs []error
	if !IsValidModuleIdent(c.Compile.ModuleName) {
		errs = append(errs, fmt.Errorf("invalid compile.module_name %q", c.Compile.ModuleName))
	}
	if c.Compile.LiteralWidth == 0 || c.Compile.LiteralWidth > MaxLiteralWidth {
		errs = append(errs, fmt.Errorf("compile.literal_width must be in 1..%d, got %d", MaxLiteralWidth, c.Compile.LiteralWidth))
	}
	if c.Compile.SymbolSeparator == "" {
		errs = append(errs, errors.New("compile.symbol_separator must not be empty"))
	}
	if c.Compile.LinkageSeparator == "" {
		errs = append(errs, errors.New("compile.linkage_separator must not be empty"))
	}
	if c.Diagnostics.Max < 0 {
		errs = append(errs, fmt.Errorf("diagnostics.max must not be negative, got %d", c.Diagnostics.Max))
	}
	switch c.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("diagnostics.color must be auto, on or off, got %q", c.Diagnostics.Color))
	}
	if c.Diagnostics.Context < 0 {
		errs = append(errs, fmt.Errorf("diagnostics.context must not be negative, got %d", c.Diagnostics.Context))
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		errs = append(errs, fmt.Errorf("trace.level: %w", err))
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		errs = append(errs, fmt.Errorf("trace.format: %w", err))
	}
	if c.Trace.Mode != "" {
		if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
			errs = append(errs, fmt.Errorf("trace.mode: %w", err))
		}
	}
	return errors.Join(errs...)
}

// IsValidModuleIdent reports whether name can name the root module: an
// ASCII identifier.
func IsValidModuleIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

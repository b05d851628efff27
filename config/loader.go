package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// file is given
const DefaultConfigFile = "gridtable.yaml"

// EnvPrefix prefixes environment overrides: GRIDTABLE_CELL_WIDTH -> cell_width
const EnvPrefix = "GRIDTABLE_"

// Measurer names
const (
	MeasurerOpenType = "opentype"
	MeasurerMetrics  = "metrics"
)

// Supported notification languages
var Languages = []string{"en", "ja"}

// Config is the full tool configuration: the generation record plus
// settings for the surrounding tool.
type Config struct {
	Table    `koanf:",squash"`
	Language string `koanf:"language"`
	Measurer string `koanf:"measurer"`
	Verbose  bool   `koanf:"verbose"`

	// File is the config file that was read, empty if none
	File string `koanf:"-"`
}

// flagKeys maps CLI flag names that differ from their config key
var flagKeys = map[string]string{
	"lang":     "language",
	"col-head": "col_header_color",
	"row-head": "row_header_color",
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"rows":               d.Rows,
		"cols":               d.Cols,
		"cell_width":         d.CellWidth,
		"cell_height":        d.CellHeight,
		"col_header_color":   DefaultColHeaderColor,
		"row_header_color":   DefaultRowHeaderColor,
		"outer_border_width": d.OuterBorderWidth,
		"inner_grid_width":   d.InnerGridWidth,
		"origin_x":           d.OriginX,
		"origin_y":           d.OriginY,
		"font_size":          d.FontSize,
		"font_family":        d.FontFamily,
		"language":           "en",
		"measurer":           MeasurerOpenType,
		"verbose":            false,
	}
}

// Load builds the configuration. Precedence (highest to lowest): flags that
// were explicitly set > GRIDTABLE_ env vars > config file > defaults.
// Palette names are resolved and the table record is validated.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	table, err := NewTable(cfg.Table)
	if err != nil {
		return nil, err
	}
	cfg.Table = table

	if err := cfg.validateTool(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validateTool() error {
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	if !supportedLanguage(c.Language) {
		return fmt.Errorf("%w: unsupported language %q (want one of %s)",
			ErrInvalidConfig, c.Language, strings.Join(Languages, ", "))
	}
	switch c.Measurer {
	case MeasurerOpenType, MeasurerMetrics:
	default:
		return fmt.Errorf("%w: unknown measurer %q (want %s or %s)",
			ErrInvalidConfig, c.Measurer, MeasurerOpenType, MeasurerMetrics)
	}
	return nil
}

func supportedLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// findConfigFile returns the explicit path if given, otherwise the default
// file when it exists in the working directory
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

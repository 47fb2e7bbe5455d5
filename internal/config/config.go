// Package config loads the renderer's tunable Options from environment
// variables, with an embedded defaults file as a baseline and an
// optional TOML file to override the border point-width/segment maps.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. A .env file in the working directory, if present
//  3. Embedded defaults file (fallback, included in binary)
//  4. Hard-coded defaults (lowest priority)
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"sheetraster/internal/style"
	"sheetraster/internal/units"
)

// envDefaults contains the baseline environment assignments embedded at
// build time, so the binary works standalone without an external .env
// file sitting next to it.
//
//go:embed defaults.env
var envDefaults string

// Options holds every tunable the renderer consults, per the options
// recognised by the top-level Render call. All fields carry the
// defaults from the spec table unless overridden.
type Options struct {
	CharacterUnit float64 // points per character unit, default 5.85
	DPI           float64 // default 192

	BorderFallbackColor    string // e.g. "lightgray"
	BorderFallbackStyle    string // "none" by default
	BorderPointWidthMap    map[string]float64
	BorderPointSegmentsMap map[string][]float64

	TextFallbackColor                  string
	TextFallbackFontFamilyName         string
	TextFallbackFontSize               float64
	TextFallbackAlignmentHorizontal    string
	TextFallbackAlignmentVertical      string
	TextFallbackAlignmentWrapText      bool
	TextFallbackAlignmentShrinkToFit   bool
	TextFallbackAlignmentIndent        float64
	TextFallbackAlignmentTextDirection string
	TextFallbackAlignmentTextRotation  float64

	TextLineHeight float64 // multiplier, default 1.2

	BackgroundColor          string // default "white"
	FallbackColCharUnitWidth float64 // default 13
	CellPointPadding         float64 // default 2

	// BorderStyleMapFile, when set, names a TOML file overriding
	// BorderPointWidthMap/BorderPointSegmentsMap — useful for matching
	// a specific spreadsheet application's border rendering without a
	// rebuild.
	BorderStyleMapFile string
}

// borderStyleMapFile is the on-disk shape of an optional TOML override
// for the border style maps.
type borderStyleMapFile struct {
	Width    map[string]float64   `toml:"width"`
	Segments map[string][]float64 `toml:"segments"`
}

// Defaults returns the spec-mandated default Options.
func Defaults() Options {
	return Options{
		CharacterUnit: 5.85,
		DPI:           192,

		BorderFallbackColor:    "lightgray",
		BorderFallbackStyle:    "none",
		BorderPointWidthMap:    cloneFloatMap(style.DefaultBorderPointWidthMap),
		BorderPointSegmentsMap: cloneSegmentsMap(style.DefaultBorderPointSegmentsMap),

		TextFallbackColor:                  "black",
		TextFallbackFontFamilyName:         "Arial",
		TextFallbackFontSize:               10,
		TextFallbackAlignmentHorizontal:    "left",
		TextFallbackAlignmentVertical:      "bottom",
		TextFallbackAlignmentWrapText:      false,
		TextFallbackAlignmentShrinkToFit:   false,
		TextFallbackAlignmentIndent:        0,
		TextFallbackAlignmentTextDirection: "inherit",
		TextFallbackAlignmentTextRotation:  0,

		TextLineHeight: 1.2,

		BackgroundColor:          "white",
		FallbackColCharUnitWidth: 13,
		CellPointPadding:         2,
	}
}

// Load builds Options by layering environment variables over a .env
// file in the working directory, over the embedded defaults file, over
// the hard-coded Defaults(), then applies
// an optional TOML border-style-map override.
func Load() (Options, error) {
	_ = godotenv.Load()
	if envMap, err := godotenv.Unmarshal(envDefaults); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	opts := Defaults()

	opts.CharacterUnit = getEnvFloat("SHEETRASTER_CHARACTER_UNIT", opts.CharacterUnit)
	opts.DPI = getEnvFloat("SHEETRASTER_DPI", opts.DPI)

	opts.BorderFallbackColor = getEnvOrDefault("SHEETRASTER_BORDER_FALLBACK_COLOR", opts.BorderFallbackColor)
	opts.BorderFallbackStyle = getEnvOrDefault("SHEETRASTER_BORDER_FALLBACK_STYLE", opts.BorderFallbackStyle)

	opts.TextFallbackColor = getEnvOrDefault("SHEETRASTER_TEXT_FALLBACK_COLOR", opts.TextFallbackColor)
	opts.TextFallbackFontFamilyName = getEnvOrDefault("SHEETRASTER_TEXT_FALLBACK_FONT_FAMILY", opts.TextFallbackFontFamilyName)
	opts.TextFallbackFontSize = getEnvFloat("SHEETRASTER_TEXT_FALLBACK_FONT_SIZE", opts.TextFallbackFontSize)
	opts.TextFallbackAlignmentHorizontal = getEnvOrDefault("SHEETRASTER_TEXT_FALLBACK_ALIGN_H", opts.TextFallbackAlignmentHorizontal)
	opts.TextFallbackAlignmentVertical = getEnvOrDefault("SHEETRASTER_TEXT_FALLBACK_ALIGN_V", opts.TextFallbackAlignmentVertical)
	opts.TextFallbackAlignmentWrapText = getEnvBool("SHEETRASTER_TEXT_FALLBACK_WRAP", opts.TextFallbackAlignmentWrapText)
	opts.TextFallbackAlignmentShrinkToFit = getEnvBool("SHEETRASTER_TEXT_FALLBACK_SHRINK", opts.TextFallbackAlignmentShrinkToFit)
	opts.TextFallbackAlignmentIndent = getEnvFloat("SHEETRASTER_TEXT_FALLBACK_INDENT", opts.TextFallbackAlignmentIndent)
	opts.TextFallbackAlignmentTextDirection = getEnvOrDefault("SHEETRASTER_TEXT_FALLBACK_DIRECTION", opts.TextFallbackAlignmentTextDirection)
	opts.TextFallbackAlignmentTextRotation = getEnvFloat("SHEETRASTER_TEXT_FALLBACK_ROTATION", opts.TextFallbackAlignmentTextRotation)

	opts.TextLineHeight = getEnvFloat("SHEETRASTER_TEXT_LINE_HEIGHT", opts.TextLineHeight)

	opts.BackgroundColor = getEnvOrDefault("SHEETRASTER_BACKGROUND_COLOR", opts.BackgroundColor)
	opts.FallbackColCharUnitWidth = getEnvFloat("SHEETRASTER_FALLBACK_COL_WIDTH", opts.FallbackColCharUnitWidth)
	opts.CellPointPadding = getEnvFloat("SHEETRASTER_CELL_PADDING", opts.CellPointPadding)

	opts.BorderStyleMapFile = os.Getenv("SHEETRASTER_BORDER_STYLE_MAP_FILE")
	if opts.BorderStyleMapFile != "" {
		if err := applyBorderStyleMapFile(&opts, opts.BorderStyleMapFile); err != nil {
			return Options{}, err
		}
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// applyBorderStyleMapFile overlays a TOML file's [width]/[segments]
// tables onto the current border style maps, leaving styles the file
// doesn't mention at their existing values.
func applyBorderStyleMapFile(opts *Options, path string) error {
	var f borderStyleMapFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return fmt.Errorf("config: decode border style map %q: %w", path, err)
	}
	for k, v := range f.Width {
		opts.BorderPointWidthMap[k] = v
	}
	for k, v := range f.Segments {
		opts.BorderPointSegmentsMap[k] = v
	}
	return nil
}

// Validate checks that Options values are internally consistent.
func (o Options) Validate() error {
	if o.CharacterUnit <= 0 {
		return fmt.Errorf("config: characterUnit must be positive, got %v", o.CharacterUnit)
	}
	if o.DPI <= 0 {
		return fmt.Errorf("config: dpi must be positive, got %v", o.DPI)
	}
	if o.TextFallbackFontSize <= 0 {
		return fmt.Errorf("config: textFallbackFontSize must be positive, got %v", o.TextFallbackFontSize)
	}
	if o.TextLineHeight <= 0 {
		return fmt.Errorf("config: textLineHeight must be positive, got %v", o.TextLineHeight)
	}
	if o.FallbackColCharUnitWidth <= 0 {
		return fmt.Errorf("config: fallbackColCharUnitWidth must be positive, got %v", o.FallbackColCharUnitWidth)
	}
	if o.CellPointPadding < 0 {
		return fmt.Errorf("config: cellPointPadding must not be negative, got %v", o.CellPointPadding)
	}
	return nil
}

// Scale builds the unit-conversion Scale these Options imply.
func (o Options) Scale() units.Scale {
	return units.NewScale(o.CharacterUnit, o.DPI)
}

// StyleParams lowers Options into the style package's Params, resolving
// the named fallback colors ("lightgray", "black", "white", ...) to
// #RRGGBBAA up front.
func (o Options) StyleParams() style.Params {
	return style.Params{
		Scale: o.Scale(),

		BorderFallbackColor:    namedColorToHex(o.BorderFallbackColor),
		BorderFallbackStyle:    o.BorderFallbackStyle,
		BorderPointWidthMap:    o.BorderPointWidthMap,
		BorderPointSegmentsMap: o.BorderPointSegmentsMap,

		TextFallbackColor:                  namedColorToHex(o.TextFallbackColor),
		TextFallbackFontFamilyName:         o.TextFallbackFontFamilyName,
		TextFallbackFontSize:               o.TextFallbackFontSize,
		TextFallbackAlignmentHorizontal:    o.TextFallbackAlignmentHorizontal,
		TextFallbackAlignmentVertical:      o.TextFallbackAlignmentVertical,
		TextFallbackAlignmentWrapText:      o.TextFallbackAlignmentWrapText,
		TextFallbackAlignmentShrinkToFit:   o.TextFallbackAlignmentShrinkToFit,
		TextFallbackAlignmentIndent:        o.TextFallbackAlignmentIndent,
		TextFallbackAlignmentTextDirection: o.TextFallbackAlignmentTextDirection,
		TextFallbackAlignmentTextRotation:  o.TextFallbackAlignmentTextRotation,

		TextLineHeight: o.TextLineHeight,

		BackgroundColor: namedColorToHex(o.BackgroundColor),
	}
}

// namedColorToHex resolves the small set of CSS-style color keywords
// the spec's defaults use; anything already in #RRGGBB(AA) form passes
// through unchanged.
func namedColorToHex(name string) string {
	switch name {
	case "lightgray", "lightgrey":
		return "#D3D3D3FF"
	case "black":
		return "#000000FF"
	case "white":
		return "#FFFFFFFF"
	default:
		return name
	}
}

func cloneFloatMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSegmentsMap(m map[string][]float64) map[string][]float64 {
	out := make(map[string][]float64, len(m))
	for k, v := range m {
		cp := make([]float64, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

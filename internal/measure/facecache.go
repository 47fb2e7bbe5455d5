package measure

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"sheetraster/internal/style"
)

// faceKey identifies a cached font face by everything that changes its
// glyph metrics.
type faceKey struct {
	path   string
	sizePx float64
}

// faceCache is a mutex-guarded, lazily-populated cache of parsed font
// faces, keyed by (font file path, pixel size). It mirrors the
// teacher's internal/storage.Storage shape: a mutex plus plain maps,
// populated on first miss and read thereafter — the same "read-heavy,
// rare writes" profile, just caching glyph metrics instead of CSV
// records.
type faceCache struct {
	mu      sync.Mutex
	parsed  map[string]*truetype.Font // path -> parsed font file
	faces   map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{
		parsed: make(map[string]*truetype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

// Face returns the font.Face for the given lowered font, parsing and
// caching the underlying TTF file on first use.
func (c *faceCache) Face(f style.Font) (font.Face, error) {
	path := locateFont(f)
	key := faceKey{path: path, sizePx: f.SizePx}

	c.mu.Lock()
	defer c.mu.Unlock()

	if face, ok := c.faces[key]; ok {
		return face, nil
	}

	tf, ok := c.parsed[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("measure: read font %q: %w", path, err)
		}
		tf, err = truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("measure: parse font %q: %w", path, err)
		}
		c.parsed[path] = tf
	}

	face := truetype.NewFace(tf, &truetype.Options{
		Size: f.SizePx,
		DPI:  72, // SizePx is already device pixels; avoid a second DPI scale
	})
	c.faces[key] = face
	return face, nil
}

// locateFont picks a font file for the lowered font's family/weight/
// style, falling back across platform font directories the way the
// teacher's findFont does, generalized from a fixed Arial/DejaVuSans
// pair to any generic family.
func locateFont(f style.Font) string {
	candidates := candidatePaths(f)
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return candidates[len(candidates)-1]
}

func candidatePaths(f style.Font) []string {
	if runtime.GOOS == "windows" {
		winRoot := os.Getenv("WINDIR")
		if winRoot == "" {
			winRoot = `C:\Windows`
		}
		return windowsCandidates(winRoot, f)
	}
	return unixCandidates(f)
}

func windowsCandidates(winRoot string, f style.Font) []string {
	switch {
	case f.Bold && f.Italic:
		return []string{winRoot + `\Fonts\arialbi.ttf`, winRoot + `\Fonts\Arial.ttf`}
	case f.Bold:
		return []string{winRoot + `\Fonts\arialbd.ttf`, winRoot + `\Fonts\Arial.ttf`}
	case f.Italic:
		return []string{winRoot + `\Fonts\ariali.ttf`, winRoot + `\Fonts\Arial.ttf`}
	default:
		return []string{winRoot + `\Fonts\arial.ttf`, winRoot + `\Fonts\Arial.ttf`}
	}
}

func unixCandidates(f style.Font) []string {
	base := "DejaVuSans"
	switch f.Generic {
	case "serif":
		base = "DejaVuSerif"
	case "monospace":
		base = "DejaVuSansMono"
	}

	suffix := ""
	switch {
	case f.Bold && f.Italic:
		suffix = "-BoldOblique"
	case f.Bold:
		suffix = "-Bold"
	case f.Italic:
		suffix = "-Oblique"
	}

	name := base + suffix + ".ttf"
	return []string{
		"/usr/share/fonts/truetype/dejavu/" + name,
		"/usr/share/fonts/TTF/" + name,
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}
}

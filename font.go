package main

import (
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	px   int
	bold bool
}

// FontCache builds font faces on demand, one per pixel size. Text is drawn
// in screen pixels, so zoomed world text needs many sizes.
type FontCache struct {
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

// LoadFonts attempts to load the TrueType fonts from disk, then the bundled
// Go fonts. If both fail every face falls back to basicfont.Face7x13.
func LoadFonts() *FontCache {
	fc := &FontCache{faces: make(map[faceKey]font.Face)}
	fc.regular = parseFont(FontRegular, goregular.TTF)
	fc.bold = parseFont(FontBold, gobold.TTF)
	if fc.bold == nil {
		fc.bold = fc.regular
	}
	return fc
}

func parseFont(path string, fallback []byte) *opentype.Font {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("font not found, using Go font")
		data = fallback
	}
	f, err := opentype.Parse(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("font parse error, using basic font")
		return nil
	}
	return f
}

// Face returns a face for the given pixel size.
func (fc *FontCache) Face(px float64, bold bool) font.Face {
	src := fc.regular
	if bold {
		src = fc.bold
	}
	if src == nil {
		return basicfont.Face7x13
	}
	size := int(math.Round(px))
	size = max(FontSizeMinPx, min(size, FontSizeMaxPx))

	key := faceKey{px: size, bold: bold}
	if face, ok := fc.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Warn().Err(err).Int("px", size).Msg("new face error, using basic font")
		return basicfont.Face7x13
	}
	fc.faces[key] = face
	return face
}

func lineMetrics(face font.Face) (ascent, lineHeight int) {
	metrics := face.Metrics()
	ascent = metrics.Ascent.Ceil()
	lineHeight = ascent + metrics.Descent.Ceil()
	if lineHeight <= 0 {
		return 12, 16
	}
	return ascent, lineHeight
}

// MeasureTextLines returns the pixel size of multiline text.
func MeasureTextLines(face font.Face, s string) (w, h int) {
	_, lineHeight := lineMetrics(face)
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		w = max(w, font.MeasureString(face, line).Ceil())
	}
	return w, lineHeight * len(lines)
}

// DrawTextLines draws multiline text with the provided font.Face and color starting at (x,y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	ascent, lineHeight := lineMetrics(face)
	// Treat provided y as the top of the first line. text.Draw expects baseline y,
	// so shift by ascent.
	baseY := y + ascent
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, baseY+(i*lineHeight), clr)
	}
}

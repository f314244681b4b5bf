package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph = ' '
	lastGlyph  = '~'
	atlasWidth = 256
	glyphPad   = 1
)

// ErrEmptyAtlas is returned when a font yields no printable glyphs
var ErrEmptyAtlas = errors.New("font atlas has no glyphs")

// Glyph is the placement of one character in the atlas, in pixels
type Glyph struct {
	AtlasX, AtlasY float32
	Width, Height  float32
	BearingX       float32
	BearingY       float32 // distance from baseline to the top of the bitmap
	Advance        float32
}

// FontAtlas holds baked printable ASCII glyphs. TextureID is zero until Upload.
type FontAtlas struct {
	TextureID  uint32
	Width      int
	Height     int
	LineHeight float32
	Glyphs     map[rune]Glyph
}

// BakeFontAtlas rasterizes printable ASCII from an OpenType/TrueType font
// into a single-channel image at the given pixel size.
func BakeFontAtlas(src []byte, px int) (*FontAtlas, *image.Alpha, error) {
	f, err := opentype.Parse(src)
	if err != nil {
		return nil, nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(px), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	// Row packing pass to size the canvas
	x, y, rowH := 0, 0, 0
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		dr, _, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || dr.Empty() {
			continue
		}
		if x+dr.Dx()+glyphPad > atlasWidth {
			x, y, rowH = 0, y+rowH+glyphPad, 0
		}
		x += dr.Dx() + glyphPad
		rowH = max(rowH, dr.Dy())
	}
	height := nextPowerOfTwo(y + rowH + glyphPad)

	atlas := &FontAtlas{
		Width:      atlasWidth,
		Height:     height,
		LineHeight: float32(face.Metrics().Height.Round()),
		Glyphs:     make(map[rune]Glyph, lastGlyph-firstGlyph+1),
	}
	img := image.NewAlpha(image.Rect(0, 0, atlasWidth, height))

	x, y, rowH = 0, 0, 0
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := Glyph{
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  float32(math.Round(float64(advance) / 64)),
		}
		if !dr.Empty() {
			if x+dr.Dx()+glyphPad > atlasWidth {
				x, y, rowH = 0, y+rowH+glyphPad, 0
			}
			draw.Draw(img, image.Rect(x, y, x+dr.Dx(), y+dr.Dy()), mask, maskp, draw.Src)
			g.AtlasX, g.AtlasY = float32(x), float32(y)
			g.Width, g.Height = float32(dr.Dx()), float32(dr.Dy())
			x += dr.Dx() + glyphPad
			rowH = max(rowH, dr.Dy())
		}
		atlas.Glyphs[r] = g
	}
	if len(atlas.Glyphs) == 0 {
		return nil, nil, ErrEmptyAtlas
	}
	return atlas, img, nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (a *FontAtlas) glyph(r rune) (Glyph, bool) {
	if g, ok := a.Glyphs[r]; ok {
		return g, true
	}
	// unknown runes take the width of a space
	g, ok := a.Glyphs[' ']
	return Glyph{Advance: g.Advance}, ok
}

// Layout appends two triangles per visible glyph of text, with (x, y) the
// baseline origin in a top-left pixel space. Each vertex is x, y, u, v.
func (a *FontAtlas) Layout(text string, x, y, scale float32, out []float32) []float32 {
	aw, ah := float32(a.Width), float32(a.Height)
	for _, r := range text {
		g, _ := a.glyph(r)
		if g.Width > 0 && g.Height > 0 {
			x0 := x + g.BearingX*scale
			y0 := y - g.BearingY*scale
			x1 := x0 + g.Width*scale
			y1 := y0 + g.Height*scale
			u0, v0 := g.AtlasX/aw, g.AtlasY/ah
			u1, v1 := (g.AtlasX+g.Width)/aw, (g.AtlasY+g.Height)/ah
			out = append(out,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += g.Advance * scale
	}
	return out
}

// Measure returns the advance width and tallest glyph height of text in pixels
func (a *FontAtlas) Measure(text string, scale float32) (w, h float32) {
	for _, r := range text {
		g, _ := a.glyph(r)
		w += g.Advance * scale
		h = max(h, g.Height*scale)
	}
	return w, h
}

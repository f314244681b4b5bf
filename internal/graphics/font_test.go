package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func TestBakeFontAtlasCoversPrintableASCII(t *testing.T) {
	atlas, img, err := BakeFontAtlas(gomono.TTF, 16)
	require.NoError(t, err)

	assert.Len(t, atlas.Glyphs, lastGlyph-firstGlyph+1)
	assert.Equal(t, atlasWidth, img.Bounds().Dx())
	assert.Equal(t, atlas.Height, img.Bounds().Dy())
	assert.Zero(t, atlas.Height&(atlas.Height-1), "height %d is not a power of two", atlas.Height)
	assert.Positive(t, atlas.LineHeight)

	space := atlas.Glyphs[' ']
	assert.Zero(t, space.Width)
	assert.Positive(t, space.Advance)

	for r, g := range atlas.Glyphs {
		assert.LessOrEqual(t, g.AtlasX+g.Width, float32(atlas.Width), "glyph %q", r)
		assert.LessOrEqual(t, g.AtlasY+g.Height, float32(atlas.Height), "glyph %q", r)
	}
}

func TestBakeFontAtlasRejectsGarbage(t *testing.T) {
	_, _, err := BakeFontAtlas([]byte("not a font"), 16)
	assert.Error(t, err)
}

func TestLayoutMonospaceAdvance(t *testing.T) {
	atlas, _, err := BakeFontAtlas(gomono.TTF, 16)
	require.NoError(t, err)

	adv := atlas.Glyphs['M'].Advance
	w, h := atlas.Measure("MiM", 1)
	assert.Equal(t, 3*adv, w)
	assert.Positive(t, h)

	w2, _ := atlas.Measure("MiM", 2)
	assert.Equal(t, 2*w, w2)

	verts := atlas.Layout("a b", 10, 20, 1, nil)
	require.Len(t, verts, 2*6*4, "space emits no quad")

	// second quad starts two advances right of the first
	firstX := verts[0] - atlas.Glyphs['a'].BearingX
	secondX := verts[6*4] - atlas.Glyphs['b'].BearingX
	assert.InDelta(t, 2*adv, secondX-firstX, 1e-4)
	assert.InDelta(t, 10, firstX, 1e-4)
}

func TestLayoutUnknownRuneAdvancesLikeSpace(t *testing.T) {
	atlas, _, err := BakeFontAtlas(gomono.TTF, 12)
	require.NoError(t, err)

	wUnknown, _ := atlas.Measure("é", 1)
	wSpace, _ := atlas.Measure(" ", 1)
	assert.Equal(t, wSpace, wUnknown)
	assert.Empty(t, atlas.Layout("é", 0, 0, 1, nil))
}

func TestLayoutAppendsToBuffer(t *testing.T) {
	atlas, _, err := BakeFontAtlas(gomono.TTF, 12)
	require.NoError(t, err)

	buf := atlas.Layout("x", 0, 0, 1, nil)
	buf = atlas.Layout("y", 0, 20, 1, buf)
	assert.Len(t, buf, 2*6*4)
}

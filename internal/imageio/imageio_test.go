package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadDecodesPNGAndBMP(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 255, A: 255}

	writePNG(t, filepath.Join(dir, "a.png"), solid(4, 2, red))

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, solid(3, 3, red)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bmp"), buf.Bytes(), 0o644))

	a, err := Load(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), a.Bounds())
	assert.Equal(t, red, a.RGBAAt(1, 1))

	b, err := Load(filepath.Join(dir, "b.bmp"))
	require.NoError(t, err)
	assert.Equal(t, 3, b.Bounds().Dx())
	assert.Equal(t, red, b.RGBAAt(2, 2))

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestToRGBAShiftsBoundsToOrigin(t *testing.T) {
	src := solid(8, 8, color.RGBA{G: 255, A: 255}).SubImage(image.Rect(2, 2, 6, 5))
	out := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 3), out.Bounds())
}

func TestLoadCubeFacesNormalizesSizes(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, size := range []int{16, 16, 8, 32, 16, 16} {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		writePNG(t, p, solid(size, size, color.RGBA{B: 200, A: 255}))
		paths = append(paths, p)
	}

	faces, err := LoadCubeFaces(paths)
	require.NoError(t, err)
	for i, f := range faces {
		assert.Equal(t, image.Rect(0, 0, 16, 16), f.Bounds(), "face %d", i)
	}
	assert.Equal(t, uint8(200), faces[2].RGBAAt(5, 5).B)

	_, err = LoadCubeFaces(paths[:5])
	assert.ErrorIs(t, err, ErrFaceCount)
}

func TestRippleMapIsDeterministicAndCentered(t *testing.T) {
	a := RippleMap(64)
	b := RippleMap(64)
	assert.Equal(t, a.Pix, b.Pix)

	var sum, lo, hi int
	lo = 255
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			r := int(a.RGBAAt(x, y).R)
			sum += r
			lo = min(lo, r)
			hi = max(hi, r)
		}
	}
	mean := float64(sum) / (64 * 64)
	assert.InDelta(t, 127.5, mean, 25)
	assert.Less(t, lo, 64)
	assert.Greater(t, hi, 192)
}

func TestGradientSkyFaces(t *testing.T) {
	zenith := color.RGBA{R: 40, G: 90, B: 200, A: 255}
	horizon := color.RGBA{R: 255, G: 230, B: 200, A: 255}
	nadir := color.RGBA{R: 60, G: 50, B: 40, A: 255}

	faces := GradientSky(16, zenith, horizon, nadir)
	for _, f := range faces {
		require.NotNil(t, f)
		assert.Equal(t, 16, f.Bounds().Dx())
		assert.Equal(t, 16, f.Bounds().Dy())
	}

	// +Y looks straight up, -Y straight down
	assert.InDelta(t, float64(zenith.R), float64(faces[2].RGBAAt(8, 8).R), 8)
	assert.InDelta(t, float64(nadir.R), float64(faces[3].RGBAAt(8, 8).R), 8)

	// side faces get brighter toward the horizon row in the middle
	side := faces[4]
	assert.Greater(t, side.RGBAAt(8, 8).G, side.RGBAAt(8, 0).G)
	assert.Greater(t, side.RGBAAt(8, 8).G, side.RGBAAt(8, 15).G)
}

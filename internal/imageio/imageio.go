// Package imageio decodes texture images and prepares them for upload.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrFaceCount is returned when a cubemap does not have exactly six faces
var ErrFaceCount = errors.New("cubemap needs six faces")

// Load decodes an image file into tightly packed RGBA
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return img, nil
}

// Decode reads any registered format (png, jpeg, bmp, webp) into RGBA
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA copies img into an RGBA image whose bounds start at the origin
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Resize scales img to w x h with bilinear filtering
func Resize(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// LoadCubeFaces decodes six faces in +X, -X, +Y, -Y, +Z, -Z order. Every
// face is resized to the square size of the first face, since a cubemap
// needs square faces of equal size.
func LoadCubeFaces(paths []string) ([6]*image.RGBA, error) {
	var faces [6]*image.RGBA
	if len(paths) != 6 {
		return faces, fmt.Errorf("%w: got %d", ErrFaceCount, len(paths))
	}
	for i, p := range paths {
		img, err := Load(p)
		if err != nil {
			return faces, err
		}
		faces[i] = img
	}
	return NormalizeFaces(faces), nil
}

// NormalizeFaces resizes faces to the square size of the first one
func NormalizeFaces(faces [6]*image.RGBA) [6]*image.RGBA {
	b := faces[0].Bounds()
	size := min(b.Dx(), b.Dy())
	for i, f := range faces {
		if fb := f.Bounds(); fb.Dx() != size || fb.Dy() != size {
			faces[i] = Resize(f, size, size)
		}
	}
	return faces
}

// RippleMap generates a distortion texture whose red channel oscillates
// around 0.5 in interfering rings. The output depends only on size.
func RippleMap(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u, v := float64(x)/s, float64(y)/s
			d1 := math.Hypot(u-0.3, v-0.4)
			d2 := math.Hypot(u-0.7, v-0.65)
			w := 0.5*math.Sin(d1*48) + 0.5*math.Sin(d2*37+1.3)
			r := uint8(math.Round(127.5 + 127.5*w/1.0001))
			img.SetRGBA(x, y, color.RGBA{R: r, G: r, B: r, A: 255})
		}
	}
	return img
}

// GradientSky generates six cubemap faces shading from nadir through horizon
// to zenith by the direction's height. Used when a scene lists no backdrop images.
func GradientSky(size int, zenith, horizon, nadir color.RGBA) [6]*image.RGBA {
	var faces [6]*image.RGBA
	for f := range faces {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			tc := (float64(y)+0.5)/float64(size)*2 - 1
			for x := 0; x < size; x++ {
				sc := (float64(x)+0.5)/float64(size)*2 - 1
				dx, dy, dz := cubeDirection(f, sc, tc)
				h := dy / math.Sqrt(dx*dx+dy*dy+dz*dz)
				if h >= 0 {
					img.SetRGBA(x, y, lerpRGBA(horizon, zenith, h))
				} else {
					img.SetRGBA(x, y, lerpRGBA(horizon, nadir, -h))
				}
			}
		}
		faces[f] = img
	}
	return faces
}

// cubeDirection maps face-local coordinates in [-1,1] to the direction the
// GL cubemap convention samples for that texel.
func cubeDirection(face int, sc, tc float64) (x, y, z float64) {
	switch face {
	case 0:
		return 1, -tc, -sc
	case 1:
		return -1, -tc, sc
	case 2:
		return sc, 1, tc
	case 3:
		return sc, -1, -tc
	case 4:
		return sc, -tc, 1
	default:
		return -sc, -tc, -1
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

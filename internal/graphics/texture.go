package graphics

import (
	"image"

	"mirror-scene/internal/config"
	"mirror-scene/internal/imageio"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a GL texture object together with its size
type Texture struct {
	ID     uint32
	Target uint32 // TEXTURE_2D or TEXTURE_CUBE_MAP
	Width  int
	Height int
}

// SamplerOptions selects wrapping and filtering for a 2D texture
type SamplerOptions struct {
	WrapS  string
	WrapT  string
	Filter string
}

// SamplerFromMaterial extracts the sampler settings of a material
func SamplerFromMaterial(m config.MaterialConfig) SamplerOptions {
	return SamplerOptions{WrapS: m.WrapS, WrapT: m.WrapT, Filter: m.Filter}
}

func wrapMode(name string) int32 {
	switch name {
	case config.WrapMirrored:
		return gl.MIRRORED_REPEAT
	case config.WrapClamp:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

// LoadTexture loads a 2D texture from a file
func LoadTexture(path string, opts SamplerOptions) (*Texture, error) {
	rgba, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	return NewTexture(rgba, opts), nil
}

// NewTexture uploads an RGBA image. Linear filtering builds mipmaps and
// turns on anisotropic filtering; nearest keeps texels sharp for pixel art.
func NewTexture(rgba *image.RGBA, opts SamplerOptions) *Texture {
	size := rgba.Rect.Size()

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapMode(opts.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapMode(opts.WrapT))

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	if opts.Filter == config.FilterNearest {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	} else {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		var maxAniso float32
		gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &maxAniso)
		if maxAniso > 0 {
			gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, min(maxAniso, 10))
		}
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{ID: texture, Target: gl.TEXTURE_2D, Width: size.X, Height: size.Y}
}

// LoadCubemap loads six faces in +X, -X, +Y, -Y, +Z, -Z order
func LoadCubemap(paths []string) (*Texture, error) {
	faces, err := imageio.LoadCubeFaces(paths)
	if err != nil {
		return nil, err
	}
	return NewCubemap(faces), nil
}

// NewCubemap uploads six square faces of equal size
func NewCubemap(faces [6]*image.RGBA) *Texture {
	size := faces[0].Rect.Dx()

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texture)

	for i, face := range faces {
		gl.TexImage2D(
			gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i),
			0,
			gl.RGBA8,
			int32(size),
			int32(size),
			0,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			gl.Ptr(face.Pix),
		)
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	return &Texture{ID: texture, Target: gl.TEXTURE_CUBE_MAP, Width: size, Height: size}
}

// Bind binds the texture to a texture unit
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(t.Target, t.ID)
}

// Delete releases the texture
func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// BindTexture binds a raw texture id to a unit, for textures owned by render targets
func BindTexture(unit, target, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(target, id)
}

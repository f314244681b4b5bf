package scenedraw

import (
	"path/filepath"

	"mirror-scene/internal/graphics"
	"mirror-scene/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir = "shaders"
)

// Texture units of the shaded program
const (
	unitDiffuse = 0
	unitEnv     = 1
	unitShadow  = 2
)

// ShaderPaths returns the vertex and fragment source of a program under the assets dir
func ShaderPaths(assetsDir, name string) (string, string) {
	base := filepath.Join(assetsDir, ShadersDir, name)
	return base + ".vert", base + ".frag"
}

// Drawable is one uploaded opaque object. Model is an index into
// transform.Frame.Models.
type Drawable struct {
	Name        string
	Model       int
	Mesh        *graphics.Mesh
	Texture     *graphics.Texture
	Shininess   float32
	BaseColor   mgl32.Vec4
	Reflect     float32
	CastsShadow bool

	center mgl32.Vec3
	radius float32
}

// Bounds is the object-space bounding sphere used for frustum skips
type Bounds struct {
	Center mgl32.Vec3
	Radius float32
}

// Visible returns the indices of bounds whose world-space sphere touches
// the frustum of viewProj. models is indexed in step with bounds.
func Visible(viewProj mgl32.Mat4, models []mgl32.Mat4, bounds []Bounds, out []int) []int {
	out = out[:0]
	frustum := transform.ExtractFrustum(viewProj)
	for i, b := range bounds {
		c, r := transform.BoundingSphere(models[i], b.Center, b.Radius)
		if frustum.ContainsSphere(c, r) {
			out = append(out, i)
		}
	}
	return out
}

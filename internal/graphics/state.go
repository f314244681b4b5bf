package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Init loads GL function pointers; the context must be current
func Init() error {
	return gl.Init()
}

// ConfigureDefaultState sets the state every pass assumes on entry:
// depth testing on, back faces culled, counter-clockwise front faces.
func ConfigureDefaultState() {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
}

// CullFace culls face, or the opposite face when inverted. Passes drawing
// through an orientation-reversing transform set inverted.
func CullFace(face uint32, inverted bool) {
	if inverted {
		if face == gl.BACK {
			face = gl.FRONT
		} else {
			face = gl.BACK
		}
	}
	gl.CullFace(face)
}

// Version returns the GL version string of the current context
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

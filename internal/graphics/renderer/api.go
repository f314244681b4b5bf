package renderer

import (
	"mirror-scene/internal/reflection"
	"mirror-scene/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext is everything a pass may read for one frame. It is built by
// the frame driver after all solvers have run and is never mutated by passes.
type RenderContext struct {
	Frame transform.Frame
	Light transform.CameraState // shadow-casting light

	LightPositions []float32 // 3 per light
	LightColors    []float32 // 3 per light
	Ambient        mgl32.Vec3

	Mirror   reflection.Mirror
	MirrorOK bool // false when the mirror plane degenerated this frame

	Width  int
	Height int

	Shadows            bool
	DistortionStrength float32
	ShowStats          bool
}

// LightCount returns the number of lights in the frame
func (c RenderContext) LightCount() int {
	return len(c.LightPositions) / 3
}

// Pass is one rendering operation with its own lifecycle. Passes run in the
// order they were given to the Renderer; a later pass may sample a target
// written by an earlier one in the same frame.
type Pass interface {
	Name() string
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}

// DepthSource exposes a pass's depth target to later passes
type DepthSource interface {
	DepthTexture() uint32
}

// ColorSource exposes a pass's color target to later passes
type ColorSource interface {
	ColorTexture() uint32
}

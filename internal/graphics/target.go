package graphics

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrIncompleteTarget is returned when the driver cannot build a framebuffer
var ErrIncompleteTarget = errors.New("framebuffer incomplete")

// RenderTarget is an off-screen framebuffer. A depth-only target has a
// comparison-sampled depth texture and no color buffer; a color target has
// a color texture and a depth renderbuffer of the same size.
type RenderTarget struct {
	FBO          uint32
	ColorTexture uint32
	DepthTexture uint32
	depthRBO     uint32
	Width        int
	Height       int
}

// NewDepthTarget creates a depth-only target for shadow mapping. Its
// texture compares against a reference depth when sampled.
func NewDepthTarget(width, height int) (*RenderTarget, error) {
	t := &RenderTarget{Width: width, Height: height}

	gl.GenTextures(1, &t.DepthTexture)
	gl.BindTexture(gl.TEXTURE_2D, t.DepthTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT16, int32(width), int32(height), 0, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &t.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, t.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	return t, t.finish("depth")
}

// NewColorTarget creates a color+depth target whose color texture is
// sampled by later passes
func NewColorTarget(width, height int) (*RenderTarget, error) {
	t := &RenderTarget{Width: width, Height: height}

	gl.GenTextures(1, &t.ColorTexture)
	gl.BindTexture(gl.TEXTURE_2D, t.ColorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenRenderbuffers(1, &t.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &t.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.ColorTexture, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRBO)

	return t, t.finish("color")
}

func (t *RenderTarget) finish(kind string) error {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Delete()
		return fmt.Errorf("%w: %s target %dx%d, status 0x%x", ErrIncompleteTarget, kind, t.Width, t.Height, status)
	}
	return nil
}

// Bind makes the target the draw framebuffer and covers it with the viewport
func (t *RenderTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	gl.Viewport(0, 0, int32(t.Width), int32(t.Height))
}

// Delete releases every GL object of the target
func (t *RenderTarget) Delete() {
	if t.FBO != 0 {
		gl.DeleteFramebuffers(1, &t.FBO)
		t.FBO = 0
	}
	if t.ColorTexture != 0 {
		gl.DeleteTextures(1, &t.ColorTexture)
		t.ColorTexture = 0
	}
	if t.DepthTexture != 0 {
		gl.DeleteTextures(1, &t.DepthTexture)
		t.DepthTexture = 0
	}
	if t.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &t.depthRBO)
		t.depthRBO = 0
	}
}

// BindDefault restores the window framebuffer and viewport
func BindDefault(width, height int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
}

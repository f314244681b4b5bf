package graphics

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Upload copies the baked atlas image into a single-channel texture
func (a *FontAtlas) Upload(img *image.Alpha) {
	gl.GenTextures(1, &a.TextureID)
	gl.BindTexture(gl.TEXTURE_2D, a.TextureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(a.Width), int32(a.Height), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Delete releases the atlas texture
func (a *FontAtlas) Delete() {
	if a.TextureID != 0 {
		gl.DeleteTextures(1, &a.TextureID)
		a.TextureID = 0
	}
}

// TextRenderer draws screen-space text from an uploaded atlas
type TextRenderer struct {
	atlas      *FontAtlas
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
	vertices   []float32
}

func NewTextRenderer(atlas *FontAtlas, vertexPath, fragmentPath string) (*TextRenderer, error) {
	shader, err := NewShader(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	tr := &TextRenderer{atlas: atlas, shader: shader}

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindVertexArray(0)

	shader.Use()
	shader.SetInt("glyphs", 0)
	return tr, nil
}

// SetViewport rebuilds the pixel-space projection, origin at the top left
func (tr *TextRenderer) SetViewport(width, height int) {
	tr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// RenderLines draws lines top to bottom starting at baseline (x, y), lineStep pixels apart
func (tr *TextRenderer) RenderLines(lines []string, x, y, lineStep, scale float32, color mgl32.Vec3) {
	tr.vertices = tr.vertices[:0]
	for _, line := range lines {
		tr.vertices = tr.atlas.Layout(line, x, y, scale, tr.vertices)
		y += lineStep
	}
	if len(tr.vertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	tr.shader.Use()
	tr.shader.SetMatrix4("projection", tr.projection)
	tr.shader.SetVector3("textColor", color)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.atlas.TextureID)

	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	size := len(tr.vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(tr.vertices), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(tr.vertices)/4))
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

// Delete releases the shader and buffers. The atlas is owned by the caller.
func (tr *TextRenderer) Delete() {
	gl.DeleteBuffers(1, &tr.vbo)
	gl.DeleteVertexArrays(1, &tr.vao)
	tr.shader.Delete()
}

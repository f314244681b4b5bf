package graphics

import (
	"mirror-scene/internal/mesh"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attribute locations shared by every program
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribUV       = 2
)

// Mesh is an uploaded, immutable indexed mesh
type Mesh struct {
	vao        uint32
	vbos       [3]uint32
	ebo        uint32
	indexCount int32
}

// NewMesh uploads positions, normals and uvs into separate buffers.
// Missing normals or uvs leave their attribute disabled.
func NewMesh(d mesh.Data) *Mesh {
	m := &Mesh{indexCount: int32(len(d.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	m.vbos[AttribPosition] = uploadAttribute(AttribPosition, 3, d.Positions)
	m.vbos[AttribNormal] = uploadAttribute(AttribNormal, 3, d.Normals)
	m.vbos[AttribUV] = uploadAttribute(AttribUV, 2, d.UVs)

	if len(d.Indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices)*4, gl.Ptr(d.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return m
}

func uploadAttribute(location uint32, size int32, data []float32) uint32 {
	if len(data) == 0 {
		return 0
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, size*4, 0)
	return vbo
}

// Draw issues the indexed draw call
func (m *Mesh) Draw() {
	if m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
}

// Delete releases the vertex array and its buffers
func (m *Mesh) Delete() {
	for i := range m.vbos {
		if m.vbos[i] != 0 {
			gl.DeleteBuffers(1, &m.vbos[i])
			m.vbos[i] = 0
		}
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}

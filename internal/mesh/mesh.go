package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrAttributeLength = errors.New("vertex attribute length mismatch")
	ErrIndexOutOfRange = errors.New("index references a missing vertex")
	ErrUnknownMesh     = errors.New("unknown mesh")
)

// Data is an indexed triangle mesh. Counter-clockwise winding seen from
// outside marks the front face. Positions and normals are xyz triples,
// UVs are pairs, indices are triangle triples.
type Data struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	UVs       []float32 `json:"uvs"`
	Indices   []uint32  `json:"indices"`
}

// VertexCount returns the number of vertices
func (d Data) VertexCount() int {
	return len(d.Positions) / 3
}

// TriangleCount returns the number of indexed triangles
func (d Data) TriangleCount() int {
	return len(d.Indices) / 3
}

// Validate checks attribute lengths and index bounds. A mesh needs at least
// one triangle.
// Normals and UVs are optional, but must match the vertex count when present.
func (d Data) Validate() error {
	if len(d.Positions) == 0 || len(d.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position floats", ErrAttributeLength, len(d.Positions))
	}
	n := d.VertexCount()
	if len(d.Normals) != 0 && len(d.Normals) != 3*n {
		return fmt.Errorf("%w: %d normal floats for %d vertices", ErrAttributeLength, len(d.Normals), n)
	}
	if len(d.UVs) != 0 && len(d.UVs) != 2*n {
		return fmt.Errorf("%w: %d uv floats for %d vertices", ErrAttributeLength, len(d.UVs), n)
	}
	if len(d.Indices) == 0 {
		return fmt.Errorf("%w: no indices", ErrAttributeLength)
	}
	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrAttributeLength, len(d.Indices))
	}
	for i, idx := range d.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: indices[%d]=%d with %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}

// Vertex returns the position of vertex i
func (d Data) Vertex(i uint32) mgl32.Vec3 {
	return mgl32.Vec3{d.Positions[3*i], d.Positions[3*i+1], d.Positions[3*i+2]}
}

// Triangle returns the three corners of triangle i
func (d Data) Triangle(i int) (a, b, c mgl32.Vec3) {
	return d.Vertex(d.Indices[3*i]), d.Vertex(d.Indices[3*i+1]), d.Vertex(d.Indices[3*i+2])
}

// Bounds returns a sphere around the vertex positions, centered on the
// midpoint of their axis-aligned box
func (d Data) Bounds() (mgl32.Vec3, float32) {
	n := d.VertexCount()
	if n == 0 {
		return mgl32.Vec3{}, 0
	}
	lo, hi := d.Vertex(0), d.Vertex(0)
	for i := 1; i < n; i++ {
		v := d.Vertex(uint32(i))
		for k := 0; k < 3; k++ {
			lo[k] = float32(math.Min(float64(lo[k]), float64(v[k])))
			hi[k] = float32(math.Max(float64(hi[k]), float64(v[k])))
		}
	}
	center := lo.Add(hi).Mul(0.5)
	var r float32
	for i := 0; i < n; i++ {
		if l := d.Vertex(uint32(i)).Sub(center).Len(); l > r {
			r = l
		}
	}
	return center, r
}

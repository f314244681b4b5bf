package shadow

import (
	"math"

	"mirror-scene/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// DepthMap is a square depth buffer with texel (0,0) at the bottom left.
// It mirrors what the GPU shadow target holds after the shadow pass.
type DepthMap struct {
	Size  int
	Depth []float32
}

// NewDepthMap returns a depth map cleared to the far plane
func NewDepthMap(size int) *DepthMap {
	m := &DepthMap{Size: size, Depth: make([]float32, size*size)}
	m.Clear()
	return m
}

// Clear resets every texel to 1
func (m *DepthMap) Clear() {
	for i := range m.Depth {
		m.Depth[i] = 1
	}
}

func (m *DepthMap) at(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= m.Size {
		x = m.Size - 1
	}
	if y < 0 {
		y = 0
	} else if y >= m.Size {
		y = m.Size - 1
	}
	return m.Depth[y*m.Size+x]
}

// Render rasterizes a mesh's depth under viewProj*model the way the shadow
// pass does: front faces culled, nearer depth wins.
func (m *DepthMap) Render(viewProj, model mgl32.Mat4, d mesh.Data) {
	mvp := viewProj.Mul4(model)
	size := float32(m.Size)

	for i := 0; i < d.TriangleCount(); i++ {
		a, b, c := d.Triangle(i)
		var win [3]mgl32.Vec3
		clipped := false
		for k, p := range [3]mgl32.Vec3{a, b, c} {
			clip := mvp.Mul4x1(p.Vec4(1))
			if clip.W() <= 0 {
				clipped = true
				break
			}
			ndc := clip.Vec3().Mul(1 / clip.W())
			win[k] = mgl32.Vec3{(ndc.X()*0.5 + 0.5) * size, (ndc.Y()*0.5 + 0.5) * size, ndc.Z()*0.5 + 0.5}
		}
		if clipped {
			continue
		}

		area := edge(win[0], win[1], win[2])
		// counter-clockwise in window space is front facing; the pass culls it
		if area >= 0 {
			continue
		}
		m.fill(win, area)
	}
}

func edge(a, b, p mgl32.Vec3) float32 {
	return (b.X()-a.X())*(p.Y()-a.Y()) - (b.Y()-a.Y())*(p.X()-a.X())
}

func (m *DepthMap) fill(win [3]mgl32.Vec3, area float32) {
	minX := int(math.Floor(float64(min(win[0].X(), win[1].X(), win[2].X()))))
	maxX := int(math.Ceil(float64(max(win[0].X(), win[1].X(), win[2].X()))))
	minY := int(math.Floor(float64(min(win[0].Y(), win[1].Y(), win[2].Y()))))
	maxY := int(math.Ceil(float64(max(win[0].Y(), win[1].Y(), win[2].Y()))))
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, m.Size-1), min(maxY, m.Size-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, 0}
			w0 := edge(win[1], win[2], p) / area
			w1 := edge(win[2], win[0], p) / area
			w2 := edge(win[0], win[1], p) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*win[0].Z() + w1*win[1].Z() + w2*win[2].Z()
			if z < 0 || z > 1 {
				continue
			}
			if idx := y*m.Size + x; z < m.Depth[idx] {
				m.Depth[idx] = z
			}
		}
	}
}

// SampleCompare performs a depth comparison with bilinear weighting of the
// four nearest texels, like a LINEAR filtered comparison sampler with
// LEQUAL. coord is in texture space. Points outside the light frustum are
// fully lit. The result is in [0,1]. shadowFactor in shaded.frag is the GPU
// side of this and must apply the same rules.
func (m *DepthMap) SampleCompare(coord mgl32.Vec3) float32 {
	if coord.X() < 0 || coord.X() > 1 || coord.Y() < 0 || coord.Y() > 1 || coord.Z() > 1 {
		return 1
	}
	ref := coord.Z() - DepthBias

	u := coord.X()*float32(m.Size) - 0.5
	v := coord.Y()*float32(m.Size) - 0.5
	x0 := int(math.Floor(float64(u)))
	y0 := int(math.Floor(float64(v)))
	fx := u - float32(x0)
	fy := v - float32(y0)

	pass := func(x, y int) float32 {
		if ref <= m.at(x, y) {
			return 1
		}
		return 0
	}
	bottom := pass(x0, y0)*(1-fx) + pass(x0+1, y0)*fx
	top := pass(x0, y0+1)*(1-fx) + pass(x0+1, y0+1)*fx
	return bottom*(1-fy) + top*fy
}

// Factor returns the shadow factor of a world-space point
func (m *DepthMap) Factor(viewProj mgl32.Mat4, world mgl32.Vec3) float32 {
	clip := viewProj.Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return 1
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return m.SampleCompare(ndc.Mul(0.5).Add(mgl32.Vec3{0.5, 0.5, 0.5}))
}

// Occluded reports whether a shadow factor counts as in shadow
func Occluded(factor, threshold float32) bool {
	return factor <= threshold
}

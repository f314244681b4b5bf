package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane is ax + by + cz + d = 0 with a unit normal pointing into the frustum
type Plane struct {
	A, B, C, D float32
}

// Frustum is six planes in order: left, right, bottom, top, near, far
type Frustum [6]Plane

// ExtractFrustum builds the clip planes of a combined projection*view matrix
func ExtractFrustum(clip mgl32.Mat4) Frustum {
	// mgl32 is column-major: row i is clip[i], clip[i+4], clip[i+8], clip[i+12]
	row := func(i int) [4]float32 {
		return [4]float32{clip[i], clip[i+4], clip[i+8], clip[i+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	combine := func(a [4]float32, sign float32, b [4]float32) Plane {
		return normalizePlane(Plane{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2], a[3] + sign*b[3]})
	}

	return Frustum{
		combine(r3, 1, r0),
		combine(r3, -1, r0),
		combine(r3, 1, r1),
		combine(r3, -1, r1),
		combine(r3, 1, r2),
		combine(r3, -1, r2),
	}
}

func normalizePlane(p Plane) Plane {
	l := float32(math.Sqrt(float64(p.A*p.A + p.B*p.B + p.C*p.C)))
	if l == 0 {
		return p
	}
	return Plane{p.A / l, p.B / l, p.C / l, p.D / l}
}

// Distance returns the signed distance from the plane to a point
func (p Plane) Distance(v mgl32.Vec3) float32 {
	return p.A*v.X() + p.B*v.Y() + p.C*v.Z() + p.D
}

// ContainsSphere reports whether any part of the sphere lies inside the frustum
func (f Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for i := range f {
		if f[i].Distance(center) < -radius {
			return false
		}
	}
	return true
}

// BoundingSphere returns the world-space sphere enclosing a local sphere of
// the given radius under model. Non-uniform scale takes the largest axis.
func BoundingSphere(model mgl32.Mat4, localCenter mgl32.Vec3, localRadius float32) (mgl32.Vec3, float32) {
	center := model.Mul4x1(localCenter.Vec4(1)).Vec3()
	return center, localRadius * mgl32.ExtractMaxScale(model)
}

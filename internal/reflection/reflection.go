// Package reflection derives planar mirror transforms and the mirrored
// camera used to render what a mirror sees.
package reflection

import (
	"errors"

	"mirror-scene/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegeneratePlane means the mirror transform collapsed its normal,
// for example through a zero scale. The frame's reflection must be skipped.
var ErrDegeneratePlane = errors.New("mirror plane normal is degenerate")

const epsilon = 1e-6

// Plane holds the coefficients of ax + by + cz + d = 0 with a unit (a,b,c)
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// PlaneFromPoint builds a plane through point with the given normal
func PlaneFromPoint(normal, point mgl32.Vec3) (Plane, error) {
	l := normal.Len()
	if !(l > epsilon) {
		return Plane{}, ErrDegeneratePlane
	}
	n := normal.Mul(1 / l)
	return Plane{Normal: n, D: -n.Dot(point)}, nil
}

// PlaneFromModel derives the world plane of a mirror from its model matrix
// and its object-space normal. The normal is carried by the inverse
// transpose of the model's upper 3x3 and the plane passes through the
// model's translation. Singularity is judged on the determinant relative to
// the column lengths, so a uniformly tiny mirror is still a valid plane.
func PlaneFromModel(model mgl32.Mat4, localNormal mgl32.Vec3) (Plane, error) {
	upper := model.Mat3()
	volume := upper.Col(0).Len() * upper.Col(1).Len() * upper.Col(2).Len()
	if volume == 0 || mgl32.Abs(upper.Det()) < epsilon*volume {
		return Plane{}, ErrDegeneratePlane
	}
	normalMatrix := upper.Inv().Transpose()
	world := normalMatrix.Mul3x1(localNormal)
	point := model.Col(3).Vec3()
	return PlaneFromPoint(world, point)
}

// Coefficients returns (a, b, c, d)
func (p Plane) Coefficients() mgl32.Vec4 {
	return p.Normal.Vec4(p.D)
}

// Distance returns the signed distance of v from the plane
func (p Plane) Distance(v mgl32.Vec3) float32 {
	return p.Normal.Dot(v) + p.D
}

// Matrix returns the reflection across the plane. The result is an
// involution with determinant -1, so it reverses triangle winding.
func (p Plane) Matrix() mgl32.Mat4 {
	a, b, c := p.Normal.X(), p.Normal.Y(), p.Normal.Z()
	d := p.D

	// Column-major: index = col*4 + row
	return mgl32.Mat4{
		1 - 2*a*a, -2 * a * b, -2 * a * c, 0,
		-2 * a * b, 1 - 2*b*b, -2 * b * c, 0,
		-2 * a * c, -2 * b * c, 1 - 2*c*c, 0,
		-2 * a * d, -2 * b * d, -2 * c * d, 1,
	}
}

// Mirror is the per-frame result of solving a mirror against a camera
type Mirror struct {
	Plane  Plane
	Matrix mgl32.Mat4
	Camera transform.CameraState // mirrored view, same projection
}

// Solve reflects the primary camera through the mirror described by model
// and localNormal. Points go through the reflection before the primary
// view, so the mirrored view is view * R.
func Solve(model mgl32.Mat4, localNormal mgl32.Vec3, cam transform.CameraState) (Mirror, error) {
	plane, err := PlaneFromModel(model, localNormal)
	if err != nil {
		return Mirror{}, err
	}
	r := plane.Matrix()
	return Mirror{
		Plane:  plane,
		Matrix: r,
		Camera: transform.CameraState{
			View:       cam.View.Mul4(r),
			Projection: cam.Projection,
			Position:   r.Mul4x1(cam.Position.Vec4(1)).Vec3(),
		},
	}, nil
}

// ClipPlane returns the plane coefficients oriented so that the camera
// side of the mirror is positive. Geometry on the other side gets clipped
// when rendering the reflection.
func (m Mirror) ClipPlane(primaryEye mgl32.Vec3) mgl32.Vec4 {
	coeff := m.Plane.Coefficients()
	if m.Plane.Distance(primaryEye) < 0 {
		return coeff.Mul(-1)
	}
	return coeff
}

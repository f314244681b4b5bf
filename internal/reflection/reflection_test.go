package reflection

import (
	"math"
	"math/rand"
	"testing"

	"mirror-scene/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

func randomUnit(r *rand.Rand) mgl32.Vec3 {
	for {
		v := mgl32.Vec3{r.Float32()*2 - 1, r.Float32()*2 - 1, r.Float32()*2 - 1}
		if l := v.Len(); l > 0.1 && l <= 1 {
			return v.Normalize()
		}
	}
}

func randomPoint(r *rand.Rand) mgl32.Vec3 {
	return mgl32.Vec3{r.Float32()*20 - 10, r.Float32()*20 - 10, r.Float32()*20 - 10}
}

func apply(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func TestReflectionIsInvolution(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		plane, err := PlaneFromPoint(randomUnit(r), randomPoint(r))
		require.NoError(t, err)
		m := plane.Matrix()

		p := randomPoint(r)
		back := apply(m, apply(m, p))
		if d := back.Sub(p).Len(); d > tolerance {
			t.Fatalf("R*R*p != p for plane %+v: p=%v got %v (|d|=%g)", plane, p, back, d)
		}
		assert.True(t, m.Mul4(m).ApproxEqualThreshold(mgl32.Ident4(), tolerance))
	}
}

func TestReflectionReversesOrientation(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		plane, err := PlaneFromPoint(randomUnit(r), randomPoint(r))
		require.NoError(t, err)
		assert.InDelta(t, -1, plane.Matrix().Mat3().Det(), tolerance)
	}
}

func TestPointOnPlaneIsFixed(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		point := randomPoint(r)
		plane, err := PlaneFromPoint(randomUnit(r), point)
		require.NoError(t, err)

		got := apply(plane.Matrix(), point)
		assert.True(t, got.ApproxEqualThreshold(point, tolerance), "point %v moved to %v", point, got)
	}
}

func TestCrossTermsUseDistinctCoefficients(t *testing.T) {
	// A tilted normal with three distinct components exposes any swapped pair
	n := mgl32.Vec3{1, 2, 3}.Normalize()
	plane, err := PlaneFromPoint(n, mgl32.Vec3{0.5, -1, 2})
	require.NoError(t, err)
	m := plane.Matrix()
	a, b, c, d := n.X(), n.Y(), n.Z(), plane.D

	want := map[int]float32{
		0: 1 - 2*a*a, 4: -2 * a * b, 8: -2 * a * c, 12: -2 * a * d,
		1: -2 * a * b, 5: 1 - 2*b*b, 9: -2 * b * c, 13: -2 * b * d,
		2: -2 * a * c, 6: -2 * b * c, 10: 1 - 2*c*c, 14: -2 * c * d,
		3: 0, 7: 0, 11: 0, 15: 1,
	}
	for idx, v := range want {
		assert.InDelta(t, v, m[idx], 1e-6, "element %d", idx)
	}

	// Symmetric linear part
	assert.Equal(t, m.Mat3(), m.Mat3().Transpose())
}

func TestSquaredTermVariantIsNotAReflection(t *testing.T) {
	n := mgl32.Vec3{0.2, 0.9, 0.3}.Normalize()
	plane, err := PlaneFromPoint(n, mgl32.Vec3{})
	require.NoError(t, err)

	bad := plane.Matrix()
	a := n.X()
	bad[4] = -2 * a * a // should be -2ab
	bad[1] = -2 * a * a

	assert.False(t, bad.Mul4(bad).ApproxEqualThreshold(mgl32.Ident4(), tolerance),
		"the involution check must reject a squared cross term")
}

func TestMirroredCameraScenario(t *testing.T) {
	model := mgl32.Translate3D(0, -1, 0)
	cam := transform.Camera{
		Position: mgl32.Vec3{0, 2, 0},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 0, -1},
		FOV:      mgl32.DegToRad(60),
		Aspect:   1,
		Near:     0.1,
		Far:      50,
	}.State()

	m, err := Solve(model, mgl32.Vec3{0, 1, 0}, cam)
	require.NoError(t, err)

	assert.True(t, m.Camera.Position.ApproxEqualThreshold(mgl32.Vec3{0, -4, 0}, 1e-5), "got %v", m.Camera.Position)
	assert.Equal(t, cam.Projection, m.Camera.Projection)
	assert.InDelta(t, 1, m.Plane.D, 1e-6)
}

func TestMirroredViewReflectsBeforeViewing(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	model := mgl32.Translate3D(1, -0.5, 2).Mul4(mgl32.HomogRotate3DX(0.3))
	cam := transform.Camera{
		Position: mgl32.Vec3{3, 4, 5},
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      1, Aspect: 1.5, Near: 0.1, Far: 100,
	}.State()

	m, err := Solve(model, mgl32.Vec3{0, 1, 0}, cam)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		p := randomPoint(r)
		want := apply(cam.View, apply(m.Matrix, p))
		got := apply(m.Camera.View, p)
		assert.True(t, got.ApproxEqualThreshold(want, 1e-3))
	}

	// The mirrored eye sits as far behind the plane as the real eye is in front
	assert.InDelta(t, m.Plane.Distance(cam.Position), -m.Plane.Distance(m.Camera.Position), 1e-4)
}

func TestPlaneFromModelUsesInverseTranspose(t *testing.T) {
	theta := float32(0.6)
	model := mgl32.Translate3D(0, 2, 0).
		Mul4(mgl32.Scale3D(3, 1, 1)).
		Mul4(mgl32.HomogRotate3DZ(theta))

	plane, err := PlaneFromModel(model, mgl32.Vec3{0, 1, 0})
	require.NoError(t, err)

	// World-space tangents of the mirror's local XZ plane
	tx := model.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
	tz := model.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()

	assert.InDelta(t, 0, plane.Normal.Dot(tx), 1e-5)
	assert.InDelta(t, 0, plane.Normal.Dot(tz), 1e-5)
	assert.InDelta(t, 1, plane.Normal.Len(), 1e-5)
	assert.InDelta(t, 0, plane.Distance(mgl32.Vec3{0, 2, 0}), 1e-5)
}

func TestDegeneratePlanes(t *testing.T) {
	_, err := PlaneFromPoint(mgl32.Vec3{}, mgl32.Vec3{1, 2, 3})
	assert.ErrorIs(t, err, ErrDegeneratePlane)

	flattened := mgl32.Scale3D(1, 0, 1)
	_, err = PlaneFromModel(flattened, mgl32.Vec3{0, 1, 0})
	assert.ErrorIs(t, err, ErrDegeneratePlane)

	_, err = Solve(mgl32.Ident4(), mgl32.Vec3{}, transform.CameraState{})
	assert.ErrorIs(t, err, ErrDegeneratePlane)

	sheared := mgl32.Mat4{
		1, 0, 0, 0,
		1, 1e-8, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	_, err = PlaneFromModel(sheared, mgl32.Vec3{0, 1, 0})
	assert.ErrorIs(t, err, ErrDegeneratePlane, "columns nearly parallel")
}

func TestSmallUniformScaleIsNotDegenerate(t *testing.T) {
	for _, s := range []float32{0.5, 0.05, 0.005, 0.001} {
		model := mgl32.Translate3D(0, -1, 0).Mul4(mgl32.Scale3D(s, s, s))
		plane, err := PlaneFromModel(model, mgl32.Vec3{0, 1, 0})
		require.NoError(t, err, "scale %v", s)
		assert.True(t, plane.Normal.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, tolerance), "scale %v", s)
		assert.InDelta(t, 0, plane.Distance(mgl32.Vec3{0, -1, 0}), tolerance)
	}
}

func TestClipPlaneFacesCamera(t *testing.T) {
	m, err := Solve(mgl32.Translate3D(0, -1, 0), mgl32.Vec3{0, -1, 0}, transform.CameraState{})
	require.NoError(t, err)

	eye := mgl32.Vec3{0, 3, 0}
	clip := m.ClipPlane(eye)
	assert.Greater(t, clip.Dot(eye.Vec4(1)), float32(0))
	assert.Less(t, clip.Dot(mgl32.Vec4{0, -5, 0, 1}), float32(0))
	assert.False(t, math.IsNaN(float64(clip.W())))
}

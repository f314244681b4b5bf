package transform

import (
	"mirror-scene/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform positions an object. Rotation holds angles in radians about X, Y and Z.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Vec3
	Scale       mgl32.Vec3
}

// Matrix composes T * Rx * Ry * Rz * S from scratch
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// At returns the transform described by cfg at simulation time t.
// Each axis spins at its own rate so objects never share motion state.
func At(cfg config.TransformConfig, t float32) Transform {
	return Transform{
		Translation: cfg.Translation,
		Rotation:    cfg.Rotation.Add(cfg.RotationRates.Mul(t)),
		Scale:       cfg.Scale,
	}
}

// NormalMatrix returns the inverse-transpose of the model's upper 3x3,
// which carries object-space normals to world space under non-uniform scale.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}

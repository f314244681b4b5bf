package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the capacity of the light arrays in the shading program
const MaxLights = 8

// Setup errors. Scene.Validate reports every violation it finds, joined.
var (
	ErrInvalidClipRange = errors.New("near plane must be positive and less than far plane")
	ErrInvalidFOV       = errors.New("field of view must be within (0, 180) degrees")
	ErrDegenerateCamera = errors.New("up vector is parallel to the view direction")
	ErrZeroNormal       = errors.New("vector must not be zero length")
	ErrResolutionFactor = errors.New("resolution factor must be within (0, 4]")
	ErrLightCount       = errors.New("light count out of range")
	ErrShadowMapSize    = errors.New("shadow map size must be a power of two within [16, 8192]")
	ErrMaterial         = errors.New("invalid material")
	ErrBackdropFaces    = errors.New("backdrop needs zero or six cubemap faces")
	ErrSpecularSign     = errors.New("specular sign must be +1 or -1")
)

// Wrap modes and filters accepted by MaterialConfig
const (
	WrapRepeat   = "repeat"
	WrapMirrored = "mirrored"
	WrapClamp    = "clamp"

	FilterLinear  = "linear"
	FilterNearest = "nearest"
)

// CameraConfig describes the primary camera orbiting a pivot about +Y
type CameraConfig struct {
	Pivot       mgl32.Vec3 `json:"pivot"`
	Offset      mgl32.Vec3 `json:"offset"` // position relative to pivot at t=0
	Target      mgl32.Vec3 `json:"target"`
	Up          mgl32.Vec3 `json:"up"`
	AngularRate float32    `json:"angularRate"` // radians per second
	FOVDegrees  float32    `json:"fov"`
	Near        float32    `json:"near"`
	Far         float32    `json:"far"`
}

// TransformConfig composes a model matrix: translate * rotate(base + rates*t) * scale
type TransformConfig struct {
	Translation   mgl32.Vec3 `json:"translation"`
	Rotation      mgl32.Vec3 `json:"rotation"`      // radians about X, Y, Z
	RotationRates mgl32.Vec3 `json:"rotationRates"` // radians per second about X, Y, Z
	Scale         mgl32.Vec3 `json:"scale"`
}

// MaterialConfig is the surface description of an opaque drawable
type MaterialConfig struct {
	BaseColor    mgl32.Vec4 `json:"baseColor"`
	Texture      string     `json:"texture"`
	WrapS        string     `json:"wrapS"`
	WrapT        string     `json:"wrapT"`
	Filter       string     `json:"filter"`
	Shininess    float32    `json:"shininess"`
	Reflectivity float32    `json:"reflectivity"` // environment cubemap mix in [0,1]
}

// ObjectConfig is one opaque drawable of the scene
type ObjectConfig struct {
	Name      string          `json:"name"`
	Mesh      string          `json:"mesh"`
	Transform TransformConfig `json:"transform"`
	Material  MaterialConfig  `json:"material"`
	NoShadow  bool            `json:"noShadow"`
}

// MirrorConfig describes the reflective planar surface
type MirrorConfig struct {
	Enabled            bool            `json:"enabled"`
	Mesh               string          `json:"mesh"`
	Transform          TransformConfig `json:"transform"`
	LocalNormal        mgl32.Vec3      `json:"localNormal"`
	DistortionMap      string          `json:"distortionMap"`
	DistortionStrength float32         `json:"distortionStrength"`
}

// LightConfig is the initial state of one point light
type LightConfig struct {
	Position mgl32.Vec3 `json:"position"`
	Color    mgl32.Vec3 `json:"color"`
}

// LightsConfig describes the animated light set
type LightsConfig struct {
	Pivot       mgl32.Vec3    `json:"pivot"`
	Axis        mgl32.Vec3    `json:"axis"`
	AngularRate float32       `json:"angularRate"` // radians per second
	Ambient     mgl32.Vec3    `json:"ambient"`
	Lights      []LightConfig `json:"lights"`
}

// ShadowConfig describes the shadow-casting light camera
type ShadowConfig struct {
	Position           mgl32.Vec3 `json:"position"`
	Target             mgl32.Vec3 `json:"target"`
	Up                 mgl32.Vec3 `json:"up"`
	FOVDegrees         float32    `json:"fov"`
	Near               float32    `json:"near"`
	Far                float32    `json:"far"`
	MapSize            int        `json:"mapSize"`
	OcclusionThreshold float32    `json:"occlusionThreshold"`
}

// ReflectionConfig sizes the reflection target relative to the viewport
type ReflectionConfig struct {
	ResolutionFactor float32 `json:"resolutionFactor"`
}

// BackdropConfig lists cubemap faces in +X, -X, +Y, -Y, +Z, -Z order.
// With no faces a gradient sky is generated, its horizon taken from the
// clear color.
type BackdropConfig struct {
	Faces []string `json:"faces"`
}

// CompositeConfig holds final-pass shading switches
type CompositeConfig struct {
	ClearColor   mgl32.Vec4 `json:"clearColor"`
	SpecularSign float32    `json:"specularSign"`
}

// Scene is the full description a pipeline is built from
type Scene struct {
	Name       string           `json:"name"`
	Camera     CameraConfig     `json:"camera"`
	Objects    []ObjectConfig   `json:"objects"`
	Mirror     MirrorConfig     `json:"mirror"`
	Lights     LightsConfig     `json:"lights"`
	Shadow     ShadowConfig     `json:"shadow"`
	Reflection ReflectionConfig `json:"reflection"`
	Backdrop   BackdropConfig   `json:"backdrop"`
	Composite  CompositeConfig  `json:"composite"`
}

// Default returns the reference scene: a slowly tumbling ball above a
// mirror floor, orbited by the camera and lit by three circling lights.
func Default() Scene {
	return Scene{
		Name: "default",
		Camera: CameraConfig{
			Offset:      mgl32.Vec3{0, 0.5, 2},
			Up:          mgl32.Vec3{0, 1, 0},
			AngularRate: 0.35,
			FOVDegrees:  90,
			Near:        0.5,
			Far:         60,
		},
		Objects: []ObjectConfig{
			{
				Name: "ball",
				Mesh: "sphere",
				Transform: TransformConfig{
					RotationRates: mgl32.Vec3{0.0136, 0, 0.0235},
					Scale:         mgl32.Vec3{0.6, 0.6, 0.6},
				},
				Material: MaterialConfig{
					BaseColor: mgl32.Vec4{0.9, 0.6, 0.4, 1},
					WrapS:     WrapRepeat,
					WrapT:     WrapMirrored,
					Filter:    FilterLinear,
					Shininess: 200,
				},
			},
			{
				Name: "cube",
				Mesh: "cube",
				Transform: TransformConfig{
					Translation:   mgl32.Vec3{1.1, -0.6, -0.4},
					RotationRates: mgl32.Vec3{0, 0.4, 0.13},
					Scale:         mgl32.Vec3{0.3, 0.3, 0.3},
				},
				Material: MaterialConfig{
					BaseColor:    mgl32.Vec4{0.5, 0.6, 0.9, 1},
					WrapS:        WrapRepeat,
					WrapT:        WrapRepeat,
					Filter:       FilterLinear,
					Shininess:    200,
					Reflectivity: 0.3,
				},
			},
		},
		Mirror: MirrorConfig{
			Enabled: true,
			Mesh:    "plane",
			Transform: TransformConfig{
				Translation: mgl32.Vec3{0, -1, 0},
				Scale:       mgl32.Vec3{3, 1, 3},
			},
			LocalNormal:        mgl32.Vec3{0, 1, 0},
			DistortionStrength: 0.05,
		},
		Lights: LightsConfig{
			Axis:        mgl32.Vec3{0, 1, 0},
			AngularRate: 0.8,
			Ambient:     mgl32.Vec3{0.2, 0.18, 0.16},
			Lights: []LightConfig{
				{Position: mgl32.Vec3{5, 5, 2.5}, Color: mgl32.Vec3{1.0, 0.95, 0.85}},
				{Position: mgl32.Vec3{-3, 2, -3}, Color: mgl32.Vec3{0.3, 0.4, 0.9}},
				{Position: mgl32.Vec3{0, 3, -4}, Color: mgl32.Vec3{0.6, 0.2, 0.2}},
			},
		},
		Shadow: ShadowConfig{
			Position:           mgl32.Vec3{5, 5, 2.5},
			Target:             mgl32.Vec3{0, -1, 0},
			Up:                 mgl32.Vec3{0, 1, 0},
			FOVDegrees:         18,
			Near:               0.1,
			Far:                100,
			MapSize:            512,
			OcclusionThreshold: 0.25,
		},
		Reflection: ReflectionConfig{ResolutionFactor: 1},
		Composite: CompositeConfig{
			ClearColor:   mgl32.Vec4{1.0, 0.9, 0.8, 1},
			SpecularSign: 1,
		},
	}
}

// Normalize fills zero-valued optional fields with their defaults.
// Descriptors loaded from disk usually omit most of them.
func (s *Scene) Normalize() {
	for i := range s.Objects {
		o := &s.Objects[i]
		if o.Transform.Scale == (mgl32.Vec3{}) {
			o.Transform.Scale = mgl32.Vec3{1, 1, 1}
		}
		normalizeMaterial(&o.Material)
	}
	if s.Mirror.Transform.Scale == (mgl32.Vec3{}) {
		s.Mirror.Transform.Scale = mgl32.Vec3{1, 1, 1}
	}
	if s.Mirror.Mesh == "" {
		s.Mirror.Mesh = "plane"
	}
	if s.Camera.Up == (mgl32.Vec3{}) {
		s.Camera.Up = mgl32.Vec3{0, 1, 0}
	}
	if s.Shadow.Up == (mgl32.Vec3{}) {
		s.Shadow.Up = mgl32.Vec3{0, 1, 0}
	}
	if s.Shadow.MapSize == 0 {
		s.Shadow.MapSize = 512
	}
	if s.Reflection.ResolutionFactor == 0 {
		s.Reflection.ResolutionFactor = 1
	}
	if s.Composite.SpecularSign == 0 {
		s.Composite.SpecularSign = 1
	}
}

func normalizeMaterial(m *MaterialConfig) {
	if m.BaseColor == (mgl32.Vec4{}) {
		m.BaseColor = mgl32.Vec4{1, 1, 1, 1}
	}
	if m.WrapS == "" {
		m.WrapS = WrapRepeat
	}
	if m.WrapT == "" {
		m.WrapT = WrapRepeat
	}
	if m.Filter == "" {
		m.Filter = FilterLinear
	}
	if m.Shininess == 0 {
		m.Shininess = 200
	}
}

// Validate checks every setup invariant. It must pass before any frame is rendered.
func (s *Scene) Validate() error {
	var errs []error

	c := s.Camera
	if err := validateProjection(c.FOVDegrees, c.Near, c.Far); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}
	eye := c.Pivot.Add(c.Offset)
	if parallel(c.Target.Sub(eye), c.Up) {
		errs = append(errs, fmt.Errorf("camera: %w", ErrDegenerateCamera))
	}

	sh := s.Shadow
	if err := validateProjection(sh.FOVDegrees, sh.Near, sh.Far); err != nil {
		errs = append(errs, fmt.Errorf("shadow: %w", err))
	}
	if parallel(sh.Target.Sub(sh.Position), sh.Up) {
		errs = append(errs, fmt.Errorf("shadow: %w", ErrDegenerateCamera))
	}
	if sh.MapSize < 16 || sh.MapSize > 8192 || sh.MapSize&(sh.MapSize-1) != 0 {
		errs = append(errs, fmt.Errorf("shadow: %w: %d", ErrShadowMapSize, sh.MapSize))
	}

	if n := len(s.Lights.Lights); n == 0 || n > MaxLights {
		errs = append(errs, fmt.Errorf("lights: %w: %d not in [1, %d]", ErrLightCount, n, MaxLights))
	}
	if s.Lights.Axis.Len() == 0 {
		errs = append(errs, fmt.Errorf("lights: axis: %w", ErrZeroNormal))
	}

	if s.Mirror.Enabled {
		if s.Mirror.LocalNormal.Len() == 0 {
			errs = append(errs, fmt.Errorf("mirror: normal: %w", ErrZeroNormal))
		}
		if f := s.Reflection.ResolutionFactor; !(f > 0 && f <= 4) {
			errs = append(errs, fmt.Errorf("reflection: %w: %v", ErrResolutionFactor, f))
		}
	}

	for _, o := range s.Objects {
		if err := validateMaterial(o.Material); err != nil {
			errs = append(errs, fmt.Errorf("object %q: %w", o.Name, err))
		}
	}

	if n := len(s.Backdrop.Faces); n != 0 && n != 6 {
		errs = append(errs, fmt.Errorf("backdrop: %w: got %d", ErrBackdropFaces, n))
	}
	if sign := s.Composite.SpecularSign; sign != 1 && sign != -1 {
		errs = append(errs, fmt.Errorf("composite: %w", ErrSpecularSign))
	}

	return errors.Join(errs...)
}

func validateProjection(fov, near, far float32) error {
	if !(near > 0 && near < far) {
		return fmt.Errorf("%w (near=%v far=%v)", ErrInvalidClipRange, near, far)
	}
	if !(fov > 0 && fov < 180) {
		return fmt.Errorf("%w: %v", ErrInvalidFOV, fov)
	}
	return nil
}

func validateMaterial(m MaterialConfig) error {
	for _, w := range []string{m.WrapS, m.WrapT} {
		switch w {
		case WrapRepeat, WrapMirrored, WrapClamp:
		default:
			return fmt.Errorf("%w: wrap mode %q", ErrMaterial, w)
		}
	}
	if m.Filter != FilterLinear && m.Filter != FilterNearest {
		return fmt.Errorf("%w: filter %q", ErrMaterial, m.Filter)
	}
	if m.Reflectivity < 0 || m.Reflectivity > 1 {
		return fmt.Errorf("%w: reflectivity %v", ErrMaterial, m.Reflectivity)
	}
	if m.Shininess <= 0 {
		return fmt.Errorf("%w: shininess %v", ErrMaterial, m.Shininess)
	}
	return nil
}

// parallel reports whether two vectors are parallel, or either is zero
func parallel(a, b mgl32.Vec3) bool {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return true
	}
	return a.Cross(b).Len() <= 1e-6*la*lb
}

// TargetSize scales viewport dimensions by the resolution factor, rounding
// to the nearest pixel and never going below one pixel.
func (r ReflectionConfig) TargetSize(width, height int) (int, int) {
	return scaleDim(width, r.ResolutionFactor), scaleDim(height, r.ResolutionFactor)
}

func scaleDim(d int, k float32) int {
	v := int(math.Round(float64(d) * float64(k)))
	if v < 1 {
		return 1
	}
	return v
}

// Clone returns a copy that shares no slices with s
func (s Scene) Clone() Scene {
	out := s
	out.Objects = append([]ObjectConfig(nil), s.Objects...)
	out.Lights.Lights = append([]LightConfig(nil), s.Lights.Lights...)
	out.Backdrop.Faces = append([]string(nil), s.Backdrop.Faces...)
	return out
}

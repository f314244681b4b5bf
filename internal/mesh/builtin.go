package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Names of the procedural meshes
const (
	NameSphere   = "sphere"
	NameCube     = "cube"
	NamePlane    = "plane"
	NameBackdrop = "backdrop"
)

// Builtin returns a procedural mesh by name
func Builtin(name string) (Data, error) {
	switch name {
	case NameSphere:
		return Sphere(24, 32), nil
	case NameCube:
		return Cube(), nil
	case NamePlane:
		return Plane(), nil
	case NameBackdrop:
		return Backdrop(), nil
	}
	return Data{}, fmt.Errorf("%w: %q", ErrUnknownMesh, name)
}

// Sphere returns a unit UV sphere with rings latitude bands and segments
// longitude slices
func Sphere(rings, segments int) Data {
	var d Data
	for r := 0; r <= rings; r++ {
		theta := math.Pi * float64(r) / float64(rings)
		st, ct := math.Sincos(theta)
		for s := 0; s <= segments; s++ {
			phi := 2 * math.Pi * float64(s) / float64(segments)
			sp, cp := math.Sincos(phi)
			x, y, z := float32(st*cp), float32(ct), float32(st*sp)
			d.Positions = append(d.Positions, x, y, z)
			d.Normals = append(d.Normals, x, y, z)
			d.UVs = append(d.UVs, float32(s)/float32(segments), float32(r)/float32(rings))
		}
	}

	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			i0 := r*stride + s
			i1 := i0 + stride
			i2 := i0 + 1
			i3 := i1 + 1
			d.Indices = append(d.Indices, i0, i2, i1, i2, i3, i1)
		}
	}
	return d
}

type face struct {
	normal, u, v mgl32.Vec3 // u x v == normal
}

var cubeFaces = []face{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

func appendQuad(d *Data, f face, center mgl32.Vec3) {
	base := uint32(d.VertexCount())
	corners := [4]struct {
		su, sv float32
	}{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, c := range corners {
		p := center.Add(f.u.Mul(c.su)).Add(f.v.Mul(c.sv))
		d.Positions = append(d.Positions, p[:]...)
		d.Normals = append(d.Normals, f.normal[:]...)
		d.UVs = append(d.UVs, (c.su+1)/2, (c.sv+1)/2)
	}
	d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Cube returns the cube spanning [-1,1] on every axis with per-face normals
func Cube() Data {
	var d Data
	for _, f := range cubeFaces {
		appendQuad(&d, f, f.normal)
	}
	return d
}

// Plane returns the quad spanning [-1,1] on X and Z, facing +Y
func Plane() Data {
	var d Data
	appendQuad(&d, cubeFaces[2], mgl32.Vec3{})
	return d
}

// Backdrop returns the cube used for the environment backdrop, positions only.
// The camera sits inside it, so its visible faces are the back faces.
func Backdrop() Data {
	c := Cube()
	return Data{Positions: c.Positions, Indices: c.Indices}
}

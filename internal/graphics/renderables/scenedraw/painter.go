// Package scenedraw draws the environment backdrop and the shaded opaque
// objects. The reflection and composite passes share one Painter, each
// drawing through its own camera.
package scenedraw

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"mirror-scene/internal/config"
	"mirror-scene/internal/graphics"
	"mirror-scene/internal/graphics/renderer"
	"mirror-scene/internal/imageio"
	"mirror-scene/internal/logger"
	"mirror-scene/internal/mesh"
	"mirror-scene/internal/shadow"
	"mirror-scene/internal/transform"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// NoClip is a clip plane every point is on the positive side of
var NoClip = mgl32.Vec4{0, 0, 0, 1}

// Painter owns the GPU resources of the scene's opaque objects and backdrop.
// It is reference counted: the first Acquire uploads, the last Release frees.
type Painter struct {
	scene     config.Scene
	assetsDir string
	meshes    *mesh.Loader

	refs int

	shaded       *graphics.Shader
	backdrop     *graphics.Shader
	drawables    []Drawable
	bounds       []Bounds
	backdropMesh *graphics.Mesh
	env          *graphics.Texture
	white        *graphics.Texture

	visible []int
}

// NewPainter creates a painter for the scene; nothing is uploaded until Acquire
func NewPainter(scene config.Scene, assetsDir string, meshes *mesh.Loader) *Painter {
	return &Painter{scene: scene, assetsDir: assetsDir, meshes: meshes}
}

// Acquire uploads shaders, meshes and textures on first use
func (p *Painter) Acquire() error {
	if p.refs > 0 {
		p.refs++
		return nil
	}
	if err := p.init(); err != nil {
		p.dispose()
		return err
	}
	p.refs = 1
	return nil
}

// Release frees the resources once every user has released them
func (p *Painter) Release() {
	if p.refs == 0 {
		return
	}
	p.refs--
	if p.refs == 0 {
		p.dispose()
	}
}

func (p *Painter) init() error {
	var err error
	vert, frag := ShaderPaths(p.assetsDir, "shaded")
	if p.shaded, err = graphics.NewShader(vert, frag); err != nil {
		return err
	}
	vert, frag = ShaderPaths(p.assetsDir, "backdrop")
	if p.backdrop, err = graphics.NewShader(vert, frag); err != nil {
		return err
	}

	p.white = graphics.NewTexture(solidImage(color.RGBA{255, 255, 255, 255}), graphics.SamplerOptions{
		WrapS:  config.WrapRepeat,
		WrapT:  config.WrapRepeat,
		Filter: config.FilterNearest,
	})

	if err := p.loadEnvironment(); err != nil {
		return err
	}

	data, err := p.meshes.Load(mesh.NameBackdrop)
	if err != nil {
		return err
	}
	p.backdropMesh = graphics.NewMesh(data)

	for i, o := range p.scene.Objects {
		d, err := p.loadDrawable(i, o)
		if err != nil {
			return fmt.Errorf("object %q: %w", o.Name, err)
		}
		p.drawables = append(p.drawables, d)
		p.bounds = append(p.bounds, Bounds{Center: d.center, Radius: d.radius})
	}

	p.shaded.Use()
	p.shaded.SetInt("diffuseMap", unitDiffuse)
	p.shaded.SetInt("envMap", unitEnv)
	p.shaded.SetInt("shadowMap", unitShadow)
	p.shaded.SetFloat("depthBias", shadow.DepthBias)
	p.shaded.SetFloat("specularSign", p.scene.Composite.SpecularSign)
	p.backdrop.Use()
	p.backdrop.SetInt("envMap", 0)

	logger.Log.Info("scene uploaded",
		zap.String("scene", p.scene.Name),
		zap.Int("objects", len(p.drawables)),
		zap.Int("backdropFaces", len(p.scene.Backdrop.Faces)))
	return nil
}

func (p *Painter) loadDrawable(index int, o config.ObjectConfig) (Drawable, error) {
	data, err := p.meshes.Load(o.Mesh)
	if err != nil {
		return Drawable{}, err
	}
	center, radius := data.Bounds()

	d := Drawable{
		Name:        o.Name,
		Model:       index,
		Mesh:        graphics.NewMesh(data),
		Texture:     p.white,
		Shininess:   o.Material.Shininess,
		BaseColor:   o.Material.BaseColor,
		Reflect:     o.Material.Reflectivity,
		CastsShadow: !o.NoShadow,
		center:      center,
		radius:      radius,
	}
	if o.Material.Texture != "" {
		path := filepath.Join(p.assetsDir, "textures", o.Material.Texture)
		tex, err := graphics.GetTexture(path, graphics.SamplerFromMaterial(o.Material))
		if err != nil {
			d.Mesh.Delete()
			return Drawable{}, err
		}
		d.Texture = tex
	}
	return d, nil
}

// loadEnvironment builds the cubemap used by the backdrop and by reflective
// materials. Without configured faces a gradient sky matching the clear color is generated.
func (p *Painter) loadEnvironment() error {
	faces := p.scene.Backdrop.Faces
	if len(faces) == 0 {
		cc := p.scene.Composite.ClearColor
		horizon := color.RGBA{toByte(cc[0]), toByte(cc[1]), toByte(cc[2]), 255}
		zenith := color.RGBA{70, 110, 190, 255}
		nadir := color.RGBA{70, 60, 50, 255}
		p.env = graphics.NewCubemap(imageio.GradientSky(64, zenith, horizon, nadir))
		return nil
	}

	paths := make([]string, len(faces))
	for i, f := range faces {
		paths[i] = filepath.Join(p.assetsDir, "textures", f)
	}
	env, err := graphics.LoadCubemap(paths)
	if err != nil {
		return fmt.Errorf("backdrop: %w", err)
	}
	p.env = env
	return nil
}

func (p *Painter) dispose() {
	for i := range p.drawables {
		p.drawables[i].Mesh.Delete()
	}
	p.drawables = nil
	p.bounds = nil
	if p.backdropMesh != nil {
		p.backdropMesh.Delete()
		p.backdropMesh = nil
	}
	if p.env != nil {
		p.env.Delete()
		p.env = nil
	}
	if p.white != nil {
		p.white.Delete()
		p.white = nil
	}
	if p.shaded != nil {
		p.shaded.Delete()
		p.shaded = nil
	}
	if p.backdrop != nil {
		p.backdrop.Delete()
		p.backdrop = nil
	}
	graphics.ReleaseTextures()
}

// Drawables returns the uploaded objects in scene order
func (p *Painter) Drawables() []Drawable {
	return p.drawables
}

// VisibleFrom returns the indices of drawables inside the frustum of viewProj.
// The slice is reused by the next call.
func (p *Painter) VisibleFrom(viewProj mgl32.Mat4, models []mgl32.Mat4) []int {
	p.visible = Visible(viewProj, models, p.bounds, p.visible)
	return p.visible
}

// DrawBackdrop draws the environment cube around the camera. The camera sits
// inside the cube, so front faces are culled; inverted flips that again for
// an orientation-reversing view.
func (p *Painter) DrawBackdrop(cam transform.CameraState, inverted bool) {
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	graphics.CullFace(gl.FRONT, inverted)

	p.backdrop.Use()
	p.backdrop.SetMatrix4("view", transform.WithoutTranslation(cam.View))
	p.backdrop.SetMatrix4("projection", cam.Projection)
	p.env.Bind(0)
	p.backdropMesh.Draw()

	gl.DepthMask(true)
	gl.Enable(gl.DEPTH_TEST)
	graphics.CullFace(gl.BACK, false)
}

// DrawShaded draws every visible object lit by the frame's lights and
// attenuated by the shadow map. Geometry on the negative side of clip is
// discarded.
func (p *Painter) DrawShaded(ctx renderer.RenderContext, cam transform.CameraState, shadowTex uint32, clip mgl32.Vec4, inverted bool) {
	graphics.CullFace(gl.BACK, inverted)

	s := p.shaded
	s.Use()
	s.SetMatrix4("view", cam.View)
	s.SetMatrix4("projection", cam.Projection)
	s.SetVector3("viewPos", cam.Position)
	s.SetVector4("clipPlane", clip)
	s.SetMatrix4("shadowMatrix", shadow.TextureMatrix(ctx.Light.ViewProjection()))
	s.SetInt("lightCount", int32(ctx.LightCount()))
	s.SetVector3Array("lightPositions", ctx.LightPositions)
	s.SetVector3Array("lightColors", ctx.LightColors)
	s.SetVector3("ambient", ctx.Ambient)

	p.env.Bind(unitEnv)
	graphics.BindTexture(unitShadow, gl.TEXTURE_2D, shadowTex)

	models := ctx.Frame.Models
	for _, i := range p.VisibleFrom(cam.ViewProjection(), models) {
		d := &p.drawables[i]
		model := models[d.Model]
		s.SetMatrix4("model", model)
		s.SetMatrix3("normalMatrix", transform.NormalMatrix(model))
		s.SetVector4("baseColor", d.BaseColor)
		s.SetFloat("shininess", d.Shininess)
		s.SetFloat("reflectivity", d.Reflect)
		d.Texture.Bind(unitDiffuse)
		d.Mesh.Draw()
	}

	graphics.CullFace(gl.BACK, false)
}

func solidImage(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

func toByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}

// Package overlay draws frame statistics over the finished image.
package overlay

import (
	"fmt"
	"time"

	"mirror-scene/internal/graphics"
	"mirror-scene/internal/graphics/renderables/scenedraw"
	"mirror-scene/internal/graphics/renderer"
	"mirror-scene/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	fontPixels = 16
	margin     = 12
	topTimings = 3
)

var textColor = mgl32.Vec3{1, 1, 0.85}

// Stats is what the overlay reports for one frame
type Stats struct {
	Scene   string
	FPS     float64
	Timings map[string]time.Duration
}

// Overlay is the on-screen statistics pass. It draws nothing unless the
// frame asks for stats.
type Overlay struct {
	scene     string
	assetsDir string
	now       func() time.Time

	atlas *graphics.FontAtlas
	text  *graphics.TextRenderer

	frames      int
	windowStart time.Time
	fps         float64
	lines       []string
}

func NewOverlay(scene, assetsDir string) *Overlay {
	return &Overlay{scene: scene, assetsDir: assetsDir, now: time.Now}
}

func (o *Overlay) Name() string { return "overlay" }

// Init bakes the Go Mono face and compiles the text program
func (o *Overlay) Init() error {
	atlas, img, err := graphics.BakeFontAtlas(gomono.TTF, fontPixels)
	if err != nil {
		return err
	}
	atlas.Upload(img)

	vert, frag := scenedraw.ShaderPaths(o.assetsDir, "font")
	text, err := graphics.NewTextRenderer(atlas, vert, frag)
	if err != nil {
		atlas.Delete()
		return err
	}
	o.atlas, o.text = atlas, text
	o.windowStart = o.now()
	return nil
}

func (o *Overlay) Render(ctx renderer.RenderContext) {
	o.tick()
	if !ctx.ShowStats {
		return
	}

	o.lines = Lines(o.lines[:0], ctx, Stats{
		Scene:   o.scene,
		FPS:     o.fps,
		Timings: profiling.Snapshot(),
	})
	step := o.atlas.LineHeight
	o.text.RenderLines(o.lines, margin, margin+step, step, 1, textColor)
}

// tick counts frames and refreshes the fps figure once per second
func (o *Overlay) tick() {
	o.frames++
	now := o.now()
	if elapsed := now.Sub(o.windowStart); elapsed >= time.Second {
		o.fps = float64(o.frames) / elapsed.Seconds()
		o.frames = 0
		o.windowStart = now
	}
}

func (o *Overlay) SetViewport(width, height int) {
	if o.text != nil {
		o.text.SetViewport(width, height)
	}
}

func (o *Overlay) Dispose() {
	if o.text != nil {
		o.text.Delete()
		o.text = nil
	}
	if o.atlas != nil {
		o.atlas.Delete()
		o.atlas = nil
	}
}

// Lines formats the overlay text for a frame, appending to dst
func Lines(dst []string, ctx renderer.RenderContext, s Stats) []string {
	mirror := "ok"
	if !ctx.MirrorOK {
		mirror = "skipped"
	}
	dst = append(dst,
		fmt.Sprintf("scene %s  %.0f fps", s.Scene, s.FPS),
		fmt.Sprintf("lights %d  shadows %s", ctx.LightCount(), onOff(ctx.Shadows)),
		fmt.Sprintf("mirror %s  distortion %.2f", mirror, ctx.DistortionStrength),
	)
	if top := profiling.Format(s.Timings, topTimings); top != "" {
		dst = append(dst, top)
	}
	return dst
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

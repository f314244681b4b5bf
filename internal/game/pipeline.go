package game

import (
	"mirror-scene/internal/config"
	"mirror-scene/internal/graphics/renderables/composite"
	"mirror-scene/internal/graphics/renderables/mirrorview"
	"mirror-scene/internal/graphics/renderables/overlay"
	"mirror-scene/internal/graphics/renderables/scenedraw"
	"mirror-scene/internal/graphics/renderables/shadowmap"
	"mirror-scene/internal/graphics/renderer"
	"mirror-scene/internal/mesh"
)

// NewPipeline builds the pass chain for a scene: shadow map, then the
// mirrored view when the scene has a mirror, then the composite and the stats
// overlay. The render targets are sized once from width x height.
func NewPipeline(scene config.Scene, assetsDir string, width, height int) (*renderer.Renderer, error) {
	meshes := mesh.NewLoader(assetsDir)
	painter := scenedraw.NewPainter(scene, assetsDir, meshes)

	shadows := shadowmap.NewShadowMap(painter, assetsDir, scene.Shadow.MapSize)
	passes := []renderer.Pass{shadows}

	var reflection renderer.ColorSource
	if scene.Mirror.Enabled {
		mv := mirrorview.NewReflection(painter, shadows, scene, width, height)
		passes = append(passes, mv)
		reflection = mv
	}

	passes = append(passes,
		composite.NewComposite(painter, shadows, reflection, meshes, scene, assetsDir),
		overlay.NewOverlay(scene.Name, assetsDir),
	)

	r, err := renderer.NewRenderer(passes...)
	if err != nil {
		return nil, err
	}
	r.SetViewport(width, height)
	return r, nil
}

package renderer

import (
	"fmt"

	"mirror-scene/internal/logger"
	"mirror-scene/internal/profiling"

	"go.uber.org/zap"
)

// Renderer runs its passes in dependency order once per frame
type Renderer struct {
	passes []Pass
	width  int
	height int
}

// NewRenderer initializes every pass in order. If one fails, the passes
// already initialized are disposed and the error is returned.
func NewRenderer(passes ...Pass) (*Renderer, error) {
	for i, p := range passes {
		if err := p.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				passes[j].Dispose()
			}
			return nil, fmt.Errorf("init %s pass: %w", p.Name(), err)
		}
		logger.Log.Debug("pass ready", zap.String("pass", p.Name()))
	}
	return &Renderer{passes: passes}, nil
}

// Render issues every pass for the frame
func (r *Renderer) Render(ctx RenderContext) {
	for _, p := range r.passes {
		stop := profiling.Track("pass." + p.Name())
		p.Render(ctx)
		stop()
	}
}

// SetViewport forwards the drawable size to every pass
func (r *Renderer) SetViewport(width, height int) {
	r.width, r.height = width, height
	for _, p := range r.passes {
		p.SetViewport(width, height)
	}
}

// Viewport returns the last size given to SetViewport
func (r *Renderer) Viewport() (int, int) {
	return r.width, r.height
}

// Passes returns the pass names in execution order
func (r *Renderer) Passes() []string {
	names := make([]string, len(r.passes))
	for i, p := range r.passes {
		names[i] = p.Name()
	}
	return names
}

// Dispose cleans up all passes in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.passes) - 1; i >= 0; i-- {
		r.passes[i].Dispose()
	}
	r.passes = nil
}

package renderer

import (
	"errors"
	"testing"

	"mirror-scene/internal/profiling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePass struct {
	name    string
	log     *[]string
	initErr error
	w, h    int
	seen    RenderContext
}

func (f *fakePass) Name() string { return f.name }

func (f *fakePass) Init() error {
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}

func (f *fakePass) Render(ctx RenderContext) {
	*f.log = append(*f.log, "render:"+f.name)
	f.seen = ctx
}

func (f *fakePass) Dispose() {
	*f.log = append(*f.log, "dispose:"+f.name)
}

func (f *fakePass) SetViewport(w, h int) { f.w, f.h = w, h }

func TestRendererRunsPassesInOrder(t *testing.T) {
	var log []string
	shadow := &fakePass{name: "shadow", log: &log}
	reflect := &fakePass{name: "reflection", log: &log}
	composite := &fakePass{name: "composite", log: &log}

	r, err := NewRenderer(shadow, reflect, composite)
	require.NoError(t, err)
	assert.Equal(t, []string{"shadow", "reflection", "composite"}, r.Passes())

	log = nil
	r.Render(RenderContext{Width: 10, Height: 20, MirrorOK: true})
	assert.Equal(t, []string{"render:shadow", "render:reflection", "render:composite"}, log)
	assert.Equal(t, 20, composite.seen.Height)

	log = nil
	r.Dispose()
	assert.Equal(t, []string{"dispose:composite", "dispose:reflection", "dispose:shadow"}, log)
}

func TestRendererInitFailureDisposesInitialized(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	a := &fakePass{name: "a", log: &log}
	b := &fakePass{name: "b", log: &log, initErr: boom}
	c := &fakePass{name: "c", log: &log}

	r, err := NewRenderer(a, b, c)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"init:a", "init:b", "dispose:a"}, log)
}

func TestRendererSetViewport(t *testing.T) {
	var log []string
	a := &fakePass{name: "a", log: &log}
	b := &fakePass{name: "b", log: &log}
	r, err := NewRenderer(a, b)
	require.NoError(t, err)

	r.SetViewport(640, 480)
	w, h := r.Viewport()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, 640, a.w)
	assert.Equal(t, 480, b.h)
}

func TestRendererRecordsPassTimings(t *testing.T) {
	var log []string
	r, err := NewRenderer(&fakePass{name: "shadow", log: &log})
	require.NoError(t, err)

	profiling.ResetFrame()
	r.Render(RenderContext{})
	_, ok := profiling.Snapshot()["pass.shadow"]
	assert.True(t, ok)
}

func TestLightCount(t *testing.T) {
	ctx := RenderContext{LightPositions: make([]float32, 9)}
	assert.Equal(t, 3, ctx.LightCount())
}

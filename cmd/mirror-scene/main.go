package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"mirror-scene/internal/config"
	"mirror-scene/internal/game"
	"mirror-scene/internal/graphics"
	"mirror-scene/internal/logger"
	"mirror-scene/pkg/scenedesc"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

func init() { runtime.LockOSThread() }

var (
	assetsDir = flag.String("assets", "assets", "directory holding shaders, scenes, meshes and textures")
	sceneName = flag.String("scene", "default", "scene descriptor under <assets>/scenes, or builtin/default")
	width     = flag.Int("width", 900, "initial window width")
	height    = flag.Int("height", 600, "initial window height")
	fpsLimit  = flag.Int("fps", 60, "frame rate cap, 0 for uncapped")
	debug     = flag.Bool("debug", false, "verbose development logging")
)

// finished is set once GL resources are gone; the shutdown hook then only
// flushes the log
var (
	finished atomic.Bool
	done     = make(chan struct{})
)

func main() {
	flag.Parse()

	if err := logger.Init(*debug); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	var window *glfw.Window
	closer.Bind(func() {
		if !finished.Load() && window != nil {
			// ask the render loop to stop and let it release GL state on its own thread
			window.SetShouldClose(true)
			select {
			case <-done:
			case <-time.After(2 * time.Second):
			}
		}
		logger.Sync()
	})

	scene, err := scenedesc.NewLoader(*assetsDir).LoadScene(*sceneName)
	if err != nil {
		fail("load scene", err)
	}
	config.SetFPSLimit(*fpsLimit)
	config.SetDistortionStrength(scene.Mirror.DistortionStrength)

	if err := glfw.Init(); err != nil {
		panic(err)
	}

	window, err = game.SetupWindow(*width, *height, "mirror-scene: "+scene.Name)
	if err != nil {
		panic(err)
	}

	fbW, fbH := window.GetFramebufferSize()
	r, err := game.NewPipeline(scene, *assetsDir, fbW, fbH)
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		fail("build pipeline", err)
	}

	driver := game.NewDriver(scene, game.NewClock(nil), r)
	app := game.NewApp(window, r, driver)

	logger.Log.Info("running",
		zap.String("scene", scene.Name),
		zap.String("gl", graphics.Version()),
		zap.Int("lights", len(scene.Lights.Lights)),
		zap.Bool("mirror", scene.Mirror.Enabled),
		zap.Int("framebufferWidth", fbW),
		zap.Int("framebufferHeight", fbH))

	app.Run()

	r.Dispose()
	window.Destroy()
	glfw.Terminate()
	finished.Store(true)
	close(done)

	logger.Log.Info("stopped")
	closer.Close()
}

func fail(stage string, err error) {
	logger.Log.Error(stage+" failed", zap.Error(err))
	finished.Store(true)
	closer.Fatalln(err)
}

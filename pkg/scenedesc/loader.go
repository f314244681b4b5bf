// Package scenedesc loads scene descriptors from JSON. A descriptor may name
// a parent and only list what differs from it.
package scenedesc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mirror-scene/internal/config"
)

var (
	ErrParentCycle  = errors.New("scene parent chain loops")
	ErrUnknownScene = errors.New("unknown scene")
)

type Loader struct {
	assetsPath string
	sceneCache map[string]config.Scene
}

func NewLoader(assetsPath string) *Loader {
	return &Loader{
		assetsPath: assetsPath,
		sceneCache: make(map[string]config.Scene),
	}
}

// LoadScene resolves name and its parents into a normalized, validated
// scene. Names starting with "builtin/" resolve without touching the disk.
func (l *Loader) LoadScene(name string) (config.Scene, error) {
	scene, err := l.resolve(name, nil)
	if err != nil {
		return config.Scene{}, err
	}
	if err := scene.Validate(); err != nil {
		return config.Scene{}, fmt.Errorf("scene %q: %w", name, err)
	}
	return scene, nil
}

func (l *Loader) resolve(name string, chain []string) (config.Scene, error) {
	if scene, ok := l.sceneCache[name]; ok {
		return scene.Clone(), nil
	}
	for _, seen := range chain {
		if seen == name {
			return config.Scene{}, fmt.Errorf("%w: %s -> %s", ErrParentCycle, strings.Join(chain, " -> "), name)
		}
	}
	chain = append(chain, name)

	if strings.HasPrefix(name, BuiltinPrefix) {
		scene, err := builtin(strings.TrimPrefix(name, BuiltinPrefix))
		if err != nil {
			return config.Scene{}, err
		}
		l.sceneCache[name] = scene
		return scene.Clone(), nil
	}

	path := filepath.Join(l.assetsPath, "scenes", name+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Scene{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if err != nil {
		return config.Scene{}, fmt.Errorf("could not read scene file: %w", err)
	}

	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return config.Scene{}, fmt.Errorf("could not unmarshal scene json %s: %w", path, err)
	}

	var scene config.Scene
	if h.Parent != "" {
		parent, err := l.resolve(h.Parent, chain)
		if err != nil {
			return config.Scene{}, fmt.Errorf("could not load parent scene '%s': %w", h.Parent, err)
		}
		scene = parent
		dropOverriddenLists(&scene, data)
	}

	if err := json.Unmarshal(data, &scene); err != nil {
		return config.Scene{}, fmt.Errorf("could not unmarshal scene json %s: %w", path, err)
	}
	if !hasKey(data, "name") {
		scene.Name = name
	}
	scene.Normalize()

	l.sceneCache[name] = scene
	return scene.Clone(), nil
}

// dropOverriddenLists clears inherited lists the child redefines, so the
// decoder does not merge child elements into the parent's.
func dropOverriddenLists(s *config.Scene, data []byte) {
	for _, path := range listKeys {
		if !hasKey(data, path...) {
			continue
		}
		switch path[0] {
		case "objects":
			s.Objects = nil
		case "lights":
			s.Lights.Lights = nil
		case "backdrop":
			s.Backdrop.Faces = nil
		}
	}
}

func builtin(name string) (config.Scene, error) {
	switch name {
	case "default":
		return config.Default(), nil
	default:
		return config.Scene{}, fmt.Errorf("%w: %q", ErrUnknownScene, BuiltinPrefix+name)
	}
}

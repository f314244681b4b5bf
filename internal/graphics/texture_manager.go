package graphics

import (
	"sync"
)

type textureKey struct {
	path string
	opts SamplerOptions
}

var (
	textureCache = make(map[textureKey]*Texture)
	cacheMutex   sync.RWMutex
)

// GetTexture returns a cached texture for the given path and sampler options.
// If the texture is already loaded, it returns the cached one.
// Otherwise, it loads the texture from disk and caches it.
func GetTexture(path string, opts SamplerOptions) (*Texture, error) {
	key := textureKey{path: path, opts: opts}

	cacheMutex.RLock()
	if tex, ok := textureCache[key]; ok {
		cacheMutex.RUnlock()
		return tex, nil
	}
	cacheMutex.RUnlock()

	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	// Double check locking
	if tex, ok := textureCache[key]; ok {
		return tex, nil
	}

	tex, err := LoadTexture(path, opts)
	if err != nil {
		return nil, err
	}

	textureCache[key] = tex
	return tex, nil
}

// ReleaseTextures deletes every cached texture
func ReleaseTextures() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	for k, tex := range textureCache {
		tex.Delete()
		delete(textureCache, k)
	}
}

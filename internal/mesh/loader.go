package mesh

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Loader resolves mesh names to validated mesh data. Builtin names win;
// any other name is read from <assets>/meshes/<name>.json. Results are cached.
type Loader struct {
	assetsPath string
	cache      map[string]Data
}

func NewLoader(assetsPath string) *Loader {
	return &Loader{
		assetsPath: assetsPath,
		cache:      make(map[string]Data),
	}
}

// Load returns the mesh registered under name
func (l *Loader) Load(name string) (Data, error) {
	if d, ok := l.cache[name]; ok {
		return d, nil
	}

	d, err := Builtin(name)
	if errors.Is(err, ErrUnknownMesh) {
		d, err = LoadJSON(filepath.Join(l.assetsPath, "meshes", name+".json"))
		if errors.Is(err, os.ErrNotExist) {
			return Data{}, fmt.Errorf("%w: %q", ErrUnknownMesh, name)
		}
	}
	if err != nil {
		return Data{}, err
	}

	l.cache[name] = d
	return d, nil
}

// LoadJSON reads a mesh exported as position, normal, uv and index arrays
func LoadJSON(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("could not read mesh file: %w", err)
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("could not unmarshal mesh json %s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return Data{}, fmt.Errorf("mesh %s: %w", path, err)
	}
	return d, nil
}

package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned when a scene name matches neither a built-in nor a file
var ErrUnknownScene = errors.New("unknown scene")

var builtinScenes = map[string]func() *Scene{
	"default":       NewDefaultScene,
	"single-sphere": NewSingleSphereScene,
	"sphere-grid":   NewSphereGridScene,
}

// BuiltinNames returns the built-in scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name refers to a built-in scene
func IsBuiltin(name string) bool {
	_, ok := builtinScenes[name]
	return ok
}

// NewBuiltin creates the named built-in scene
func NewBuiltin(name string) (*Scene, error) {
	build, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return build(), nil
}

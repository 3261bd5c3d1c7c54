package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"mu-geom/internal/fragment"
)

var (
	// ErrInvalidNode reports a bad parent or node reference.
	ErrInvalidNode = errors.New("scene: invalid node reference")
	// ErrInvalidTriangle reports a malformed triangle.
	ErrInvalidTriangle = errors.New("scene: invalid triangle")
	// ErrInvalidCamera reports an unknown camera preset.
	ErrInvalidCamera = errors.New("scene: invalid camera")
	// ErrInvalidLight reports a zero key light direction.
	ErrInvalidLight = errors.New("scene: invalid light")
)

// Load reads and validates a JSON scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates scene JSON. name is used in error messages.
func Parse(data []byte, name string) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", name, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene: validate %s: %w", name, err)
	}
	return &s, nil
}

// Validate checks node ordering and references. Parents must precede their
// children so world matrices can be built in a single pass.
func (s *Scene) Validate() error {
	switch s.Camera.Preset {
	case "", "default", "flat", "identity":
	default:
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidCamera, s.Camera.Preset)
	}

	if s.Light != nil && *s.Light == ([3]float64{}) {
		return ErrInvalidLight
	}

	for i, n := range s.Nodes {
		if n.Parent == nil {
			continue
		}
		if p := *n.Parent; p < 0 || p >= i {
			return fmt.Errorf("%w: node %d (%s) has parent %d", ErrInvalidNode, i, n.Name, p)
		}
	}

	for i, l := range s.Lines {
		if !s.validRef(l.Node) {
			return fmt.Errorf("%w: line %d references node %d", ErrInvalidNode, i, *l.Node)
		}
	}

	for i, t := range s.Triangles {
		if !s.validRef(t.Node) {
			return fmt.Errorf("%w: triangle %d references node %d", ErrInvalidNode, i, *t.Node)
		}
		if len(t.Verts) != 3 {
			return fmt.Errorf("%w: triangle %d has %d vertices", ErrInvalidTriangle, i, len(t.Verts))
		}
		if len(t.UVs) != 0 && len(t.UVs) != 3 {
			return fmt.Errorf("%w: triangle %d has %d uvs", ErrInvalidTriangle, i, len(t.UVs))
		}
		if _, err := fragment.ParseBlendMode(t.Blend); err != nil {
			return fmt.Errorf("%w: triangle %d: %v", ErrInvalidTriangle, i, err)
		}
	}
	return nil
}

func (s *Scene) validRef(idx *int) bool {
	return idx == nil || (*idx >= 0 && *idx < len(s.Nodes))
}

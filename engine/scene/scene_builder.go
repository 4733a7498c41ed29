package scene

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/light"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithRenderer attaches the renderer GPU resources are created on. Omit it for a headless scene.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.r = r
	}
}

// WithLight sets the scene's point light.
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.light = l
	}
}

// WithGroups adds initial groups to the scene in draw order.
//
// Parameters:
//   - groups: the groups to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGroups(groups ...Group) SceneBuilderOption {
	return func(s *scene) {
		for _, g := range groups {
			if g != nil {
				s.groups = append(s.groups, g)
			}
		}
	}
}

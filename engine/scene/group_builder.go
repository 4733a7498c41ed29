package scene

// GroupBuilderOption is a functional option for configuring a Group via NewGroup.
type GroupBuilderOption func(*group)

// WithGroupPosition sets the group's initial world-space translation.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - GroupBuilderOption: option function to apply
func WithGroupPosition(x, y, z float32) GroupBuilderOption {
	return func(g *group) {
		g.position = [3]float32{x, y, z}
	}
}

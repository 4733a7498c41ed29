package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/engine/model"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// Group is a named transform node that owns at most one model. Rotation angles are Euler
// angles in radians applied in X, Y, Z order and are never wrapped or clamped.
type Group interface {
	// Name returns the group's identifier.
	Name() string

	// Position returns the group's world-space translation.
	Position() [3]float32

	// SetPosition sets the group's world-space translation.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Rotation returns the accumulated Euler angles in radians.
	//
	// Returns:
	//   - [3]float32: rotation about X, Y, and Z
	Rotation() [3]float32

	// SetRotation replaces the Euler angles.
	//
	// Parameters:
	//   - x, y, z: rotation about each axis in radians
	SetRotation(x, y, z float32)

	// Rotate adds the given deltas to the current Euler angles.
	//
	// Parameters:
	//   - dx, dy, dz: rotation deltas in radians
	Rotate(dx, dy, dz float32)

	// Attach sets the group's model. Only the first call has any effect.
	//
	// Parameters:
	//   - m: the model to attach
	//
	// Returns:
	//   - bool: true if the model was attached, false if the group already owns one or m is nil
	Attach(m model.Model) bool

	// Model returns the attached model, or nil if none has been attached yet.
	Model() model.Model

	// Transform returns the model matrix (translation × rotation) as 16 floats (column-major).
	Transform() [16]float32

	// Uniform returns the marshaled GPUTransform for the current state.
	//
	// Returns:
	//   - []byte: 64 bytes ready for upload
	Uniform() []byte

	// TransformProvider returns the bind group provider holding the group's transform uniform.
	TransformProvider() bind_group_provider.BindGroupProvider
}

type group struct {
	mu *sync.RWMutex

	name     string
	position mgl32.Vec3
	rotation mgl32.Vec3

	model             model.Model
	transformProvider bind_group_provider.BindGroupProvider
}

var _ Group = &group{}

// NewGroup creates an empty Group at the origin with no rotation.
//
// Parameters:
//   - name: the group's identifier
//   - options: functional options to configure the group
//
// Returns:
//   - Group: the newly created group
func NewGroup(name string, options ...GroupBuilderOption) Group {
	g := &group{
		mu:                &sync.RWMutex{},
		name:              name,
		transformProvider: bind_group_provider.NewBindGroupProvider(name + " Transform"),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *group) Name() string {
	return g.name
}

func (g *group) Position() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position
}

func (g *group) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = mgl32.Vec3{x, y, z}
}

func (g *group) Rotation() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation
}

func (g *group) SetRotation(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = mgl32.Vec3{x, y, z}
}

func (g *group) Rotate(dx, dy, dz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = g.rotation.Add(mgl32.Vec3{dx, dy, dz})
}

func (g *group) Attach(m model.Model) bool {
	if m == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.model != nil {
		return false
	}
	g.model = m
	return true
}

func (g *group) Model() model.Model {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.model
}

func (g *group) Transform() [16]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	rot := mgl32.HomogRotate3DX(g.rotation.X()).
		Mul4(mgl32.HomogRotate3DY(g.rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(g.rotation.Z()))
	world := mgl32.Translate3D(g.position.X(), g.position.Y(), g.position.Z()).Mul4(rot)
	return [16]float32(world)
}

func (g *group) Uniform() []byte {
	t := model.GPUTransform{Model: g.Transform()}
	return t.Marshal()
}

func (g *group) TransformProvider() bind_group_provider.BindGroupProvider {
	return g.transformProvider
}

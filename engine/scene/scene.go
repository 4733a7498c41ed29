package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/light"
	"github.com/Carmen-Shannon/oxy-globe/engine/model"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Scene is the root container for a camera, a point light, an optional background texture,
// and a list of Groups. GPU resources are created lazily by Prepare the first time an object
// is seen with a renderer attached, so a Scene without a renderer can be built and mutated
// headlessly.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Light returns the scene's point light, or nil if none is set.
	Light() light.Light

	// SetLight replaces the scene's point light. A nil light disables lighting.
	//
	// Parameters:
	//   - l: the new light
	SetLight(l light.Light)

	// Renderer returns the scene's renderer, or nil for a headless scene.
	Renderer() renderer.Renderer

	// SetRenderer attaches a renderer. Resources are created on the next Prepare.
	//
	// Parameters:
	//   - r: the renderer
	SetRenderer(r renderer.Renderer)

	// AddGroup appends a group to the scene. Groups are drawn in insertion order.
	//
	// Parameters:
	//   - g: the group to add
	AddGroup(g Group)

	// Group returns the first group with the given name, or nil.
	//
	// Parameters:
	//   - name: the group name
	//
	// Returns:
	//   - Group: the matching group or nil
	Group(name string) Group

	// Groups returns a copy of the scene's groups in draw order.
	Groups() []Group

	// SetBackground replaces the texture drawn behind every group. Until one is set only the
	// clear color shows.
	//
	// Parameters:
	//   - tex: decoded RGBA pixels
	SetBackground(tex common.TextureStagingData)

	// HasBackground reports whether a background texture has been set.
	HasBackground() bool

	// Prepare creates GPU resources for any object that does not have them yet and uploads
	// the camera, light, transform, and material uniforms. Must be called before BeginFrame.
	//
	// Returns:
	//   - error: error if a GPU resource could not be created
	Prepare() error

	// DrawCalls issues the background draw followed by one draw per group with a model.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawCalls() error

	// Release frees the scene-owned GPU resources.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam    camera.Camera
	light  light.Light
	r      renderer.Renderer
	groups []Group

	lightProvider bind_group_provider.BindGroupProvider

	background      common.TextureStagingData
	backgroundDirty bool
	bgProvider      bind_group_provider.BindGroupProvider
	bgMeshProvider  bind_group_provider.BindGroupProvider

	// Reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera. The camera is required and NewScene
// panics if it is nil. The scene starts active.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		active:             true,
		cam:                cam,
		lightProvider:      bind_group_provider.NewBindGroupProvider(name + " Light"),
		bgProvider:         bind_group_provider.NewBindGroupProvider(name + " Background"),
		bgMeshProvider:     bind_group_provider.NewBindGroupProvider(name + " Background Mesh"),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 4),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Pipelines returns the render pipelines a Scene draws with: the mesh pipeline for groups and
// the background pipeline. Register them on the renderer before the first frame.
//
// Returns:
//   - []pipeline.Pipeline: the mesh and background pipelines
func Pipelines() []pipeline.Pipeline {
	meshVS, meshFS := shader.NewMeshShaders()
	bgVS, bgFS := shader.NewBackgroundShaders()
	return []pipeline.Pipeline{
		pipeline.NewPipeline(shader.MeshPipelineKey,
			pipeline.WithShaders(meshVS, meshFS),
		),
		pipeline.NewPipeline(shader.BackgroundPipelineKey,
			pipeline.WithShaders(bgVS, bgFS),
			pipeline.WithDepth(false, false),
		),
	}
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Light() light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.light
}

func (s *scene) SetLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.light = l
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) AddGroup(g Group) {
	if g == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append(s.groups, g)
}

func (s *scene) Group(name string) Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.Name() == name {
			return g
		}
	}
	return nil
}

func (s *scene) Groups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Group, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *scene) SetBackground(tex common.TextureStagingData) {
	if tex.Empty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = tex
	s.backgroundDirty = true
}

func (s *scene) HasBackground() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.background.Empty()
}

func (s *scene) Prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return nil
	}

	camProvider := s.cam.BindGroupProvider()
	if camProvider.BindGroup() == nil {
		if err := s.r.InitBindGroup(camProvider, shader.CameraLayout()); err != nil {
			return fmt.Errorf("scene %q: failed to init camera bind group: %w", s.name, err)
		}
	}
	if s.lightProvider.BindGroup() == nil {
		if err := s.r.InitBindGroup(s.lightProvider, shader.LightLayout()); err != nil {
			return fmt.Errorf("scene %q: failed to init light bind group: %w", s.name, err)
		}
	}
	if err := s.prepareBackground(); err != nil {
		return err
	}

	gpuLight := light.ToGPULight(s.light)
	s.writePool = s.writePool[:0]
	s.writePool = append(s.writePool,
		bind_group_provider.BufferWrite{Provider: camProvider, Binding: 0, Data: s.cam.Uniform()},
		bind_group_provider.BufferWrite{Provider: s.lightProvider, Binding: 0, Data: gpuLight.Marshal()},
	)

	for _, g := range s.groups {
		m := g.Model()
		if m == nil {
			continue
		}
		if err := s.prepareModel(g, m); err != nil {
			return err
		}
		s.writePool = append(s.writePool,
			bind_group_provider.BufferWrite{Provider: g.TransformProvider(), Binding: 0, Data: g.Uniform()},
		)
		if mat := m.Material(); mat != nil {
			s.writePool = append(s.writePool,
				bind_group_provider.BufferWrite{Provider: mat.BindGroupProvider(), Binding: 0, Data: mat.Uniform()},
			)
		}
	}

	s.r.WriteBuffers(s.writePool)
	return nil
}

// prepareModel uploads the mesh, transform, and material resources of a group the first time
// it is seen with a model. Caller must hold the mutex.
func (s *scene) prepareModel(g Group, m model.Model) error {
	mesh := m.MeshProvider()
	if mesh.VertexBuffer() == nil {
		if err := s.r.InitMeshBuffers(mesh, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
			return fmt.Errorf("scene %q: failed to init mesh for group %q: %w", s.name, g.Name(), err)
		}
	}

	tp := g.TransformProvider()
	if tp.BindGroup() == nil {
		if err := s.r.InitBindGroup(tp, shader.TransformLayout()); err != nil {
			return fmt.Errorf("scene %q: failed to init transform for group %q: %w", s.name, g.Name(), err)
		}
	}

	mat := m.Material()
	if mat == nil {
		return fmt.Errorf("scene %q: group %q has a model without a material", s.name, g.Name())
	}
	mp := mat.BindGroupProvider()
	if mp.BindGroup() != nil {
		return nil
	}

	tex := mat.Texture()
	if tex.Empty() {
		tex = whiteTexture
	}
	if err := s.r.InitTextureView(mp, shader.MaterialTextureBinding, tex); err != nil {
		return fmt.Errorf("scene %q: failed to upload texture for group %q: %w", s.name, g.Name(), err)
	}
	if err := s.r.InitSampler(mp, shader.MaterialSamplerBinding, mat.Sampler()); err != nil {
		return fmt.Errorf("scene %q: failed to init sampler for group %q: %w", s.name, g.Name(), err)
	}
	if err := s.r.InitBindGroup(mp, shader.MaterialLayout()); err != nil {
		return fmt.Errorf("scene %q: failed to init material for group %q: %w", s.name, g.Name(), err)
	}
	return nil
}

// prepareBackground uploads a newly set background texture and, once, the full-screen quad.
// Caller must hold the mutex.
func (s *scene) prepareBackground() error {
	if !s.backgroundDirty {
		return nil
	}

	if s.bgMeshProvider.VertexBuffer() == nil {
		vertices, indices := model.QuadGeometry()
		err := s.r.InitMeshBuffers(s.bgMeshProvider, model.MarshalVertices(vertices), model.MarshalIndices(indices), len(indices))
		if err != nil {
			return fmt.Errorf("scene %q: failed to init background quad: %w", s.name, err)
		}
	}
	if err := s.r.InitTextureView(s.bgProvider, shader.BackgroundTextureBinding, s.background); err != nil {
		return fmt.Errorf("scene %q: failed to upload background: %w", s.name, err)
	}
	err := s.r.InitSampler(s.bgProvider, shader.BackgroundSamplerBinding, common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
	})
	if err != nil {
		return fmt.Errorf("scene %q: failed to init background sampler: %w", s.name, err)
	}
	if err := s.r.InitBindGroup(s.bgProvider, shader.BackgroundLayout()); err != nil {
		return fmt.Errorf("scene %q: failed to init background bind group: %w", s.name, err)
	}
	s.backgroundDirty = false
	return nil
}

func (s *scene) DrawCalls() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	if s.bgProvider.BindGroup() != nil && s.bgMeshProvider.VertexBuffer() != nil {
		s.drawBindGroupsPool = append(s.drawBindGroupsPool[:0], s.bgProvider)
		if err := s.r.DrawCall(shader.BackgroundPipelineKey, s.bgMeshProvider, s.drawBindGroupsPool); err != nil {
			return fmt.Errorf("scene %q: background: %w", s.name, err)
		}
	}

	for _, g := range s.groups {
		m := g.Model()
		if m == nil || m.Material() == nil {
			continue
		}
		mat := m.Material()
		if !mat.BindGroupProvider().Ready() || !g.TransformProvider().Ready() {
			continue
		}

		// Index order matches @group(n) in the mesh shader.
		s.drawBindGroupsPool = append(s.drawBindGroupsPool[:0],
			s.cam.BindGroupProvider(),
			s.lightProvider,
			g.TransformProvider(),
			mat.BindGroupProvider(),
		)
		if err := s.r.DrawCall(mat.PipelineKey(), m.MeshProvider(), s.drawBindGroupsPool); err != nil {
			return fmt.Errorf("scene %q: group %q: %w", s.name, g.Name(), err)
		}
	}
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lightProvider.Release()
	s.bgProvider.Release()
	s.bgMeshProvider.Release()
	for _, g := range s.groups {
		g.TransformProvider().Release()
		if m := g.Model(); m != nil {
			m.MeshProvider().Release()
			if mat := m.Material(); mat != nil {
				mat.BindGroupProvider().Release()
			}
		}
	}
}

// whiteTexture stands in for a material without a texture so the material color shows through.
var whiteTexture = common.TextureStagingData{
	Pixels: []byte{255, 255, 255, 255},
	Width:  1,
	Height: 1,
}

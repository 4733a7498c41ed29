package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/light"
	"github.com/Carmen-Shannon/oxy-globe/engine/model"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeRenderer records the calls a scene makes. Methods the scene never calls fall through to
// the nil embedded interface and panic.
type fakeRenderer struct {
	renderer.Renderer

	bindGroups []string
	textures   []string
	meshes     []string
	writes     int
	draws      []string
}

func (f *fakeRenderer) InitBindGroup(p bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor) error {
	f.bindGroups = append(f.bindGroups, p.Label())
	p.SetBindGroup(&wgpu.BindGroup{})
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(p bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	f.meshes = append(f.meshes, p.Label())
	p.SetVertexBuffer(&wgpu.Buffer{})
	p.SetIndexCount(indexCount)
	return nil
}

func (f *fakeRenderer) InitTextureView(p bind_group_provider.BindGroupProvider, _ int, _ common.TextureStagingData) error {
	f.textures = append(f.textures, p.Label())
	return nil
}

func (f *fakeRenderer) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes += len(writes)
}

func (f *fakeRenderer) DrawCall(key string, _ bind_group_provider.BindGroupProvider, bgs []bind_group_provider.BindGroupProvider) error {
	f.draws = append(f.draws, key)
	if key == shader.MeshPipelineKey && len(bgs) != 4 {
		return errBindGroups
	}
	return nil
}

var errBindGroups = errors.New("mesh draw needs 4 bind groups")

func texture() common.TextureStagingData {
	return common.TextureStagingData{Pixels: make([]byte, 4*4*4), Width: 4, Height: 4}
}

func sphere(name string) model.Model {
	mat := material.NewMaterial(material.WithName(name), material.WithTexture(texture()))
	return model.NewSphere(name, 1, 8, 6, mat)
}

func TestGroupAttachOnce(t *testing.T) {
	g := NewGroup("globe")
	if g.Model() != nil {
		t.Fatal("new group should have no model")
	}
	if g.Attach(nil) {
		t.Error("attaching nil should report false")
	}

	first := sphere("first")
	if !g.Attach(first) {
		t.Fatal("first attach should succeed")
	}
	if g.Attach(sphere("second")) {
		t.Error("second attach should report false")
	}
	if g.Model() != first {
		t.Error("second attach replaced the model")
	}
}

func TestGroupRotationAccumulates(t *testing.T) {
	g := NewGroup("globe")
	g.Rotate(0, 0.05, 0)
	g.Rotate(1.0, 0, 0)
	g.Rotate(0, 0, 0)
	for i := 0; i < 1000; i++ {
		g.Rotate(0.01, 0, 0)
	}

	rot := g.Rotation()
	if math.Abs(float64(rot[0]-11)) > 1e-3 || math.Abs(float64(rot[1]-0.05)) > 1e-6 || rot[2] != 0 {
		t.Errorf("rotation = %v, want (11, 0.05, 0) with no wraparound", rot)
	}

	g.SetRotation(0, 0, 0)
	if g.Rotation() != [3]float32{} {
		t.Errorf("SetRotation did not reset, got %v", g.Rotation())
	}
}

func TestGroupTransform(t *testing.T) {
	g := NewGroup("moon", WithGroupPosition(400, 100, -300))
	m := g.Transform()
	if m[12] != 400 || m[13] != 100 || m[14] != -300 {
		t.Errorf("translation column = (%v, %v, %v), want (400, 100, -300)", m[12], m[13], m[14])
	}
	if m[0] != 1 || m[5] != 1 || m[10] != 1 {
		t.Errorf("unrotated group should have identity basis, got %v", m)
	}

	// A quarter turn about Y maps +X to -Z.
	g.SetRotation(0, math.Pi/2, 0)
	m = g.Transform()
	if math.Abs(float64(m[0])) > 1e-6 || math.Abs(float64(m[2]+1)) > 1e-6 {
		t.Errorf("rotated X axis = (%v, %v, %v), want (0, 0, -1)", m[0], m[1], m[2])
	}
	if m[12] != 400 {
		t.Errorf("rotation moved the translation to %v", m[12])
	}
	if len(g.Uniform()) != 64 {
		t.Errorf("uniform is %d bytes, want 64", len(g.Uniform()))
	}
}

func TestHeadlessScene(t *testing.T) {
	s := NewScene("main", camera.NewCamera(), WithGroups(NewGroup("globe"), nil, NewGroup("moon")))
	if !s.Active() {
		t.Error("new scene should be active")
	}
	if len(s.Groups()) != 2 {
		t.Fatalf("scene has %d groups, want 2", len(s.Groups()))
	}
	if s.Group("moon") == nil || s.Group("sun") != nil {
		t.Error("Group lookup by name failed")
	}
	if err := s.Prepare(); err != nil {
		t.Errorf("Prepare without renderer = %v, want nil", err)
	}
	if err := s.DrawCalls(); err == nil {
		t.Error("DrawCalls without renderer should fail")
	}

	s.SetBackground(common.TextureStagingData{})
	if s.HasBackground() {
		t.Error("empty background should be ignored")
	}
	s.SetBackground(texture())
	if !s.HasBackground() {
		t.Error("background not recorded")
	}
}

func TestNewSceneRequiresCamera(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewScene(nil camera) did not panic")
		}
	}()
	NewScene("main", nil)
}

func TestScenePrepareAndDraw(t *testing.T) {
	f := &fakeRenderer{}
	globe := NewGroup("globe")
	moon := NewGroup("moon")
	s := NewScene("main", camera.NewCamera(),
		WithRenderer(f),
		WithLight(light.NewLight()),
		WithGroups(globe, moon),
	)

	// Nothing attached yet: only camera and light are set up.
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := s.DrawCalls(); err != nil {
		t.Fatalf("DrawCalls: %v", err)
	}
	if len(f.draws) != 0 {
		t.Errorf("drew %v with no models attached", f.draws)
	}
	if f.writes != 2 {
		t.Errorf("wrote %d uniforms, want camera and light", f.writes)
	}

	globe.Attach(sphere("globe"))
	s.SetBackground(texture())
	f.writes = 0
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := s.DrawCalls(); err != nil {
		t.Fatalf("DrawCalls: %v", err)
	}
	want := []string{shader.BackgroundPipelineKey, shader.MeshPipelineKey}
	if len(f.draws) != len(want) || f.draws[0] != want[0] || f.draws[1] != want[1] {
		t.Errorf("draws = %v, want %v", f.draws, want)
	}
	if f.writes != 4 {
		t.Errorf("wrote %d uniforms, want camera, light, transform, material", f.writes)
	}
	if len(f.meshes) != 2 {
		t.Errorf("mesh uploads = %v, want background quad and globe", f.meshes)
	}

	// Resources are created once.
	uploads := len(f.textures)
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if len(f.textures) != uploads {
		t.Errorf("textures re-uploaded: %v", f.textures)
	}
}

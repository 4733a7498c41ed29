package bind_group_provider

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider("globe Material")
	if p.Label() != "globe Material" {
		t.Errorf("Label() = %q", p.Label())
	}
	if p.Ready() {
		t.Error("new provider should not be ready")
	}
	if p.Buffer(0) != nil || p.TextureView(1) != nil || p.Sampler(2) != nil {
		t.Error("new provider should hold no resources")
	}
	if p.IndexCount() != 0 {
		t.Errorf("IndexCount() = %d", p.IndexCount())
	}
}

func TestProviderReadiness(t *testing.T) {
	mesh := NewBindGroupProvider("globe Mesh")
	mesh.SetVertexBuffer(&wgpu.Buffer{})
	mesh.SetIndexCount(14700)
	if !mesh.Ready() {
		t.Error("provider with a vertex buffer should be ready")
	}
	if mesh.IndexCount() != 14700 {
		t.Errorf("IndexCount() = %d", mesh.IndexCount())
	}

	uniform := NewBindGroupProvider("camera_0")
	uniform.SetBindGroup(&wgpu.BindGroup{})
	if !uniform.Ready() {
		t.Error("provider with a bind group should be ready")
	}
}

func TestProviderSlotsAreIndependent(t *testing.T) {
	p := NewBindGroupProvider("background")
	tv := &wgpu.TextureView{}
	s := &wgpu.Sampler{}
	p.SetTexture(0, nil, tv)
	p.SetSampler(1, s)

	if p.TextureView(0) != tv || p.TextureView(1) != nil {
		t.Error("texture view stored in the wrong slot")
	}
	if p.Sampler(1) != s || p.Sampler(0) != nil {
		t.Error("sampler stored in the wrong slot")
	}
}

package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewShaderDefaults(t *testing.T) {
	vs := NewShader("v", ShaderTypeVertex, "fn vs_main() {}")
	if vs.EntryPoint() != "vs_main" {
		t.Errorf("vertex entry point = %q, want vs_main", vs.EntryPoint())
	}
	fs := NewShader("f", ShaderTypeFragment, "fn fs_main() {}", WithEntryPoint("main"))
	if fs.EntryPoint() != "main" {
		t.Errorf("fragment entry point = %q, want main", fs.EntryPoint())
	}
	if len(fs.Groups()) != 0 {
		t.Errorf("expected no groups, got %v", fs.Groups())
	}
}

func TestNewShaderEmptySourcePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for empty source")
		}
		if msg, _ := r.(string); !strings.HasPrefix(msg, "shader:") {
			t.Errorf("unexpected panic message %v", r)
		}
	}()
	NewShader("empty", ShaderTypeVertex, "")
}

func TestMeshShaders(t *testing.T) {
	vs, fs := NewMeshShaders()
	want := []int{GroupCamera, GroupLight, GroupTransform, GroupMaterial}
	got := vs.Groups()
	if len(got) != len(want) {
		t.Fatalf("groups = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("groups = %v, want %v", got, want)
		}
	}
	if len(vs.VertexLayouts()) != 1 || vs.VertexLayouts()[0].ArrayStride != 32 {
		t.Errorf("unexpected vertex layouts %+v", vs.VertexLayouts())
	}
	if len(fs.VertexLayouts()) != 0 {
		t.Errorf("fragment shader should not carry vertex layouts")
	}
	mat := fs.BindGroupLayoutDescriptor(GroupMaterial)
	if len(mat.Entries) != 3 {
		t.Fatalf("material layout has %d entries, want 3", len(mat.Entries))
	}
	if mat.Entries[0].Buffer.MinBindingSize != MaterialUniformSize {
		t.Errorf("material uniform size = %d", mat.Entries[0].Buffer.MinBindingSize)
	}
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vEntry := wgpu.BindGroupLayoutEntry{Binding: 0, Visibility: wgpu.ShaderStageVertex}
	fEntry := wgpu.BindGroupLayoutEntry{Binding: 0, Visibility: wgpu.ShaderStageFragment}
	fTex := wgpu.BindGroupLayoutEntry{Binding: 1, Visibility: wgpu.ShaderStageFragment}

	merged := MergeBindGroupLayouts(
		map[int]wgpu.BindGroupLayoutDescriptor{
			0: {Label: "v", Entries: []wgpu.BindGroupLayoutEntry{vEntry}},
		},
		map[int]wgpu.BindGroupLayoutDescriptor{
			0: {Label: "f", Entries: []wgpu.BindGroupLayoutEntry{fTex, fEntry}},
			1: {Label: "only-f", Entries: []wgpu.BindGroupLayoutEntry{fTex}},
		},
	)

	if len(merged) != 2 {
		t.Fatalf("merged %d groups, want 2", len(merged))
	}
	g0 := merged[0]
	if len(g0.Entries) != 2 {
		t.Fatalf("group 0 has %d entries, want 2", len(g0.Entries))
	}
	if g0.Entries[0].Binding != 0 || g0.Entries[1].Binding != 1 {
		t.Errorf("entries not sorted by binding: %+v", g0.Entries)
	}
	if g0.Entries[0].Visibility != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Errorf("visibility not merged: %v", g0.Entries[0].Visibility)
	}
	if merged[1].Label != "only-f" {
		t.Errorf("fragment-only group lost: %+v", merged[1])
	}
}

package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/mesh.wgsl
var meshSource string

//go:embed assets/background.wgsl
var backgroundSource string

// Bind group indices used by the mesh shader.
const (
	GroupCamera    = 0
	GroupLight     = 1
	GroupTransform = 2
	GroupMaterial  = 3
)

// GroupBackground is the only bind group of the background shader.
const GroupBackground = 0

// Binding slots inside the material and background groups. Uniforms sit at binding 0.
const (
	MaterialTextureBinding   = 1
	MaterialSamplerBinding   = 2
	BackgroundTextureBinding = 0
	BackgroundSamplerBinding = 1
)

// Uniform sizes in bytes, matching the WGSL struct layouts in assets/mesh.wgsl.
const (
	CameraUniformSize    = 80
	LightUniformSize     = 32
	TransformUniformSize = 64
	MaterialUniformSize  = 32
)

// Pipeline and shader keys for the built-in shaders.
const (
	MeshPipelineKey       = "mesh"
	BackgroundPipelineKey = "background"
)

const vertexFragment = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

// MeshVertexLayout describes the interleaved position/normal/uv vertex format (32 bytes).
var MeshVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: 32,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
	},
}

func uniformLayout(label string, size uint64) wgpu.BindGroupLayoutDescriptor {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: vertexFragment,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = size
	return wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	}
}

func textureEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	e := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
	}
	e.Texture.SampleType = wgpu.TextureSampleTypeFloat
	e.Texture.ViewDimension = wgpu.TextureViewDimension2D
	return e
}

func samplerEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	e := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
	}
	e.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	return e
}

// CameraLayout is the layout of the camera uniform group.
func CameraLayout() wgpu.BindGroupLayoutDescriptor {
	return uniformLayout("Camera BGL", CameraUniformSize)
}

// LightLayout is the layout of the point light uniform group.
func LightLayout() wgpu.BindGroupLayoutDescriptor {
	return uniformLayout("Light BGL", LightUniformSize)
}

// TransformLayout is the layout of the per-object model matrix group.
func TransformLayout() wgpu.BindGroupLayoutDescriptor {
	return uniformLayout("Transform BGL", TransformUniformSize)
}

// MaterialLayout is the layout of the material group: uniform, texture, sampler.
func MaterialLayout() wgpu.BindGroupLayoutDescriptor {
	desc := uniformLayout("Material BGL", MaterialUniformSize)
	desc.Entries = append(desc.Entries, textureEntry(MaterialTextureBinding), samplerEntry(MaterialSamplerBinding))
	return desc
}

// BackgroundLayout is the layout of the background group: texture, sampler.
func BackgroundLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Background BGL",
		Entries: []wgpu.BindGroupLayoutEntry{textureEntry(BackgroundTextureBinding), samplerEntry(BackgroundSamplerBinding)},
	}
}

// NewMeshShaders returns the vertex and fragment shaders used to draw textured meshes.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
func NewMeshShaders() (Shader, Shader) {
	layouts := []ShaderBuilderOption{
		WithBindGroupLayout(GroupCamera, CameraLayout()),
		WithBindGroupLayout(GroupLight, LightLayout()),
		WithBindGroupLayout(GroupTransform, TransformLayout()),
		WithBindGroupLayout(GroupMaterial, MaterialLayout()),
	}
	vs := NewShader(MeshPipelineKey+"_vs", ShaderTypeVertex, meshSource,
		append(layouts, WithVertexLayout(MeshVertexLayout))...)
	fs := NewShader(MeshPipelineKey+"_fs", ShaderTypeFragment, meshSource, layouts...)
	return vs, fs
}

// NewBackgroundShaders returns the vertex and fragment shaders used to draw the scene backdrop.
func NewBackgroundShaders() (Shader, Shader) {
	vs := NewShader(BackgroundPipelineKey+"_vs", ShaderTypeVertex, backgroundSource,
		WithBindGroupLayout(GroupBackground, BackgroundLayout()),
		WithVertexLayout(MeshVertexLayout),
	)
	fs := NewShader(BackgroundPipelineKey+"_fs", ShaderTypeFragment, backgroundSource,
		WithBindGroupLayout(GroupBackground, BackgroundLayout()),
	)
	return vs, fs
}

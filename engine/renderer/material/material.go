package material

import (
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/shader"
)

// ShadingModel selects how the mesh fragment shader lights a surface.
type ShadingModel uint32

const (
	// ShadingBasic outputs the texture color unlit.
	ShadingBasic ShadingModel = iota

	// ShadingLambert applies diffuse lighting from the scene's point light plus a small ambient term.
	ShadingLambert
)

// String returns the shading model name as accepted by ParseShading.
func (s ShadingModel) String() string {
	switch s {
	case ShadingLambert:
		return "lambert"
	default:
		return "basic"
	}
}

// ParseShading maps "basic" or "lambert" to a ShadingModel. Anything else is basic.
func ParseShading(name string) ShadingModel {
	if name == "lambert" {
		return ShadingLambert
	}
	return ShadingBasic
}

// material is the implementation of the Material interface.
type material struct {
	name              string
	color             [4]float32
	shading           ShadingModel
	texture           common.TextureStagingData
	sampler           common.SamplerStagingData
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material is a textured surface: a color map, a sampler, a color multiplier, and a shading model.
//
// Surface properties are set at construction. The bind group provider is created with the material
// and filled in by the renderer the first time the material is drawn.
type Material interface {
	// Name retrieves the material identifier.
	Name() string

	// Color retrieves the RGBA multiplier applied to the texture.
	Color() [4]float32

	// Shading retrieves the shading model.
	Shading() ShadingModel

	// Texture retrieves the decoded color map.
	//
	// Returns:
	//   - common.TextureStagingData: the pixels to upload
	Texture() common.TextureStagingData

	// Sampler retrieves the sampler configuration for the color map.
	Sampler() common.SamplerStagingData

	// PipelineKey retrieves the key of the render pipeline the material is drawn with.
	PipelineKey() string

	// BindGroupProvider retrieves the provider holding the material's uniform, texture, and sampler.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider, never nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Uniform returns the marshaled GPUMaterial for this material.
	//
	// Returns:
	//   - []byte: 32 bytes ready for upload
	Uniform() []byte
}

var _ Material = &material{}

// NewMaterial creates a Material. Defaults are a white multiplier, basic shading, and the mesh pipeline.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		color:       [4]float32{1, 1, 1, 1},
		shading:     ShadingBasic,
		pipelineKey: shader.MeshPipelineKey,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider(m.name + " Material")
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() [4]float32 {
	return m.color
}

func (m *material) Shading() ShadingModel {
	return m.shading
}

func (m *material) Texture() common.TextureStagingData {
	return m.texture
}

func (m *material) Sampler() common.SamplerStagingData {
	return m.sampler
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) Uniform() []byte {
	g := GPUMaterial{Color: m.color, Shading: uint32(m.shading)}
	return g.Marshal()
}
